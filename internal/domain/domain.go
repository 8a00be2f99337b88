/*
dmarc-tool - DMARC, SPF and DKIM record wizard.
Copyright © 2020-2026 dmarc-tool contributors

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

// Package domain splits fully qualified domain names into the parts used to
// build DNS host names for DMARC, SPF and DKIM records.
//
// The split uses the "last two labels are the parent domain" heuristic and not
// the public suffix list. Names under multi-label suffixes (foo.co.uk) are
// split wrongly, OrgDomain can be used to detect that and warn the user.
package domain

import (
	"fmt"
	"strings"

	"github.com/tdlansing/dmarc-tool/framework/address"
	"github.com/tdlansing/dmarc-tool/framework/dns"
	"golang.org/x/net/publicsuffix"
)

// Parts is the result of Split.
type Parts struct {
	// Full is the domain as given to Split.
	Full string
	// Parent is the last two labels of Full.
	Parent string
	// Prefix contains the remaining labels with a leading dot (".mail.corp")
	// so it can be appended to a host name directly. Empty if Full has at
	// most one dot.
	Prefix string
}

// IsSubdomain reports whether Full has labels in front of Parent.
func (p Parts) IsSubdomain() bool {
	return p.Prefix != ""
}

// Label returns Prefix without the leading dot.
func (p Parts) Label() string {
	return strings.TrimPrefix(p.Prefix, ".")
}

// OwnsHost reports whether host is a name under Parent (and not Parent
// itself).
func (p Parts) OwnsHost(host string) bool {
	host = strings.TrimSuffix(host, ".")
	if strings.Count(host, ".") < 2 {
		return false
	}
	return dns.Equal(Split(host).Parent, p.Parent)
}

// Normalize validates name and converts it to the lower-case A-label form
// without the trailing dot, which is the form used in records.
func Normalize(name string) (string, error) {
	name = strings.TrimSuffix(name, ".")
	if !address.ValidDomain(name) {
		return "", fmt.Errorf("domain: invalid domain name %q", name)
	}
	ascii, err := dns.SelectIDNA(false, name)
	if err != nil {
		return "", fmt.Errorf("domain: %w", err)
	}
	return strings.ToLower(ascii), nil
}

// Split decomposes full into the parent domain and the subdomain prefix.
//
// Empty input yields empty Parts, callers are expected to reject it
// beforehand.
func Split(full string) Parts {
	labels := strings.Split(full, ".")
	if len(labels) <= 2 {
		return Parts{Full: full, Parent: full}
	}

	cut := len(labels) - 2
	return Parts{
		Full:   full,
		Parent: strings.Join(labels[cut:], "."),
		Prefix: "." + strings.Join(labels[:cut], "."),
	}
}

// FromEmail returns everything after the last at-sign of email. If there is
// no at-sign, email is returned as is.
func FromEmail(email string) string {
	return email[strings.LastIndexByte(email, '@')+1:]
}

// RootFromEmail returns the last two labels of the domain part of email.
//
//	RootFromEmail("a@b.c.example.com") == "example.com"
func RootFromEmail(email string) string {
	return Split(FromEmail(email)).Parent
}

// OrgDomain returns the organizational domain of full as defined by the
// public suffix list.
func OrgDomain(full string) (string, error) {
	return publicsuffix.EffectiveTLDPlusOne(strings.TrimSuffix(full, "."))
}
