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

// Package dns defines interfaces used by dmarc-tool to perform DNS
// lookups.
//
// Two implementations are provided: the system resolver returned by
// DefaultResolver and ExtResolver, a stub resolver built on top of
// miekg/dns that talks to the servers from resolv.conf directly.
package dns

import (
	"context"
	"net"
	"strings"
)

// Resolver is an interface that describes DNS-related methods used by
// dmarc-tool.
//
// It is implemented by dns.DefaultResolver() and *ExtResolver. Methods behave
// the same way as the net.Resolver ones. The method set matches
// spf.DNSResolver, LookupAddr is used there for ptr mechanisms.
type Resolver interface {
	LookupAddr(ctx context.Context, addr string) (names []string, err error)
	LookupHost(ctx context.Context, host string) (addrs []string, err error)
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupTXT(ctx context.Context, name string) ([]string, error)
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

// LookupMXHosts is a convenience wrapper for Resolver.LookupMX.
//
// It returns MX host names in the preference order with trailing dots
// stripped.
func LookupMXHosts(ctx context.Context, r Resolver, name string) ([]string, error) {
	mxs, err := r.LookupMX(ctx, FQDN(name))
	if err != nil {
		return nil, err
	}

	hosts := make([]string, 0, len(mxs))
	for _, mx := range mxs {
		hosts = append(hosts, strings.TrimSuffix(mx.Host, "."))
	}
	return hosts, nil
}

func DefaultResolver() Resolver {
	if overrideServ != "" && overrideServ != "system-default" {
		override(overrideServ)
	}

	return net.DefaultResolver
}
