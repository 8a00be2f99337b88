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

// Package dmarc fetches the records currently published for a domain so
// that the wizard can show them next to each question.
//
// Lookups are informational only. Not-found answers are reported as absence
// of a record, other failures are returned to the caller which is expected
// to log and ignore them.
package dmarc

import (
	"context"
	"fmt"
	"strings"

	"github.com/emersion/go-msgauth/dmarc"
	"github.com/tdlansing/dmarc-tool/framework/dns"
	"github.com/tdlansing/dmarc-tool/framework/exterrors"
)

// Current is the parsed DMARC record currently published for a domain.
type Current struct {
	Raw string

	Policy          dmarc.Policy
	SubdomainPolicy dmarc.Policy
	DKIMAlignment   dmarc.AlignmentMode
	SPFAlignment    dmarc.AlignmentMode
	// FailureOnAny is true if fo= contains "1".
	FailureOnAny bool

	// Report addresses with the mailto: scheme and size limits stripped.
	Aggregate []string
	Failure   []string
}

// StrictAlignment reports whether both adkim and aspf are set to strict.
func (c *Current) StrictAlignment() bool {
	return c.DKIMAlignment == dmarc.AlignmentStrict && c.SPFAlignment == dmarc.AlignmentStrict
}

// FetchRecord looks up the DMARC record published at _dmarc.<domain>.
//
// nil Current and nil error are returned if there is no record or if there
// are several DMARC records (which means no policy, per RFC 7489).
func FetchRecord(ctx context.Context, r dns.Resolver, domain string) (*Current, error) {
	name := dns.FQDN("_dmarc." + domain)
	txts, err := r.LookupTXT(ctx, name)
	if err != nil {
		if dns.IsNotFound(err) {
			return nil, nil
		}
		return nil, exterrors.WithDNSFields(fmt.Errorf("dmarc: %w", err), name)
	}

	// Exclude records that are not DMARC policies.
	records := txts[:0]
	for _, txt := range txts {
		if strings.HasPrefix(txt, "v=DMARC1") {
			records = append(records, txt)
		}
	}
	if len(records) != 1 {
		return nil, nil
	}

	rec, err := dmarc.Parse(records[0])
	if err != nil {
		return nil, exterrors.WithFields(fmt.Errorf("dmarc: malformed record: %w", err), map[string]interface{}{
			"name":   name,
			"record": records[0],
		})
	}

	return &Current{
		Raw:             records[0],
		Policy:          rec.Policy,
		SubdomainPolicy: rec.SubdomainPolicy,
		DKIMAlignment:   rec.DKIMAlignment,
		SPFAlignment:    rec.SPFAlignment,
		FailureOnAny:    rec.FailureOptions&dmarc.FailureAny != 0,
		Aggregate:       mailtoAddrs(rec.ReportURIAggregate),
		Failure:         mailtoAddrs(rec.ReportURIFailure),
	}, nil
}

func mailtoAddrs(uris []string) []string {
	addrs := make([]string, 0, len(uris))
	for _, uri := range uris {
		uri = strings.TrimSpace(uri)
		if len(uri) >= len("mailto:") && strings.EqualFold(uri[:len("mailto:")], "mailto:") {
			uri = uri[len("mailto:"):]
		}
		// Drop the size limit, "mailto:a@example.org!10m".
		if i := strings.IndexByte(uri, '!'); i != -1 {
			uri = uri[:i]
		}
		if uri != "" {
			addrs = append(addrs, uri)
		}
	}
	return addrs
}

// FetchSPF returns the SPF record published for domain or an empty string if
// there is none or there are several of them.
func FetchSPF(ctx context.Context, r dns.Resolver, domain string) (string, error) {
	name := dns.FQDN(domain)
	txts, err := r.LookupTXT(ctx, name)
	if err != nil {
		if dns.IsNotFound(err) {
			return "", nil
		}
		return "", exterrors.WithDNSFields(fmt.Errorf("spf: %w", err), name)
	}

	var found []string
	for _, txt := range txts {
		lower := strings.ToLower(txt)
		if lower == "v=spf1" || strings.HasPrefix(lower, "v=spf1 ") {
			found = append(found, txt)
		}
	}
	if len(found) != 1 {
		return "", nil
	}
	return found[0], nil
}

// Exists reports whether domain currently resolves to at least one address.
//
// Any failure, including timeouts, is reported as false together with the
// error so that the caller can log it.
func Exists(ctx context.Context, r dns.Resolver, domain string) (bool, error) {
	addrs, err := r.LookupHost(ctx, dns.FQDN(domain))
	if err != nil {
		if dns.IsNotFound(err) {
			return false, nil
		}
		return false, exterrors.WithDNSFields(err, domain)
	}
	return len(addrs) != 0, nil
}
