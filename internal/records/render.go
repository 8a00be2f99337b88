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

package records

import (
	"strings"

	"github.com/tdlansing/dmarc-tool/framework/dns"
	"github.com/tdlansing/dmarc-tool/internal/domain"
)

type Kind int

const (
	KindDMARC Kind = iota
	// KindReportAuth is the record a report receiver publishes to accept
	// reports for a foreign domain (RFC 7489, Section 7.1).
	KindReportAuth
	KindSPF
	KindDKIM
)

// Record is a single DNS record to be created manually.
type Record struct {
	Kind Kind
	// Zone is the domain the record should be created in.
	Zone string
	Type string
	// Host is relative to Zone, except for KindReportAuth records which use
	// the full name.
	Host  string
	Value string
}

type RecordSet []Record

// Render compiles all records for cfg: DMARC (with report authorization
// records), SPF and DKIM, in that order.
func Render(cfg Config) RecordSet {
	set := RenderDMARC(cfg)
	set = append(set, RenderSPF(cfg)...)
	set = append(set, RenderDKIM(cfg)...)
	return set
}

// RenderDMARC returns the DMARC record for cfg followed by the report
// authorization records required for report addresses outside of the
// parent domain.
func RenderDMARC(cfg Config) RecordSet {
	parts := cfg.Domain
	dmarc := cfg.DMARC

	value := strings.Builder{}
	value.WriteString("v=DMARC1")
	if cfg.UsedForEmail {
		value.WriteString("; p=")
		value.WriteString(string(dmarc.Policy))
		if dmarc.SubdomainPolicy != "" {
			value.WriteString("; sp=")
			value.WriteString(string(dmarc.SubdomainPolicy))
		}
		if dmarc.FailureOnAny {
			value.WriteString("; fo=1")
		}
		if dmarc.StrictAlignment {
			value.WriteString("; adkim=s; aspf=s")
		}
	} else {
		// Domain that sends no mail, reject everything.
		value.WriteString("; p=reject; sp=reject")
		if dmarc.FailureOnAny {
			value.WriteString("; fo=1")
		}
	}
	if dmarc.AggregateAddr != "" {
		value.WriteString("; rua=mailto:")
		value.WriteString(dmarc.AggregateAddr)
	}
	if dmarc.FailureAddr != "" {
		value.WriteString("; ruf=mailto:")
		value.WriteString(dmarc.FailureAddr)
	}

	set := RecordSet{{
		Kind:  KindDMARC,
		Zone:  parts.Parent,
		Type:  "TXT",
		Host:  "_dmarc" + parts.Prefix,
		Value: value.String(),
	}}

	seen := make(map[string]struct{}, 2)
	for _, addr := range []string{dmarc.AggregateAddr, dmarc.FailureAddr} {
		if addr == "" || !NeedsReportAuth(parts, addr) {
			continue
		}

		reportDomain := domain.FromEmail(addr)
		key, _ := dns.ForLookup(reportDomain)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		set = append(set, Record{
			Kind:  KindReportAuth,
			Zone:  reportDomain,
			Type:  "TXT",
			Host:  parts.Full + "._report._dmarc." + reportDomain,
			Value: "v=DMARC1",
		})
	}

	return set
}

// NeedsReportAuth reports whether reports sent to addr require an
// authorization record in the receiver domain, that is, whether the root
// domain of addr differs from the parent domain.
func NeedsReportAuth(parts domain.Parts, addr string) bool {
	return !dns.Equal(domain.RootFromEmail(addr), parts.Parent)
}

// RenderSPF returns the SPF record for cfg. Mechanisms keep the order they
// were added in and the record always ends with the soft-fail ~all.
func RenderSPF(cfg Config) RecordSet {
	parts := cfg.Domain

	host := "@"
	if parts.IsSubdomain() {
		host = parts.Label()
	}

	value := strings.Builder{}
	value.WriteString("v=spf1")
	for _, m := range cfg.SPF.Mechanisms {
		value.WriteRune(' ')
		value.WriteString(m.String())
	}
	value.WriteString(" ~all")

	return RecordSet{{
		Kind:  KindSPF,
		Zone:  parts.Parent,
		Type:  "TXT",
		Host:  host,
		Value: value.String(),
	}}
}

// RenderDKIM returns the DKIM key record for cfg. The key is left empty for
// domains that do not send mail.
func RenderDKIM(cfg Config) RecordSet {
	parts := cfg.Domain

	value := "v=DKIM1; k=rsa; p="
	if cfg.UsedForEmail {
		value += cfg.DKIM.PublicKeyOrPlaceholder()
	}

	return RecordSet{{
		Kind:  KindDKIM,
		Zone:  parts.Parent,
		Type:  "TXT",
		Host:  cfg.DKIM.SelectorOrDefault() + "._domainkey" + parts.Prefix,
		Value: value,
	}}
}
