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

package dmarc

import (
	"context"

	"github.com/tdlansing/dmarc-tool/framework/dns"
	"github.com/tdlansing/dmarc-tool/framework/log"
)

// Hints wraps lookup functions for use by the wizard. All errors are logged
// at debug level and reported as absence of information.
type Hints struct {
	Resolver dns.Resolver
	Log      log.Logger
}

func NewHints(r dns.Resolver, l log.Logger) Hints {
	return Hints{Resolver: r, Log: l}
}

func (h Hints) DomainExists(ctx context.Context, domain string) bool {
	exists, err := Exists(ctx, h.Resolver, domain)
	h.Log.DebugError("host lookup failed", err, "domain", domain)
	return exists
}

func (h Hints) CurrentDMARC(ctx context.Context, domain string) *Current {
	cur, err := FetchRecord(ctx, h.Resolver, domain)
	if err != nil {
		h.Log.DebugError("DMARC record lookup failed", err, "domain", domain)
		return nil
	}
	if cur != nil {
		h.Log.DebugMsg("current DMARC record", "domain", domain, "record", cur.Raw)
	}
	return cur
}

func (h Hints) CurrentSPF(ctx context.Context, domain string) string {
	rec, err := FetchSPF(ctx, h.Resolver, domain)
	h.Log.DebugError("SPF record lookup failed", err, "domain", domain)
	return rec
}

func (h Hints) CurrentMX(ctx context.Context, domain string) []string {
	hosts, err := dns.LookupMXHosts(ctx, h.Resolver, domain)
	if err != nil && !dns.IsNotFound(err) {
		h.Log.DebugError("MX lookup failed", err, "domain", domain)
	}
	return hosts
}
