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
	"fmt"
	"net"

	"blitiri.com.ar/go/spf"
	"github.com/tdlansing/dmarc-tool/framework/dns"
	"github.com/tdlansing/dmarc-tool/framework/exterrors"
)

// HostCheck is the SPF result for mail sent from one address of a host.
type HostCheck struct {
	Host   string
	IP     net.IP
	Result spf.Result
	Err    error
}

// CheckMXHosts evaluates the SPF policy of domain for every address of its
// MX hosts, that is, whether the servers receiving mail for domain are also
// allowed to send it.
//
// Lookup failures for individual hosts are reported in HostCheck.Err, only
// the failure to look up the MX records is returned as an error.
func CheckMXHosts(ctx context.Context, r dns.Resolver, domain string) ([]HostCheck, error) {
	hosts, err := dns.LookupMXHosts(ctx, r, domain)
	if err != nil {
		if dns.IsNotFound(err) {
			return nil, nil
		}
		return nil, exterrors.WithDNSFields(fmt.Errorf("spf: %w", err), domain)
	}

	sender := "postmaster@" + domain

	var checks []HostCheck
	for _, host := range hosts {
		addrs, err := r.LookupIPAddr(ctx, dns.FQDN(host))
		if err != nil {
			checks = append(checks, HostCheck{Host: host, Err: err})
			continue
		}

		for _, addr := range addrs {
			res, err := spf.CheckHostWithSender(addr.IP, dns.FQDN(host), sender,
				spf.WithContext(ctx), spf.WithResolver(r))
			checks = append(checks, HostCheck{
				Host:   host,
				IP:     addr.IP,
				Result: res,
				Err:    err,
			})
		}
	}
	return checks, nil
}
