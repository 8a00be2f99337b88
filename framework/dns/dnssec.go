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

package dns

import (
	"context"
	"errors"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/miekg/dns"
)

// ExtResolver is a convenience wrapper for miekg/dns library that provides
// access to certain low-level functionality (notably, AD flag in responses,
// indicating whether DNSSEC verification was performed by the server).
//
// It implements Resolver so it can be used in place of the system resolver.
type ExtResolver struct {
	cl  *dns.Client
	Cfg *dns.ClientConfig
}

// RCodeError is returned by ExtResolver when the RCODE in response is not
// NOERROR.
type RCodeError struct {
	Name string
	Code int
}

func (err RCodeError) Temporary() bool {
	return err.Code == dns.RcodeServerFailure
}

func (err RCodeError) Error() string {
	switch err.Code {
	case dns.RcodeFormatError:
		return "dns: rcode FORMERR when looking up " + err.Name
	case dns.RcodeServerFailure:
		return "dns: rcode SERVFAIL when looking up " + err.Name
	case dns.RcodeNameError:
		return "dns: rcode NXDOMAIN when looking up " + err.Name
	case dns.RcodeNotImplemented:
		return "dns: rcode NOTIMP when looking up " + err.Name
	case dns.RcodeRefused:
		return "dns: rcode REFUSED when looking up " + err.Name
	}
	return "dns: non-success rcode: " + strconv.Itoa(err.Code) + " when looking up " + err.Name
}

// IsNotFound reports whether err indicates that the name does not exist
// (NXDOMAIN) or has no records of the requested type.
func IsNotFound(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.IsNotFound
	}
	var rcodeErr RCodeError
	if errors.As(err, &rcodeErr) {
		return rcodeErr.Code == dns.RcodeNameError
	}
	return false
}

func isLoopback(addr string) bool {
	ip := net.ParseIP(addr)
	if ip == nil {
		return false
	}
	return ip.IsLoopback()
}

func (e ExtResolver) exchange(ctx context.Context, msg *dns.Msg) (*dns.Msg, error) {
	var resp *dns.Msg
	var lastErr error
	for _, srv := range e.Cfg.Servers {
		resp, _, lastErr = e.cl.ExchangeContext(ctx, msg, net.JoinHostPort(srv, e.Cfg.Port))
		if lastErr != nil {
			continue
		}

		if resp.Rcode != dns.RcodeSuccess {
			lastErr = RCodeError{msg.Question[0].Name, resp.Rcode}
			continue
		}

		// Diregard AD flags from non-local resolvers, likely they are
		// communicated with using an insecure channel and so flags can be
		// tampered with.
		if !isLoopback(srv) {
			resp.AuthenticatedData = false
		}

		break
	}
	return resp, lastErr
}

func (e ExtResolver) query(ctx context.Context, name string, qtype uint16) (*dns.Msg, error) {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(name), qtype)
	msg.SetEdns0(4096, false)
	msg.AuthenticatedData = true

	return e.exchange(ctx, msg)
}

func (e ExtResolver) AuthLookupTXT(ctx context.Context, name string) (ad bool, recs []string, err error) {
	resp, err := e.query(ctx, name, dns.TypeTXT)
	if err != nil {
		return false, nil, err
	}

	ad = resp.AuthenticatedData
	recs = make([]string, 0, len(resp.Answer))
	for _, rr := range resp.Answer {
		txtRR, ok := rr.(*dns.TXT)
		if !ok {
			continue
		}

		recs = append(recs, strings.Join(txtRR.Txt, ""))
	}
	return
}

func (e ExtResolver) AuthLookupMX(ctx context.Context, name string) (ad bool, mxs []*net.MX, err error) {
	resp, err := e.query(ctx, name, dns.TypeMX)
	if err != nil {
		return false, nil, err
	}

	ad = resp.AuthenticatedData
	mxs = make([]*net.MX, 0, len(resp.Answer))
	for _, rr := range resp.Answer {
		mxRR, ok := rr.(*dns.MX)
		if !ok {
			continue
		}

		mxs = append(mxs, &net.MX{
			Host: mxRR.Mx,
			Pref: mxRR.Preference,
		})
	}
	return
}

// AuthLookupHost queries both AAAA and A records for host.
//
// An error is returned only if both queries failed. The AD flag is set only
// if every successful response was authenticated.
func (e ExtResolver) AuthLookupHost(ctx context.Context, host string) (ad bool, addrs []string, err error) {
	ad = true
	answered := false
	var lastErr error
	for _, qtype := range []uint16{dns.TypeAAAA, dns.TypeA} {
		resp, err := e.query(ctx, host, qtype)
		if err != nil {
			lastErr = err
			continue
		}
		answered = true
		ad = ad && resp.AuthenticatedData

		for _, rr := range resp.Answer {
			switch rr := rr.(type) {
			case *dns.A:
				addrs = append(addrs, rr.A.String())
			case *dns.AAAA:
				addrs = append(addrs, rr.AAAA.String())
			}
		}
	}
	if !answered {
		return false, nil, lastErr
	}
	return ad, addrs, nil
}

// AuthLookupIPAddr is AuthLookupHost returning parsed addresses, IPv6
// addresses first.
func (e ExtResolver) AuthLookupIPAddr(ctx context.Context, host string) (ad bool, addrs []net.IPAddr, err error) {
	ad, strAddrs, err := e.AuthLookupHost(ctx, host)
	if err != nil {
		return false, nil, err
	}

	addrs = make([]net.IPAddr, 0, len(strAddrs))
	for _, addr := range strAddrs {
		ip := net.ParseIP(addr)
		if ip == nil {
			continue
		}
		addrs = append(addrs, net.IPAddr{IP: ip})
	}
	return ad, addrs, nil
}

func (e ExtResolver) AuthLookupAddr(ctx context.Context, addr string) (ad bool, names []string, err error) {
	revAddr, err := dns.ReverseAddr(addr)
	if err != nil {
		return false, nil, err
	}

	resp, err := e.query(ctx, revAddr, dns.TypePTR)
	if err != nil {
		return false, nil, err
	}

	ad = resp.AuthenticatedData
	names = make([]string, 0, len(resp.Answer))
	for _, rr := range resp.Answer {
		ptrRR, ok := rr.(*dns.PTR)
		if !ok {
			continue
		}

		names = append(names, ptrRR.Ptr)
	}
	return
}

func (e ExtResolver) LookupTXT(ctx context.Context, name string) ([]string, error) {
	_, recs, err := e.AuthLookupTXT(ctx, name)
	return recs, err
}

func (e ExtResolver) LookupMX(ctx context.Context, name string) ([]*net.MX, error) {
	_, mxs, err := e.AuthLookupMX(ctx, name)
	return mxs, err
}

func (e ExtResolver) LookupHost(ctx context.Context, host string) ([]string, error) {
	_, addrs, err := e.AuthLookupHost(ctx, host)
	return addrs, err
}

func (e ExtResolver) LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error) {
	_, addrs, err := e.AuthLookupIPAddr(ctx, host)
	return addrs, err
}

func (e ExtResolver) LookupAddr(ctx context.Context, addr string) ([]string, error) {
	_, names, err := e.AuthLookupAddr(ctx, addr)
	return names, err
}

// NewExtResolver creates the stub resolver using servers listed in
// /etc/resolv.conf or the server set using Override.
func NewExtResolver() (*ExtResolver, error) {
	return NewExtResolverFromFile("/etc/resolv.conf")
}

func NewExtResolverFromFile(resolvConf string) (*ExtResolver, error) {
	overridden := overrideServ != "" && overrideServ != "system-default"

	cfg, err := dns.ClientConfigFromFile(resolvConf)
	if err != nil {
		if !overridden {
			return nil, err
		}
		// resolv.conf is only needed for the server list.
		cfg = &dns.ClientConfig{Ndots: 1, Timeout: 5, Attempts: 2}
	}

	if overridden {
		host, port, err := net.SplitHostPort(overrideServ)
		if err != nil {
			return nil, err
		}
		cfg.Servers = []string{host}
		cfg.Port = port
	}

	if len(cfg.Servers) == 0 {
		cfg.Servers = []string{"127.0.0.1"}
	}

	cl := new(dns.Client)
	cl.Dialer = &net.Dialer{
		Timeout: time.Duration(cfg.Timeout) * time.Second,
	}
	return &ExtResolver{
		cl:  cl,
		Cfg: cfg,
	}, nil
}
