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

package ctl

import (
	"fmt"
	"io"
	"strings"

	"github.com/emersion/go-msgauth/dmarc"
	"github.com/tdlansing/dmarc-tool/framework/dns"
	dmarccli "github.com/tdlansing/dmarc-tool/internal/cli"
	currentdmarc "github.com/tdlansing/dmarc-tool/internal/dmarc"
	"github.com/tdlansing/dmarc-tool/internal/domain"
	"github.com/urfave/cli/v2"
)

func init() {
	dmarccli.AddSubcommand(
		&cli.Command{
			Name:      "lookup",
			Usage:     "Show the DMARC, SPF and MX records currently published for a domain",
			ArgsUsage: "DOMAIN",
			Action:    lookupCommand,
		})
}

func field(w io.Writer, name string, value interface{}) {
	fmt.Fprintf(w, "%-20s%v\n", name+":", value)
}

func alignmentName(mode dmarc.AlignmentMode) string {
	if mode == dmarc.AlignmentStrict {
		return "strict"
	}
	return "relaxed"
}

func listOrNone(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	return strings.Join(values, ", ")
}

func printCurrent(w io.Writer, cur *currentdmarc.Current) {
	field(w, "DMARC record", cur.Raw)

	field(w, "  Policy", cur.Policy)
	if cur.SubdomainPolicy != "" {
		field(w, "  Subdomain policy", cur.SubdomainPolicy)
	} else {
		field(w, "  Subdomain policy", string(cur.Policy)+" (inherited)")
	}
	field(w, "  DKIM alignment", alignmentName(cur.DKIMAlignment))
	field(w, "  SPF alignment", alignmentName(cur.SPFAlignment))
	if cur.FailureOnAny {
		field(w, "  Failure reports", "if SPF or DKIM fails")
	} else {
		field(w, "  Failure reports", "if both SPF and DKIM fail")
	}
	field(w, "  Aggregate to", listOrNone(cur.Aggregate))
	field(w, "  Failure to", listOrNone(cur.Failure))
}

func lookupCommand(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.Exit("Incorrect usage: exactly one domain name is required", 2)
	}
	name, err := domain.Normalize(ctx.Args().First())
	if err != nil {
		return cli.Exit(fmt.Sprintf("Incorrect usage: %v", err), 2)
	}

	resolver, err := dmarccli.Resolver(ctx)
	if err != nil {
		return err
	}
	l := dmarccli.Logger(ctx)
	w := ctx.App.Writer

	field(w, "Domain", name)

	exists, err := currentdmarc.Exists(ctx.Context, resolver, name)
	l.DebugError("host lookup failed", err, "domain", name)
	if exists {
		field(w, "Exists", "yes")
	} else {
		field(w, "Exists", "unable to verify")
	}

	cur, err := currentdmarc.FetchRecord(ctx.Context, resolver, name)
	switch {
	case err != nil:
		l.Error("DMARC record lookup failed", err, "domain", name)
		field(w, "DMARC record", "lookup failed")
	case cur == nil:
		field(w, "DMARC record", "none")
	default:
		printCurrent(w, cur)
	}

	spf, err := currentdmarc.FetchSPF(ctx.Context, resolver, name)
	switch {
	case err != nil:
		l.Error("SPF record lookup failed", err, "domain", name)
		field(w, "SPF record", "lookup failed")
	case spf == "":
		field(w, "SPF record", "none")
	default:
		field(w, "SPF record", spf)
	}

	mx, err := dns.LookupMXHosts(ctx.Context, resolver, name)
	if err != nil && !dns.IsNotFound(err) {
		l.Error("MX lookup failed", err, "domain", name)
		field(w, "MX hosts", "lookup failed")
	} else {
		field(w, "MX hosts", listOrNone(mx))
	}
	if len(mx) == 0 {
		return nil
	}

	// Servers that receive mail usually send it too.
	checks, err := currentdmarc.CheckMXHosts(ctx.Context, resolver, name)
	if err != nil {
		l.Error("MX lookup failed", err, "domain", name)
		return nil
	}
	for _, c := range checks {
		if c.IP == nil {
			l.Error("MX host lookup failed", c.Err, "host", c.Host)
			fmt.Fprintf(w, "  SPF for %s: lookup failed\n", c.Host)
			continue
		}
		l.DebugError("SPF evaluation", c.Err, "host", c.Host, "ip", c.IP.String())
		fmt.Fprintf(w, "  SPF for %s (%s): %s\n", c.Host, c.IP, c.Result)
	}

	return nil
}
