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

	"github.com/tdlansing/dmarc-tool/framework/address"
	dmarccli "github.com/tdlansing/dmarc-tool/internal/cli"
	"github.com/tdlansing/dmarc-tool/internal/domain"
	"github.com/tdlansing/dmarc-tool/internal/records"
	"github.com/urfave/cli/v2"
)

func init() {
	dmarccli.AddSubcommand(
		&cli.Command{
			Name:  "records",
			Usage: "Print the records for a domain described by flags",
			Description: `Renders the same records as the wizard without asking any questions.

Mechanisms are added to the SPF record in the order: ip4, a, include, mx.
Host names passed using --a must be under the parent domain of --domain.
`,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "domain",
					Aliases:  []string{"d"},
					Usage:    "Domain to generate records for",
					Required: true,
				},
				&cli.BoolFlag{
					Name:  "no-email",
					Usage: "The domain does not send email, reject everything claiming to be from it",
				},
				&cli.StringFlag{
					Name:  "policy",
					Usage: "DMARC policy: none (m), quarantine (q) or reject (r)",
					Value: "none",
				},
				&cli.StringFlag{
					Name:  "subdomain-policy",
					Usage: "DMARC policy for subdomains, same values as --policy",
				},
				&cli.BoolFlag{
					Name:  "strict",
					Usage: "Require strict DKIM and SPF alignment",
				},
				&cli.BoolFlag{
					Name:  "fo",
					Usage: "Request failure reports if either SPF or DKIM fails",
				},
				&cli.StringFlag{
					Name:  "rua",
					Usage: "Send aggregate reports to `ADDRESS`",
				},
				&cli.StringFlag{
					Name:  "ruf",
					Usage: "Send failure reports to `ADDRESS`",
				},
				&cli.StringSliceFlag{
					Name:  "ip4",
					Usage: "Allow sending from the IPv4 address or CIDR range",
				},
				&cli.StringSliceFlag{
					Name:  "a",
					Usage: "Allow sending from the addresses of `HOST`",
				},
				&cli.StringSliceFlag{
					Name:  "include",
					Usage: "Include the SPF policy of a 3rd party `DOMAIN`",
				},
				&cli.BoolFlag{
					Name:  "mx",
					Usage: "Allow sending from the MX hosts of the domain",
				},
				&cli.StringFlag{
					Name:  "selector",
					Usage: "DKIM selector",
					Value: records.DefaultSelector,
				},
			},
			Action: recordsCommand,
		})
}

func usageErr(format string, args ...interface{}) error {
	return cli.Exit("Incorrect usage: "+fmt.Sprintf(format, args...), 2)
}

func configFromFlags(ctx *cli.Context) (records.Config, error) {
	name, err := domain.Normalize(ctx.String("domain"))
	if err != nil {
		return records.Config{}, usageErr("--domain: %v", err)
	}

	cfg := records.Config{
		Domain:       domain.Split(name),
		UsedForEmail: !ctx.Bool("no-email"),
	}
	cfg.DMARC.FailureOnAny = ctx.Bool("fo")

	for _, flag := range []string{"rua", "ruf"} {
		addr := ctx.String(flag)
		if addr != "" && !address.Valid(addr) {
			return records.Config{}, usageErr("--%s: invalid email address %q", flag, addr)
		}
	}
	cfg.DMARC.AggregateAddr = ctx.String("rua")
	cfg.DMARC.FailureAddr = ctx.String("ruf")

	if !cfg.UsedForEmail {
		cfg.DKIM.Selector = records.WildcardSelector
		return cfg, nil
	}

	cfg.DMARC.Policy, err = records.ParsePolicy(ctx.String("policy"))
	if err != nil {
		return records.Config{}, usageErr("--policy: %v", err)
	}
	if sp := ctx.String("subdomain-policy"); sp != "" {
		cfg.DMARC.SubdomainPolicy, err = records.ParsePolicy(sp)
		if err != nil {
			return records.Config{}, usageErr("--subdomain-policy: %v", err)
		}
	}
	cfg.DMARC.StrictAlignment = ctx.Bool("strict")

	for _, v := range ctx.StringSlice("ip4") {
		cfg.SPF.Mechanisms = append(cfg.SPF.Mechanisms, records.IP4(v))
	}
	for _, v := range ctx.StringSlice("a") {
		if !cfg.Domain.OwnsHost(v) {
			return records.Config{}, usageErr("--a: host %q is not under %s", v, cfg.Domain.Parent)
		}
		cfg.SPF.Mechanisms = append(cfg.SPF.Mechanisms, records.A(v))
	}
	for _, v := range ctx.StringSlice("include") {
		cfg.SPF.Mechanisms = append(cfg.SPF.Mechanisms, records.Include(v))
	}
	if ctx.Bool("mx") {
		cfg.SPF.Mechanisms = append(cfg.SPF.Mechanisms, records.MX())
	}

	cfg.DKIM.Selector = ctx.String("selector")

	if err := cfg.Validate(); err != nil {
		return records.Config{}, usageErr("%v", err)
	}
	return cfg, nil
}

func recordsCommand(ctx *cli.Context) error {
	cfg, err := configFromFlags(ctx)
	if err != nil {
		return err
	}

	dmarccli.Logger(ctx).DebugMsg("rendering records",
		"domain", cfg.Domain.Full,
		"email", cfg.UsedForEmail,
		"mechanisms", len(cfg.SPF.Mechanisms))

	return writeRecords(ctx, records.Render(cfg))
}
