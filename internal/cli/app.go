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

// Package dmarccli holds the command-line application. Commands are
// registered by internal/cli/ctl using AddSubcommand.
package dmarccli

import (
	"fmt"
	"io"
	"net"
	"os"

	"github.com/tdlansing/dmarc-tool/framework/dns"
	"github.com/tdlansing/dmarc-tool/framework/log"
	"github.com/urfave/cli/v2"
)

var app *cli.App

func init() {
	app = cli.NewApp()
	app.Name = "dmarc-tool"
	app.Usage = "DMARC, SPF and DKIM DNS record wizard"
	app.Description = `dmarc-tool asks a series of questions about a domain and prints the
DNS TXT records needed to publish DMARC, SPF and DKIM policies for it.

Records currently published for the domain are looked up and shown as
hints. Run without a command to start the interactive wizard, use
'records' to render the records from command-line flags instead.
`
	app.Version = BuildInfo()
	app.Authors = []*cli.Author{
		{
			Name: "dmarc-tool contributors",
		},
	}
	app.ExitErrHandler = func(c *cli.Context, err error) {
		cli.HandleExitCoder(err)
		if err != nil {
			log.Println(err)
			cli.OsExiter(1)
		}
	}
	app.OnUsageError = usageError
	app.EnableBashCompletion = true
	app.Before = setupGlobals
	app.Flags = GlobalFlags()
	app.Commands = []*cli.Command{
		{
			Name:   "generate-man",
			Hidden: true,
			Action: func(c *cli.Context) error {
				man, err := app.ToMan()
				if err != nil {
					return err
				}
				fmt.Println(man)
				return nil
			},
		},
		{
			Name:   "generate-fish-completion",
			Hidden: true,
			Action: func(c *cli.Context) error {
				cp, err := app.ToFishCompletion()
				if err != nil {
					return err
				}
				fmt.Println(cp)
				return nil
			},
		},
	}
}

// GlobalFlags returns the flags accepted before any command.
func GlobalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "debug",
			Usage:   "Log DNS lookups and their failures to stderr",
			EnvVars: []string{"DMARC_TOOL_DEBUG"},
		},
		&cli.StringFlag{
			Name:    "dns-server",
			Usage:   "Send DNS queries to `IP:PORT` instead of the system-configured servers",
			EnvVars: []string{"DMARC_TOOL_DNS_SERVER"},
		},
		&cli.StringFlag{
			Name:    "resolver",
			Usage:   "DNS resolver to use: 'system' (Go resolver) or 'stub' (queries servers from resolv.conf directly)",
			EnvVars: []string{"DMARC_TOOL_RESOLVER"},
			Value:   "system",
		},
		&cli.BoolFlag{
			Name:  "no-clear",
			Usage: "Do not clear the screen between questions",
		},
		&cli.PathFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Also write the records to `FILE`",
		},
	}
}

func usageError(c *cli.Context, err error, isSubcommand bool) error {
	return cli.Exit("Incorrect usage: "+err.Error(), 2)
}

func setupGlobals(c *cli.Context) error {
	log.DefaultLogger.Debug = c.Bool("debug")

	if srv := c.String("dns-server"); srv != "" {
		if _, _, err := net.SplitHostPort(srv); err != nil {
			return cli.Exit(fmt.Sprintf("Incorrect usage: --dns-server: %v", err), 2)
		}
		dns.Override(srv)
	}

	switch r := c.String("resolver"); r {
	case "", "system", "stub":
	default:
		return cli.Exit(fmt.Sprintf("Incorrect usage: unknown resolver %q, use 'system' or 'stub'", r), 2)
	}
	return nil
}

// Resolver returns the resolver selected by the --resolver flag.
func Resolver(c *cli.Context) (dns.Resolver, error) {
	if c.String("resolver") != "stub" {
		return dns.DefaultResolver(), nil
	}

	res, err := dns.NewExtResolver()
	if err != nil {
		return nil, cli.Exit(fmt.Sprintf("cannot configure stub resolver: %v\n"+
			"Use --resolver system or set the server using --dns-server.", err), 1)
	}
	return res, nil
}

// Logger returns a logger named after the running command.
func Logger(c *cli.Context) log.Logger {
	l := log.DefaultLogger
	l.Name = app.Name
	if c.Command != nil && c.Command.Name != "" {
		l.Name = c.Command.Name
	}
	return l
}

func AddSubcommand(cmd *cli.Command) {
	app.Commands = append(app.Commands, cmd)

	if cmd.Name == "wizard" {
		// Plain ./dmarc-tool starts the wizard.
		app.Action = cmd.Action
		app.Flags = append(app.Flags, cmd.Flags...)
	}
}

// RunArgs runs the application with the specified arguments. Answers are
// read from in, records and prompts are written to out.
func RunArgs(args []string, in io.Reader, out io.Writer) error {
	app.Reader = in
	app.Writer = out
	return app.Run(args)
}

// Run runs the application with the process arguments.
func Run() {
	if err := RunArgs(os.Args, os.Stdin, os.Stdout); err != nil {
		log.DefaultLogger.Error("app.Run failed", err)
	}
}
