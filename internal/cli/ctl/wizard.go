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
	"errors"

	dmarccli "github.com/tdlansing/dmarc-tool/internal/cli"
	"github.com/tdlansing/dmarc-tool/internal/cli/clitools"
	"github.com/tdlansing/dmarc-tool/internal/dmarc"
	"github.com/tdlansing/dmarc-tool/internal/records"
	"github.com/tdlansing/dmarc-tool/internal/wizard"
	"github.com/urfave/cli/v2"
)

func init() {
	dmarccli.AddSubcommand(
		&cli.Command{
			Name:  "wizard",
			Usage: "Ask questions about a domain and print its DMARC, SPF and DKIM records",
			Description: `Starts the interactive wizard. This is also what happens when
dmarc-tool is started without a command.

Answers are read from stdin one line at a time. Records currently
published for the domain are shown as hints next to the questions.
`,
			Action: wizardCommand,
		})
}

func wizardCommand(ctx *cli.Context) error {
	resolver, err := dmarccli.Resolver(ctx)
	if err != nil {
		return err
	}
	l := dmarccli.Logger(ctx)

	p := clitools.NewPrompter(ctx.App.Reader, ctx.App.Writer)
	p.NoClear = ctx.Bool("no-clear") || !canClear(ctx.App.Writer)

	cfg, err := wizard.New(p, dmarc.NewHints(resolver, l), l).Run(ctx.Context)
	if err != nil {
		if errors.Is(err, clitools.ErrAborted) {
			return cli.Exit("Aborted, no records were generated.", 1)
		}
		return err
	}

	return writeRecords(ctx, records.Render(cfg))
}
