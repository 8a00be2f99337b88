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
	"os"

	"github.com/tdlansing/dmarc-tool/internal/cli/clitools"
	"github.com/tdlansing/dmarc-tool/internal/records"
	"github.com/urfave/cli/v2"
)

// writeRecords prints set to the application output and, if --output is
// set, to the named file.
func writeRecords(c *cli.Context, set records.RecordSet) error {
	fmt.Fprintln(c.App.Writer)
	if err := records.Format(c.App.Writer, set); err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer)

	path := c.Path("output")
	if path == "" {
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return cli.Exit(fmt.Sprintf("cannot write records: %v", err), 1)
	}
	if err := records.Format(f, set); err != nil {
		f.Close()
		return cli.Exit(fmt.Sprintf("cannot write records: %v", err), 1)
	}
	if err := f.Close(); err != nil {
		return cli.Exit(fmt.Sprintf("cannot write records: %v", err), 1)
	}

	fmt.Fprintf(c.App.Writer, "Records have been saved to '%s'.\n", path)
	return nil
}

// canClear reports whether w is a terminal that understands the escape
// sequence used to clear the screen.
func canClear(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && clitools.IsTerminal(f)
}
