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


package log

import (
	"errors"
	"testing"
	"time"

	"github.com/tdlansing/dmarc-tool/framework/exterrors"
)

func captureLogger(debug bool) (*[]string, Logger) {
	var lines []string
	return &lines, Logger{
		Out: FuncOutput(func(_ time.Time, debug bool, msg string) {
			if debug {
				msg = "[debug] " + msg
			}
			lines = append(lines, msg)
		}, func() error { return nil }),
		Name:  "test",
		Debug: debug,
	}
}

func TestLogger_Msg(t *testing.T) {
	lines, l := captureLogger(false)

	l.Msg("lookup done", "domain", "example.org", "found", true)
	l.Println("plain", 1)
	l.DebugMsg("hidden")

	want := []string{
		`test: lookup done	{"domain":"example.org","found":true}`,
		`test: plain 1`,
	}
	if len(*lines) != len(want) {
		t.Fatalf("want %d lines, got %d: %q", len(want), len(*lines), *lines)
	}
	for i := range want {
		if (*lines)[i] != want[i] {
			t.Errorf("line %d: want %q, got %q", i, want[i], (*lines)[i])
		}
	}
}

func TestLogger_Error(t *testing.T) {
	lines, l := captureLogger(true)

	err := exterrors.WithFields(errors.New("servfail"), map[string]interface{}{
		"host": "_dmarc.example.org",
	})
	l.Error("DMARC lookup failed", err)
	l.DebugError("DMARC lookup failed", nil)
	l.DebugError("host lookup failed", errors.New("timeout"), "domain", "example.org")

	want := []string{
		`test: DMARC lookup failed	{"host":"_dmarc.example.org","reason":"servfail"}`,
		`[debug] test: host lookup failed	{"domain":"example.org","reason":"timeout"}`,
	}
	if len(*lines) != len(want) {
		t.Fatalf("want %d lines, got %d: %q", len(want), len(*lines), *lines)
	}
	for i := range want {
		if (*lines)[i] != want[i] {
			t.Errorf("line %d: want %q, got %q", i, want[i], (*lines)[i])
		}
	}
}
