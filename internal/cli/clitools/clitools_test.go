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


package clitools

import (
	"errors"
	"strings"
	"testing"
)

func TestPrompter_YesNo(t *testing.T) {
	test := func(input string, expected bool, fail bool, invalid int) {
		t.Helper()

		out := strings.Builder{}
		p := NewPrompter(strings.NewReader(input), &out)
		p.NoClear = true

		actual, err := p.YesNo("Is 'example.org' the correct domain?")
		if (err != nil) != fail {
			t.Fatalf("%q: unexpected error: %v", input, err)
		}
		if actual != expected {
			t.Errorf("%q: want %v, got %v", input, expected, actual)
		}
		if n := strings.Count(out.String(), "is not a valid response"); n != invalid {
			t.Errorf("%q: want %d invalid response messages, got %d", input, invalid, n)
		}
		if strings.Contains(out.String(), "\x1b[") {
			t.Error("screen cleared with NoClear set")
		}
	}

	test("y\n", true, false, 0)
	test("n\n", false, false, 0)
	test(" Y \n", true, false, 0)
	test("yes\nmaybe\nn\n", false, false, 2)
	test("", false, true, 0)
	test("x\n", false, true, 1)
}

func TestPrompter_Line(t *testing.T) {
	out := strings.Builder{}
	p := NewPrompter(strings.NewReader("  example.org  \n"), &out)

	line, err := p.Line("Domain name: ")
	if err != nil {
		t.Fatal(err)
	}
	if line != "example.org" {
		t.Errorf("unexpected line: %q", line)
	}
	if out.String() != "Domain name: " {
		t.Errorf("unexpected prompt output: %q", out.String())
	}

	if _, err := p.Line("Again: "); !errors.Is(err, ErrAborted) {
		t.Errorf("expected ErrAborted, got %v", err)
	}
}

func TestPrompter_Clear(t *testing.T) {
	out := strings.Builder{}
	p := NewPrompter(strings.NewReader(""), &out)
	p.Clear()
	if out.String() != "\x1b[H\x1b[2J" {
		t.Errorf("unexpected clear sequence: %q", out.String())
	}
}
