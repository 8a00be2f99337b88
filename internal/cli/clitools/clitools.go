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

// Package clitools implements the line-oriented prompting used by the
// interactive wizard.
package clitools

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrAborted is returned when the input is closed before an answer is read.
var ErrAborted = errors.New("clitools: input closed, aborting")

// Prompter writes questions to out and reads answers from in, one line per
// answer.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer

	// NoClear disables clearing of the screen between questions.
	NoClear bool
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// Println writes each line followed by a newline.
func (p *Prompter) Println(lines ...string) {
	for _, line := range lines {
		fmt.Fprintln(p.out, line)
	}
}

// Clear clears the terminal and moves the cursor to the top left corner.
func (p *Prompter) Clear() {
	if p.NoClear {
		return
	}
	fmt.Fprint(p.out, "\x1b[H\x1b[2J")
}

// Line writes prompt (without a newline) and reads a single line of input
// with surrounding whitespace removed.
func (p *Prompter) Line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		fmt.Fprintln(p.out)
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", ErrAborted
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// YesNo prints the question lines and asks for 'y' or 'n' until one of them
// is entered.
func (p *Prompter) YesNo(question ...string) (bool, error) {
	for {
		p.Println(question...)
		p.Println("", "Enter: 'y' for yes or 'n' for no.", "")
		answer, err := p.Line("Selection: ")
		if err != nil {
			return false, err
		}

		switch strings.ToLower(answer) {
		case "y":
			return true, nil
		case "n":
			return false, nil
		}

		p.Clear()
		p.Println("Sorry, '"+answer+"' is not a valid response. 'y' or 'n' must be entered.", "")
	}
}
