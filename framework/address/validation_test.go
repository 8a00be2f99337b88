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


package address_test

import (
	"strings"
	"testing"

	"github.com/tdlansing/dmarc-tool/framework/address"
)

func TestValidMailboxName(t *testing.T) {
	for _, c := range []struct {
		Mbox  string
		Valid bool
	}{
		{Mbox: "dmarc.reports", Valid: true},
		{Mbox: "dmarc+rua", Valid: true},
		{Mbox: `"dmarc reports"`, Valid: true},
		{Mbox: "dmarc reports", Valid: false},
		{Mbox: "a;b", Valid: false},
		{Mbox: "a,b", Valid: false},
	} {
		if actual := address.ValidMailboxName(c.Mbox); actual != c.Valid {
			t.Errorf("expected mailbox %v to be valid=%v, but got %v", c.Mbox, c.Valid, actual)
		}
	}
}

func TestValidDomain(t *testing.T) {
	for _, c := range []struct {
		Domain string
		Valid  bool
	}{
		{Domain: "example.org", Valid: true},
		{Domain: "", Valid: false},
		{Domain: "example.org.", Valid: true},
		{Domain: "..", Valid: false},
		{Domain: ".example.org", Valid: false},
		{Domain: "exa mple.org", Valid: false},
		{Domain: strings.Repeat("a", 256), Valid: false},
		{Domain: strings.Repeat("a", 64) + ".org", Valid: false},
		{Domain: "пример.рф", Valid: true},
		{Domain: "xn--e1afmkfd.xn--p1ai", Valid: true},
	} {
		if actual := address.ValidDomain(c.Domain); actual != c.Valid {
			t.Errorf("expected domain %v to be valid=%v, but got %v", c.Domain, c.Valid, actual)
		}
	}
}

func TestValid(t *testing.T) {
	for _, c := range []struct {
		Addr  string
		Valid bool
	}{
		{Addr: "dmarc@example.org", Valid: true},
		{Addr: "dmarc@mail.example.org", Valid: true},
		{Addr: "dmarc", Valid: false},
		{Addr: "@example.org", Valid: false},
		{Addr: "dmarc@", Valid: false},
		{Addr: "dmarc;p=none@example.org", Valid: false},
	} {
		if actual := address.Valid(c.Addr); actual != c.Valid {
			t.Errorf("expected address %v to be valid=%v, but got %v", c.Addr, c.Valid, actual)
		}
	}
}
