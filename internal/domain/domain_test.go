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


package domain

import (
	"strings"
	"testing"
)

func TestSplit(t *testing.T) {
	test := func(full, parent, prefix string) {
		t.Helper()

		parts := Split(full)
		if parts.Full != full {
			t.Errorf("%s: Full changed to %s", full, parts.Full)
		}
		if parts.Parent != parent {
			t.Errorf("%s: wrong parent, want %s, got %s", full, parent, parts.Parent)
		}
		if parts.Prefix != prefix {
			t.Errorf("%s: wrong prefix, want %s, got %s", full, prefix, parts.Prefix)
		}
	}

	test("", "", "")
	test("localhost", "localhost", "")
	test("example.com", "example.com", "")
	test("mail.example.com", "example.com", ".mail")
	test("mail.corp.example.com", "example.com", ".mail.corp")
	test("a.b.c.d.example.com", "example.com", ".a.b.c.d")

	// Known limitation, matches the heuristic.
	test("foo.co.uk", "co.uk", ".foo")
}

func TestSplit_Invariants(t *testing.T) {
	for _, full := range []string{
		"example.com",
		"x.y",
		"mail.example.com",
		"mail.corp.example.com",
		"a.b.c.d.e.f.example.org",
		"xn--e1afmkfd.xn--p1ai",
		"sub.xn--e1afmkfd.xn--p1ai",
	} {
		parts := Split(full)
		if !strings.HasSuffix(full, parts.Parent) {
			t.Errorf("%s: parent %s is not a suffix", full, parts.Parent)
		}

		if strings.Count(full, ".") <= 1 {
			if parts.Prefix != "" || parts.Parent != full {
				t.Errorf("%s: expected no prefix, got %+v", full, parts)
			}
			if parts.IsSubdomain() {
				t.Errorf("%s: IsSubdomain is true", full)
			}
			continue
		}

		if parts.Label()+"."+parts.Parent != full {
			t.Errorf("%s: prefix and parent do not reassemble: %+v", full, parts)
		}
		if !strings.HasPrefix(parts.Prefix, ".") {
			t.Errorf("%s: prefix %s has no leading dot", full, parts.Prefix)
		}
	}
}

func TestRootFromEmail(t *testing.T) {
	test := func(email, root string) {
		t.Helper()
		if actual := RootFromEmail(email); actual != root {
			t.Errorf("%s: want %s, got %s", email, root, actual)
		}
	}

	test("a@b.c.example.com", "example.com")
	test("dmarc@example.com", "example.com")
	test("dmarc@mail.example.org", "example.org")
	test("example.net", "example.net")
	test(`"a@b"@reports.example.net`, "example.net")
}

func TestFromEmail(t *testing.T) {
	if d := FromEmail("dmarc@reports.example.net"); d != "reports.example.net" {
		t.Errorf("unexpected domain: %s", d)
	}
}

func TestOrgDomain(t *testing.T) {
	test := func(full, org string) {
		t.Helper()
		actual, err := OrgDomain(full)
		if err != nil {
			t.Fatalf("%s: %v", full, err)
		}
		if actual != org {
			t.Errorf("%s: want %s, got %s", full, org, actual)
		}
	}

	test("mail.example.com", "example.com")
	test("foo.co.uk", "foo.co.uk")
	test("mail.foo.co.uk", "foo.co.uk")
	test("example.com.", "example.com")

	if _, err := OrgDomain("co.uk"); err == nil {
		t.Error("expected error for a bare public suffix")
	}
}

func TestNormalize(t *testing.T) {
	test := func(name, expected string, fail bool) {
		t.Helper()
		actual, err := Normalize(name)
		if (err != nil) != fail {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if actual != expected {
			t.Errorf("%s: want %s, got %s", name, expected, actual)
		}
	}

	test("example.org", "example.org", false)
	test("Mail.Example.ORG.", "mail.example.org", false)
	test("пример.рф", "xn--e1afmkfd.xn--p1ai", false)
	test("", "", true)
	test("exa mple.org", "", true)
	test("a..example.org", "", true)
	test(".example.org", "", true)
}

func TestParts_OwnsHost(t *testing.T) {
	parts := Split("mail.example.org")

	test := func(host string, expected bool) {
		t.Helper()
		if actual := parts.OwnsHost(host); actual != expected {
			t.Errorf("%s: want %v, got %v", host, expected, actual)
		}
	}

	test("smtp.example.org", true)
	test("a.b.example.org", true)
	test("smtp.example.org.", true)
	test("SMTP.EXAMPLE.ORG", true)
	test("example.org", false)
	test("smtp.example.net", false)
	test("smtp", false)
}
