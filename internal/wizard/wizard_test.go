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


package wizard

import (
	"context"
	"errors"
	"net"
	"reflect"
	"strings"
	"testing"

	"github.com/foxcpp/go-mockdns"
	"github.com/tdlansing/dmarc-tool/internal/cli/clitools"
	"github.com/tdlansing/dmarc-tool/internal/dmarc"
	"github.com/tdlansing/dmarc-tool/internal/domain"
	"github.com/tdlansing/dmarc-tool/internal/records"
	"github.com/tdlansing/dmarc-tool/internal/testutils"
)

var testZones = map[string]mockdns.Zone{
	"example.org.": {
		A:   []string{"192.0.2.1"},
		MX:  []net.MX{{Host: "mx.example.org.", Pref: 10}},
		TXT: []string{"v=spf1 mx ~all"},
	},
	"_dmarc.example.org.": {
		TXT: []string{"v=DMARC1; p=quarantine; adkim=s; aspf=s; rua=mailto:dmarc@example.org"},
	},
}

func runWizard(t *testing.T, input ...string) (records.Config, string, error) {
	t.Helper()

	p, out := testutils.Prompter(t, input...)
	l := testutils.Logger(t, "wizard")
	cfg, err := New(p, dmarc.NewHints(&mockdns.Resolver{Zones: testZones}, l), l).Run(context.Background())
	return cfg, out.String(), err
}

func expectOutput(t *testing.T, out string, lines ...string) {
	t.Helper()
	for _, l := range lines {
		if !strings.Contains(out, l) {
			t.Errorf("output does not contain %q", l)
		}
	}
}

func TestWizard_Email(t *testing.T) {
	cfg, out, err := runWizard(t,
		"example.org", "y",
		"y",
		"x", "r",
		"y", "q",
		"n",
		"y", "bad address", "reports@example.net", "n", "dmarc@example.org",
		"y", "ruf@mail.example.org", "y",
		"5", "9",
		"1", "300.1.1.1",
		"1", "192.0.2.0/24",
		"2", "mail.other.com",
		"2", "example",
		"2", "mail.example.org",
		"3", "google",
		"3", "_spf.google.com",
		"4",
		"5",
		"",
	)
	if err != nil {
		t.Fatal(err)
	}

	expected := records.Config{
		Domain:       domain.Parts{Full: "example.org", Parent: "example.org"},
		UsedForEmail: true,
		DMARC: records.DMARCConfig{
			Policy:          records.PolicyReject,
			SubdomainPolicy: records.PolicyQuarantine,
			FailureOnAny:    true,
			AggregateAddr:   "dmarc@example.org",
			FailureAddr:     "ruf@mail.example.org",
		},
		SPF: records.SPFConfig{Mechanisms: []records.Mechanism{
			records.IP4("192.0.2.0/24"),
			records.A("mail.example.org"),
			records.Include("_spf.google.com"),
			records.MX(),
		}},
		DKIM: records.DKIMConfig{Selector: records.DefaultSelector},
	}
	if !reflect.DeepEqual(cfg, expected) {
		t.Errorf("want %+v,\n got %+v", expected, cfg)
	}

	expectOutput(t, out,
		"Is 'example.org' the correct domain?",
		"Sorry, 'x' is not a valid choice. 'm', 'q', or 'r' must be entered.",
		"Note: Current domain policy is set to 'quarantine'.",
		"Note: Currently the domain is configured for 'yes'.",
		"Consider if the server for 'example.org'",
		"Note: Currently aggregate reports are sent to 'dmarc@example.org'.",
		"Sorry, 'bad address' is not a valid email address.",
		"has a root domain of",
		"Please enter a different email address.",
		"Sorry, at least one device must be added.",
		"Sorry, '9' is not a valid choice.",
		"Sorry, '300.1.1.1' is not a valid IPv4 address or range.",
		"The domain must end in 'example.org'.",
		"Sorry, 'example' is an invalid host name. Must be in the format of",
		"'192.0.2.0/24' has been added.",
		"Servers with MX entries have been added.",
		"Sorry, 'google' is not a valid domain name.",
		"Note: Current SPF record is 'v=spf1 mx ~all'.",
		"Note: Current MX hosts are 'mx.example.org'.",
	)
	if strings.Contains(out, "Unable to verify that this domain currently exists.") {
		t.Error("existing domain reported as unverified")
	}
}

func TestWizard_NoEmail(t *testing.T) {
	cfg, out, err := runWizard(t,
		// Empty and rejected domain names are asked again.
		"", "nomail.example.com", "n",
		"nomail.example.com", "y",
		"n",
		"n",
		"y", "abuse@example.com",
		"n",
	)
	if err != nil {
		t.Fatal(err)
	}

	expected := records.Config{
		Domain: domain.Parts{Full: "nomail.example.com", Parent: "example.com", Prefix: ".nomail"},
		DMARC:  records.DMARCConfig{FailureAddr: "abuse@example.com"},
		DKIM:   records.DKIMConfig{Selector: records.WildcardSelector},
	}
	if !reflect.DeepEqual(cfg, expected) {
		t.Errorf("want %+v,\n got %+v", expected, cfg)
	}

	expectOutput(t, out,
		"Unable to verify that this domain currently exists.",
		"Is 'nomail.example.com' used to send email?",
	)
	if strings.Contains(out, "Policy selection") || strings.Contains(out, "Add servers which may send email.") {
		t.Error("email questions asked for a domain that does not send email")
	}
	if strings.Contains(out, "has a root domain of") {
		t.Error("report address in the same root domain asked for confirmation")
	}
}

func TestWizard_SubdomainAlignment(t *testing.T) {
	_, out, err := runWizard(t,
		"mail.example.org", "y",
		"y",
		"m",
		"n",
		"y",
		"n",
		"n",
		"4", "5",
		"s1",
	)
	if err != nil {
		t.Fatal(err)
	}
	expectOutput(t, out,
		"Consider if emails for 'mail.example.org'",
		"    will be sent by the server controlling 'example.org'.",
		"If not set, the policy of 'none' will be used.",
	)
	if strings.Contains(out, "Note: Currently the domain is configured for") {
		t.Error("alignment hint shown without a published record")
	}
}

func TestWizard_IDN(t *testing.T) {
	cfg, _, err := runWizard(t, "пример.рф", "y", "n", "n", "n")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Domain.Full != "xn--e1afmkfd.xn--p1ai" {
		t.Errorf("domain not converted to A-labels: %q", cfg.Domain.Full)
	}
}

func TestWizard_OrgDomainNote(t *testing.T) {
	cfg, out, err := runWizard(t, "shop.example.co.uk", "y", "n", "n", "n")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Domain.Parent != "co.uk" {
		t.Errorf("unexpected parent domain: %q", cfg.Domain.Parent)
	}
	expectOutput(t, out, "is registered under 'example.co.uk'")

	_, out, err = runWizard(t, "example.org", "y", "n", "n", "n")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "is registered under") {
		t.Error("note shown for a domain split correctly")
	}
}

func TestWizard_Aborted(t *testing.T) {
	test := func(input ...string) {
		t.Helper()
		_, _, err := runWizard(t, input...)
		if !errors.Is(err, clitools.ErrAborted) {
			t.Errorf("%q: expected ErrAborted, got %v", input, err)
		}
	}

	test("example.org")
	test("example.org", "y", "y", "r", "n", "n", "n", "n")
	test("example.org", "y", "y", "r", "n", "n", "y")
}
