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

// Package wizard asks the questions needed to build the DMARC, SPF and DKIM
// records for a domain.
//
// Records currently published for the domain are looked up and shown as
// hints next to the matching questions. Lookup failures never stop the
// wizard.
package wizard

import (
	"context"
	"strings"

	"github.com/tdlansing/dmarc-tool/framework/address"
	"github.com/tdlansing/dmarc-tool/framework/dns"
	"github.com/tdlansing/dmarc-tool/framework/log"
	"github.com/tdlansing/dmarc-tool/internal/cli/clitools"
	"github.com/tdlansing/dmarc-tool/internal/dmarc"
	"github.com/tdlansing/dmarc-tool/internal/domain"
	"github.com/tdlansing/dmarc-tool/internal/records"
)

// Lookup provides the hints shown by the wizard. dmarc.Hints is the
// implementation backed by DNS.
type Lookup interface {
	DomainExists(ctx context.Context, domain string) bool
	CurrentDMARC(ctx context.Context, domain string) *dmarc.Current
	CurrentSPF(ctx context.Context, domain string) string
	CurrentMX(ctx context.Context, domain string) []string
}

type Wizard struct {
	p      *clitools.Prompter
	lookup Lookup
	log    log.Logger

	cfg     records.Config
	current *dmarc.Current
}

func New(p *clitools.Prompter, lookup Lookup, l log.Logger) *Wizard {
	return &Wizard{
		p:      p,
		lookup: lookup,
		log:    l,
	}
}

// Run asks all questions and returns the resulting configuration.
//
// clitools.ErrAborted is returned if the input ends before all answers are
// read.
func (w *Wizard) Run(ctx context.Context) (records.Config, error) {
	w.cfg = records.Config{UsedForEmail: true}
	w.current = nil

	w.welcome()

	steps := []func(context.Context) error{
		w.askDomain,
		w.askUsedForEmail,
		w.askPolicy,
		w.askSubdomainPolicy,
		w.askAlignment,
		w.askAggregateReports,
		w.askFailureReports,
		w.askSPF,
		w.askDKIM,
	}
	for _, step := range steps {
		if err := step(ctx); err != nil {
			return records.Config{}, err
		}
	}

	w.log.DebugMsg("configuration collected",
		"domain", w.cfg.Domain.Full,
		"parent", w.cfg.Domain.Parent,
		"email", w.cfg.UsedForEmail,
		"mechanisms", len(w.cfg.SPF.Mechanisms))

	w.p.Clear()
	return w.cfg, nil
}

func (w *Wizard) welcome() {
	w.p.Clear()
	w.p.Println(
		"",
		"****************************************************************************",
		"Welcome. The purpose of this tool is to assist in implementing",
		"DMARC, SPF, and DKIM.",
		"",
		"WARNING: This tool is a work in progress.",
		" 1. Confirm the validity of its output.",
		" 2. Ensure your input is correct.",
		" 3. Please report any issues at https://github.com/tdlansing/dmarc-tool.",
		"****************************************************************************",
	)
}

func (w *Wizard) askDomain(ctx context.Context) error {
	for {
		w.p.Println("")
		input, err := w.p.Line("Domain name: ")
		if err != nil {
			return err
		}
		w.p.Clear()
		if input == "" {
			continue
		}

		name, err := domain.Normalize(input)
		if err != nil {
			w.log.DebugError("rejected domain name", err)
			w.p.Println("Sorry, '" + input + "' is not a valid domain name.")
			continue
		}

		if !w.lookup.DomainExists(ctx, name) {
			w.p.Println("Unable to verify that this domain currently exists.", "")
		}
		correct, err := w.p.YesNo("Is '" + name + "' the correct domain?")
		if err != nil {
			return err
		}
		if correct {
			w.cfg.Domain = domain.Split(name)
			break
		}
	}

	w.current = w.lookup.CurrentDMARC(ctx, w.cfg.Domain.Full)
	return nil
}

func (w *Wizard) askUsedForEmail(ctx context.Context) error {
	parts := w.cfg.Domain

	w.p.Clear()
	if org, err := domain.OrgDomain(parts.Full); err == nil && !dns.Equal(org, parts.Parent) {
		w.p.Println(
			"Note: '"+parts.Full+"' is registered under '"+org+"', but the records",
			"    will be placed in the '"+parts.Parent+"' zone. Check the host names",
			"    against the zone you manage before publishing them.",
			"",
		)
	}

	used, err := w.p.YesNo("Is '" + parts.Full + "' used to send email?")
	if err != nil {
		return err
	}
	w.cfg.UsedForEmail = used
	return nil
}

func (w *Wizard) policyMenu(prompt []string, current string) (records.Policy, error) {
	for {
		w.p.Println(prompt...)
		w.p.Println(
			"Enter:",
			"'m' for monitor",
			"'q' for quarantine",
			"'r' for reject",
		)
		if current != "" {
			w.p.Println("", current)
		}
		w.p.Println("")

		input, err := w.p.Line("Policy selection: ")
		if err != nil {
			return "", err
		}
		if policy, ok := records.PolicyKeys[strings.ToLower(input)]; ok {
			return policy, nil
		}

		w.p.Clear()
		w.p.Println("Sorry, '"+input+"' is not a valid choice. 'm', 'q', or 'r' must be entered.", "")
	}
}

func (w *Wizard) askPolicy(_ context.Context) error {
	if !w.cfg.UsedForEmail {
		return nil
	}

	hint := ""
	if w.current != nil && w.current.Policy != "" {
		hint = "Note: Current domain policy is set to '" + string(w.current.Policy) + "'."
	}

	w.p.Clear()
	policy, err := w.policyMenu([]string{
		"Do you want to monitor, quarantine, or reject emails from " + w.cfg.Domain.Full,
		"that do not pass SPF and do not pass DKIM?",
		"",
		"Monitor- Recommended when first configuring DMARC.",
		"Quarantine- Recommended to be used before setting to reject. This requests",
		"    emails are sent to the SPAM / Junk mail folder if SPF and DKIM do not pass.",
		"Reject- Requests emails not passing SPF and DKIM are dropped and on domains",
		"    that don't send email. Preferred if SPF and DKIM are implemented and",
		"    working. Legitimate emails not passing may also be dropped.",
		"",
	}, hint)
	if err != nil {
		return err
	}
	w.cfg.DMARC.Policy = policy
	return nil
}

func (w *Wizard) askSubdomainPolicy(_ context.Context) error {
	if !w.cfg.UsedForEmail {
		return nil
	}

	w.p.Clear()
	set, err := w.p.YesNo(
		"Do you want to set a policy for subdomains of "+w.cfg.Domain.Full+"?",
		"If not set, the policy of '"+string(w.cfg.DMARC.Policy)+"' will be used.",
	)
	if err != nil || !set {
		return err
	}

	hint := ""
	if w.current != nil && w.current.SubdomainPolicy != "" {
		hint = "Note: Current subdomain policy is set to '" + string(w.current.SubdomainPolicy) + "'."
	}
	policy, err := w.policyMenu([]string{""}, hint)
	if err != nil {
		return err
	}
	w.cfg.DMARC.SubdomainPolicy = policy
	return nil
}

func (w *Wizard) askAlignment(_ context.Context) error {
	if !w.cfg.UsedForEmail {
		return nil
	}
	parts := w.cfg.Domain

	question := []string{
		"Will the email server's domain exactly match '" + parts.Full + "'?",
		"",
	}
	if parts.IsSubdomain() {
		question = append(question,
			"Consider if emails for '"+parts.Full+"'",
			"    will be sent by the server controlling '"+parts.Parent+"'.",
			"Or, if its own server will send emails for any subdomains under it.")
	} else {
		question = append(question,
			"Consider if the server for '"+parts.Full+"'",
			"    will be used to send emails for any subdomains.")
	}
	question = append(question,
		"",
		"If so, then answer 'no'.",
		"",
		"WARNING: If unsure, we recommend answering 'no'. Answering 'yes' will",
		"    increase security, but it may cause legitimate emails to be dropped",
		"    if not configured correctly.")
	if w.current != nil {
		configured := "no"
		if w.current.StrictAlignment() {
			configured = "yes"
		}
		question = append(question, "", "Note: Currently the domain is configured for '"+configured+"'.")
	}

	w.p.Clear()
	strict, err := w.p.YesNo(question...)
	if err != nil {
		return err
	}
	w.cfg.DMARC.StrictAlignment = strict
	return nil
}

// reportQuestion appends the warning about report addresses outside of the
// domain to lines.
func (w *Wizard) reportQuestion(lines ...string) []string {
	return append(lines,
		"WARNING: If you choose to receive DMARC reports at an email address with a",
		"    different domain than '"+w.cfg.Domain.Full+"' then a DNS entry will need",
		"    to be made for that domain as well.")
}

func (w *Wizard) askAggregateReports(_ context.Context) error {
	var current []string
	if w.current != nil {
		current = w.current.Aggregate
	}

	w.p.Clear()
	if len(current) != 0 {
		w.p.Println("Note: Currently aggregate reports are sent to '"+strings.Join(current, ", ")+"'.", "")
	}
	want, err := w.p.YesNo(w.reportQuestion(
		"Would you like to receive aggregate reports? We recommend doing so.",
		"",
		"WARNING: Email addresses are public. It is recommended to use",
		"    dedicated email addresses and deploy abuse countermeasures.",
		"",
	)...)
	if err != nil || !want {
		return err
	}

	w.cfg.DMARC.AggregateAddr, err = w.reportAddress("Aggregate email address: ")
	return err
}

func (w *Wizard) askFailureReports(_ context.Context) error {
	var current []string
	if w.current != nil {
		current = w.current.Failure
	}

	w.p.Clear()
	if len(current) != 0 {
		w.p.Println("Note: Currently failure reports are sent to '"+strings.Join(current, ", ")+"'.", "")
	}
	want, err := w.p.YesNo(w.reportQuestion(
		"Would you like to receive failure reports?",
		"",
		"Recommended for troubleshooting or if policy is set to quarantine or reject.",
		"",
		"WARNING: Email addresses are public. It is recommended to use",
		"    dedicated email addresses and deploy abuse countermeasures.",
		"",
		"WARNING: If SPF and/or DKIM are not implemented then reports may be",
		"    received for each email sent.",
		"",
	)...)
	if err != nil || !want {
		return err
	}

	w.cfg.DMARC.FailureAddr, err = w.reportAddress("Failure email address: ")
	if err != nil {
		return err
	}

	w.p.Clear()
	anyFailure, err := w.p.YesNo(
		"By default DMARC failure reporting is only sent if SPF and DKIM both",
		"fail alignment.",
		"",
		"We recommend 'yes' so you receive reports if SPF or DKIM fail.",
		"",
		"Would you like to make this change?",
	)
	if err != nil {
		return err
	}
	w.cfg.DMARC.FailureOnAny = anyFailure
	return nil
}

// reportAddress reads a report address, asking for confirmation if it is
// outside of the parent domain.
func (w *Wizard) reportAddress(prompt string) (string, error) {
	parent := w.cfg.Domain.Parent

	w.p.Clear()
	for {
		addr, err := w.p.Line(prompt)
		if err != nil {
			return "", err
		}
		if addr == "" {
			continue
		}
		if !address.Valid(addr) {
			w.p.Clear()
			w.p.Println("Sorry, '"+addr+"' is not a valid email address.", "")
			continue
		}

		if !records.NeedsReportAuth(w.cfg.Domain, addr) {
			return addr, nil
		}

		root := domain.RootFromEmail(addr)
		sure, err := w.p.YesNo(
			"",
			"The email address '"+addr+"' has a root domain of",
			"    '"+root+"' which is different than '"+parent+"'. A DNS entry",
			"    will need to be made at '"+root+"'. Are you sure you want to use this",
			"    email address?",
		)
		if err != nil {
			return "", err
		}
		if sure {
			return addr, nil
		}

		w.p.Clear()
		w.p.Println("Please enter a different email address.", "")
	}
}

func (w *Wizard) spfMenu(currentSPF string, currentMX []string) {
	w.p.Println(
		"Add servers which may send email.",
		"",
		"Select:",
		"1. Add by IP address or range.",
		"    Type '1.2.3.4/32' for the single IP address of 1.2.3.4.",
		"    Use CIDR notation for ranges needed, as appropriate.",
		"2. Add by host name. Example: 'host."+w.cfg.Domain.Parent+"'.",
		"3. Add for 3rd party providers. Example: '3rdPartyDomain.com'.",
		"4. Add email servers with MX entries for your domain.",
		"5. Done adding. Exit.",
	)
	if currentSPF != "" {
		w.p.Println("", "Note: Current SPF record is '"+currentSPF+"'.")
	}
	if len(currentMX) != 0 {
		w.p.Println("", "Note: Current MX hosts are '"+strings.Join(currentMX, ", ")+"'.")
	}
	w.p.Println("")
}

func (w *Wizard) askSPF(ctx context.Context) error {
	if !w.cfg.UsedForEmail {
		return nil
	}
	parts := w.cfg.Domain

	currentSPF := w.lookup.CurrentSPF(ctx, parts.Full)
	currentMX := w.lookup.CurrentMX(ctx, parts.Full)

	w.p.Clear()
	for {
		w.spfMenu(currentSPF, currentMX)
		choice, err := w.p.Line("Selection: ")
		if err != nil {
			return err
		}

		var (
			mech  records.Mechanism
			added string
		)
		switch choice {
		case "1":
			w.p.Println("")
			value, err := w.p.Line("Enter the IP address using CIDR notation: ")
			if err != nil {
				return err
			}
			if err := records.ValidateIP4(value); err != nil {
				w.log.DebugError("rejected ip4 value", err)
				w.p.Clear()
				w.p.Println("Sorry, '"+value+"' is not a valid IPv4 address or range.", "")
				continue
			}
			mech, added = records.IP4(value), "'"+value+"' has been added."
		case "2":
			w.p.Println("")
			host, err := w.p.Line("Enter the host name: ")
			if err != nil {
				return err
			}
			if strings.Count(host, ".") < 2 {
				w.p.Clear()
				w.p.Println(
					"Sorry, '"+host+"' is an invalid host name. Must be in the format of",
					"'host.domain.com'.",
					"",
				)
				continue
			}
			if !parts.OwnsHost(host) {
				w.p.Clear()
				w.p.Println(
					"Sorry, '"+host+"' is an invalid host name.",
					"The domain must end in '"+parts.Parent+"'.",
					"",
				)
				continue
			}
			mech, added = records.A(host), "'"+host+"' has been added."
		case "3":
			w.p.Println("")
			provider, err := w.p.Line("Enter the 3rd party domain which will send email on this domain's behalf: ")
			if err != nil {
				return err
			}
			// Provider domains often start with an underscore label
			// (_spf.example.com) so host name rules do not apply.
			mech = records.Include(provider)
			if err := mech.Validate(); err != nil || !strings.Contains(provider, ".") {
				w.p.Clear()
				w.p.Println("Sorry, '"+provider+"' is not a valid domain name.", "")
				continue
			}
			added = "'" + provider + "' has been added."
		case "4":
			mech, added = records.MX(), "Servers with MX entries have been added."
		case "5":
			if len(w.cfg.SPF.Mechanisms) != 0 {
				return nil
			}
			w.p.Clear()
			w.p.Println("Sorry, at least one device must be added.", "")
			continue
		default:
			w.p.Clear()
			w.p.Println("Sorry, '"+choice+"' is not a valid choice.", "")
			continue
		}

		w.cfg.SPF.Mechanisms = append(w.cfg.SPF.Mechanisms, mech)
		w.p.Clear()
		w.p.Println(added, "")
	}
}

func (w *Wizard) askDKIM(_ context.Context) error {
	if !w.cfg.UsedForEmail {
		w.cfg.DKIM.Selector = records.WildcardSelector
		return nil
	}

	w.p.Clear()
	w.p.Println("If DKIM has been configured on your server, what is the name of your selector?", "")
	selector, err := w.p.Line("Name: ")
	if err != nil {
		return err
	}
	if selector == "" {
		selector = records.DefaultSelector
	}
	w.cfg.DKIM.Selector = selector
	return nil
}
