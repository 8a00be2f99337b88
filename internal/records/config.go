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

// Package records holds the configuration collected for a domain and
// compiles it into DMARC, SPF and DKIM TXT records.
//
// Everything in this package is pure: render functions do no I/O and
// return the same output for the same configuration.
package records

import (
	"errors"
	"fmt"

	"github.com/tdlansing/dmarc-tool/internal/domain"
)

type Policy string

const (
	PolicyNone       Policy = "none"
	PolicyQuarantine Policy = "quarantine"
	PolicyReject     Policy = "reject"
)

// PolicyKeys maps the single-letter menu selections to policies.
var PolicyKeys = map[string]Policy{
	"m": PolicyNone,
	"q": PolicyQuarantine,
	"r": PolicyReject,
}

func (p Policy) Valid() bool {
	switch p {
	case PolicyNone, PolicyQuarantine, PolicyReject:
		return true
	}
	return false
}

// ParsePolicy accepts either the policy name or its menu key.
func ParsePolicy(s string) (Policy, error) {
	if p, ok := PolicyKeys[s]; ok {
		return p, nil
	}
	if p := Policy(s); p.Valid() {
		return p, nil
	}
	return "", fmt.Errorf("records: unknown policy %q, use none, quarantine or reject", s)
}

type DMARCConfig struct {
	Policy Policy
	// SubdomainPolicy is emitted as sp= only if set.
	SubdomainPolicy Policy
	// StrictAlignment sets both adkim=s and aspf=s.
	StrictAlignment bool
	// FailureOnAny requests failure reports if either SPF or DKIM fails
	// (fo=1) instead of the default of both (fo=0).
	FailureOnAny  bool
	AggregateAddr string
	FailureAddr   string
}

type SPFConfig struct {
	Mechanisms []Mechanism
}

const (
	DefaultSelector = "selector"
	// WildcardSelector is used for domains that do not send mail, the
	// record with an empty key revokes every selector.
	WildcardSelector = "*"
	PlaceholderKey   = "ReplaceThisTextWithYourPublicKey"
)

type DKIMConfig struct {
	Selector  string
	PublicKey string
}

// SelectorOrDefault returns Selector or DefaultSelector if it is empty.
func (c DKIMConfig) SelectorOrDefault() string {
	if c.Selector == "" {
		return DefaultSelector
	}
	return c.Selector
}

// PublicKeyOrPlaceholder returns PublicKey or PlaceholderKey if it is empty.
func (c DKIMConfig) PublicKeyOrPlaceholder() string {
	if c.PublicKey == "" {
		return PlaceholderKey
	}
	return c.PublicKey
}

// Config is everything needed to render the records for one domain.
type Config struct {
	Domain       domain.Parts
	UsedForEmail bool

	DMARC DMARCConfig
	SPF   SPFConfig
	DKIM  DKIMConfig
}

var (
	ErrNoDomain     = errors.New("records: domain name is not set")
	ErrNoMechanisms = errors.New("records: at least one SPF mechanism is required for a domain that sends email")
)

// Validate checks the constraints the interactive flow enforces so that
// configurations built by other means (command-line flags) can be checked
// the same way.
func (c Config) Validate() error {
	if c.Domain.Full == "" {
		return ErrNoDomain
	}
	if !c.UsedForEmail {
		return nil
	}

	if !c.DMARC.Policy.Valid() {
		return fmt.Errorf("records: invalid DMARC policy %q", c.DMARC.Policy)
	}
	if c.DMARC.SubdomainPolicy != "" && !c.DMARC.SubdomainPolicy.Valid() {
		return fmt.Errorf("records: invalid DMARC subdomain policy %q", c.DMARC.SubdomainPolicy)
	}
	if len(c.SPF.Mechanisms) == 0 {
		return ErrNoMechanisms
	}
	for _, m := range c.SPF.Mechanisms {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	return nil
}
