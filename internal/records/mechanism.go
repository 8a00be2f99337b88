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

package records

import (
	"fmt"
	"net/netip"
	"strings"
)

type MechanismKind string

const (
	MechIP4     MechanismKind = "ip4"
	MechA       MechanismKind = "a"
	MechInclude MechanismKind = "include"
	MechMX      MechanismKind = "mx"
)

// Mechanism is a single SPF authorization source.
type Mechanism struct {
	Kind  MechanismKind
	Value string
}

func IP4(cidr string) Mechanism       { return Mechanism{Kind: MechIP4, Value: cidr} }
func A(host string) Mechanism         { return Mechanism{Kind: MechA, Value: host} }
func Include(domain string) Mechanism { return Mechanism{Kind: MechInclude, Value: domain} }
func MX() Mechanism                   { return Mechanism{Kind: MechMX} }

func (m Mechanism) String() string {
	if m.Value == "" {
		return string(m.Kind)
	}
	return string(m.Kind) + ":" + m.Value
}

func (m Mechanism) Validate() error {
	switch m.Kind {
	case MechIP4:
		return ValidateIP4(m.Value)
	case MechA, MechInclude:
		if m.Value == "" || strings.ContainsAny(m.Value, " \t") {
			return fmt.Errorf("records: invalid %s mechanism value %q", m.Kind, m.Value)
		}
	case MechMX:
		if m.Value != "" {
			return fmt.Errorf("records: mx mechanism takes no value")
		}
	default:
		return fmt.Errorf("records: unknown SPF mechanism %q", m.Kind)
	}
	return nil
}

// ValidateIP4 checks that value is an IPv4 address or an IPv4 network in
// CIDR notation.
func ValidateIP4(value string) error {
	if strings.Contains(value, "/") {
		prefix, err := netip.ParsePrefix(value)
		if err != nil {
			return fmt.Errorf("records: malformed CIDR %q: %w", value, err)
		}
		if !prefix.Addr().Is4() {
			return fmt.Errorf("records: %q is not an IPv4 network", value)
		}
		return nil
	}

	addr, err := netip.ParseAddr(value)
	if err != nil {
		return fmt.Errorf("records: malformed IPv4 address %q: %w", value, err)
	}
	if !addr.Is4() {
		return fmt.Errorf("records: %q is not an IPv4 address", value)
	}
	return nil
}
