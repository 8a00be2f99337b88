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
	"strings"
	"testing"

	"github.com/tdlansing/dmarc-tool/internal/domain"
)

func TestFormat(t *testing.T) {
	cfg := Config{
		Domain:       domain.Split("mail.example.com"),
		UsedForEmail: true,
		DMARC: DMARCConfig{
			Policy:        PolicyQuarantine,
			AggregateAddr: "rua@example.net",
		},
		SPF:  SPFConfig{Mechanisms: []Mechanism{MX()}},
		DKIM: DKIMConfig{Selector: "mx1"},
	}

	out := strings.Builder{}
	if err := Format(&out, Render(cfg)); err != nil {
		t.Fatal(err)
	}

	want := `DMARC DNS RECORD (example.com)
Record type: TXT
Host name:   _dmarc.mail
Value:       v=DMARC1; p=quarantine; rua=mailto:rua@example.net

DMARC DNS RECORD (example.net)
Record type: TXT
Host name:   mail.example.com._report._dmarc.example.net
Value:       v=DMARC1

SPF DNS RECORD (example.com)
Record type: TXT
Host name:   mail
Value:       v=spf1 mx ~all

DKIM DNS RECORD (example.com)
Record type: TXT
Host name:   mx1._domainkey.mail
Value:       v=DKIM1; k=rsa; p=ReplaceThisTextWithYourPublicKey
`
	if out.String() != want {
		t.Errorf("unexpected output\nwant:\n%s\ngot:\n%s", want, out.String())
	}
}
