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
	"io"
	"strings"
)

func (k Kind) title() string {
	switch k {
	case KindDMARC, KindReportAuth:
		return "DMARC DNS RECORD"
	case KindSPF:
		return "SPF DNS RECORD"
	case KindDKIM:
		return "DKIM DNS RECORD"
	}
	return "DNS RECORD"
}

// Format writes set as text blocks separated by blank lines:
//
//	DMARC DNS RECORD (example.org)
//	Record type: TXT
//	Host name:   _dmarc
//	Value:       v=DMARC1; p=none
func Format(w io.Writer, set RecordSet) error {
	_, err := io.WriteString(w, set.String())
	return err
}

func (set RecordSet) String() string {
	out := strings.Builder{}
	for i, rec := range set {
		if i != 0 {
			out.WriteRune('\n')
		}
		out.WriteString(rec.Kind.title())
		out.WriteString(" (")
		out.WriteString(rec.Zone)
		out.WriteString(")\n")
		out.WriteString("Record type: ")
		out.WriteString(rec.Type)
		out.WriteRune('\n')
		out.WriteString("Host name:   ")
		out.WriteString(rec.Host)
		out.WriteRune('\n')
		out.WriteString("Value:       ")
		out.WriteString(rec.Value)
		out.WriteRune('\n')
	}
	return out.String()
}
