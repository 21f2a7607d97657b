package report

import (
	"fmt"
	"strings"

	"pcrsim/core/dna"
	"pcrsim/core/scan"
)

const linePrefix = "# "

// RenderSite draws one binding site as a three-line alignment: primer on top
// (always 5'→3'), match bars, then the template strand the primer reads
// along — the plus strand for forward sites, the reverse complement for
// reverse sites. Exact pairs get '|', IUPAC-degenerate pairs '¦'.
func RenderSite(template []byte, primer string, s scan.Site) string {
	window := siteWindow(template, s)
	if len(window) != len(primer) {
		return ""
	}
	strand := window
	label := "template(+)"
	if s.Strand == scan.Reverse {
		strand = dna.RevComp(window)
		label = "template(-)"
	}

	var bars strings.Builder
	for i := 0; i < len(primer); i++ {
		switch {
		case primer[i] == strand[i]:
			bars.WriteByte('|')
		case dna.Matches(primer[i], strand[i]):
			bars.WriteString("¦")
		default:
			bars.WriteByte(' ')
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s%s pos %d mm=%d", linePrefix, s.Strand, s.Pos, s.Mismatches)
	if s.Tm != 0 {
		fmt.Fprintf(&b, " tm=%.1f", s.Tm)
	}
	if s.WrapsOrigin {
		b.WriteString(" wraps-origin")
	}
	for _, n := range s.Notes {
		fmt.Fprintf(&b, " [%s]", n)
	}
	b.WriteByte('\n')
	fmt.Fprintf(&b, "%s5'-%s-3' primer\n", linePrefix, primer)
	fmt.Fprintf(&b, "%s   %s\n", linePrefix, bars.String())
	fmt.Fprintf(&b, "%s5'-%s-3' %s\n", linePrefix, strand, label)
	return b.String()
}

// siteWindow extracts the template bases under a site, wrapping past the
// origin when flagged.
func siteWindow(template []byte, s scan.Site) []byte {
	tl := len(template)
	if tl == 0 || s.Length == 0 {
		return nil
	}
	if !s.WrapsOrigin && s.Pos+s.Length <= tl {
		return template[s.Pos : s.Pos+s.Length]
	}
	out := make([]byte, 0, s.Length)
	for j := 0; j < s.Length; j++ {
		out = append(out, template[(s.Pos+j)%tl])
	}
	return out
}
