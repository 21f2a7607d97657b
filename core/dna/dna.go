// Package dna provides IUPAC-aware base matching, reverse complementation
// and sequence validation for uppercase DNA sequences.
package dna

import (
	"fmt"
	"strings"
	"unicode"
)

/* -------------------------- IUPAC lookup table -------------------------- */

var iupacMask [256]byte // bit0=A bit1=C bit2=G bit3=T

func init() {
	set := func(c byte, bits byte) { iupacMask[c] = bits }
	set('A', 1)       // 0001
	set('C', 2)       // 0010
	set('G', 4)       // 0100
	set('T', 8)       // 1000
	set('U', 8)       // RNA uracil, T-equivalent
	set('R', 1|4)     // A/G
	set('Y', 2|8)     // C/T
	set('S', 2|4)     // C/G
	set('W', 1|8)     // A/T
	set('K', 4|8)     // G/T
	set('M', 1|2)     // A/C
	set('B', 2|4|8)   // C/G/T
	set('D', 1|4|8)   // A/G/T
	set('H', 1|2|8)   // A/C/T
	set('V', 1|2|4)   // A/C/G
	set('N', 1|2|4|8) // any
}

var complement [256]byte

func init() {
	complement['A'] = 'T'
	complement['C'] = 'G'
	complement['G'] = 'C'
	complement['T'] = 'A'
	complement['U'] = 'A'
	complement['R'] = 'Y'
	complement['Y'] = 'R'
	complement['S'] = 'S'
	complement['W'] = 'W'
	complement['K'] = 'M'
	complement['M'] = 'K'
	complement['B'] = 'V'
	complement['V'] = 'B'
	complement['D'] = 'H'
	complement['H'] = 'D'
	complement['N'] = 'N'
}

/* ----------------------------- predicates ------------------------------- */

// Matches reports whether two single-base symbols are compatible under IUPAC
// semantics: the base sets they denote intersect. N matches anything, R
// matches A or G, and so on. The predicate is symmetric. An unrecognized
// symbol has an empty base set and therefore matches nothing.
func Matches(a, b byte) bool {
	return iupacMask[a]&iupacMask[b] != 0
}

// TemplateMatch reports whether primer base p can pair with template base t.
// Template ambiguity codes (including N) are treated as a hard mismatch so
// that N-blocks in references cannot produce spurious binding sites.
func TemplateMatch(t, p byte) bool {
	if t != 'A' && t != 'C' && t != 'G' && t != 'T' {
		return false
	}
	return iupacMask[p]&iupacMask[t] != 0
}

// IsACGT reports whether b is an unambiguous DNA base.
func IsACGT(b byte) bool { return b == 'A' || b == 'C' || b == 'G' || b == 'T' }

/* ---------------------------- transformations --------------------------- */

// RevComp returns the reverse complement of seq, preserving IUPAC codes.
// Unknown symbols map to N. RevComp(RevComp(s)) == s for any sequence over
// the IUPAC DNA alphabet (U complements to A and does not round-trip).
func RevComp(seq []byte) []byte {
	n := len(seq)
	if n == 0 {
		return nil
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		c := complement[seq[n-1-i]]
		if c == 0 {
			c = 'N'
		}
		out[i] = c
	}
	return out
}

// RevCompString is RevComp for string inputs.
func RevCompString(seq string) string { return string(RevComp([]byte(seq))) }

// Complement returns the complement of a single base, N for unknown symbols.
func Complement(b byte) byte {
	if c := complement[b]; c != 0 {
		return c
	}
	return 'N'
}

/* ------------------------------ boundary -------------------------------- */

// Normalize strips whitespace and quotes and uppercases the remaining bases.
func Normalize(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '\'' || r == '"' {
			continue
		}
		out = append(out, unicode.ToUpper(r))
	}
	return string(out)
}

// Validate normalizes raw and rejects empty sequences or non-IUPAC symbols.
func Validate(raw string) (string, error) {
	s := Normalize(raw)
	if s == "" {
		return "", fmt.Errorf("empty sequence")
	}
	for i := 0; i < len(s); i++ {
		if iupacMask[s[i]] == 0 {
			return "", fmt.Errorf("invalid base %q at %d; allowed: A C G T U R Y S W K M B D H V N", s[i], i+1)
		}
	}
	return s, nil
}

// GC returns the fraction of unambiguous G/C bases in seq.
func GC(seq string) float64 {
	if len(seq) == 0 {
		return 0
	}
	n := strings.Count(seq, "G") + strings.Count(seq, "C")
	return float64(n) / float64(len(seq))
}
