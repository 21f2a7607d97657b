// Package scan locates candidate primer binding sites on a template.
package scan

import (
	"errors"

	"pcrsim/core/dna"
)

// Structural precondition failures. Anything else the scanner encounters is
// handled per position and never aborts a scan.
var (
	ErrEmptySequence = errors.New("scan: empty sequence")
	ErrPrimerTooLong = errors.New("scan: primer longer than template")
)

// Strand identifies the template strand a primer binds, relative to the
// template as given.
type Strand string

const (
	Forward Strand = "+"
	Reverse Strand = "-"
)

// Site is one candidate binding position for one primer. It is a pure
// computation result: built once by Scan (thermodynamic fields are attached
// by the simulation before the Site is published) and never mutated after.
type Site struct {
	Pos        int    `json:"pos"`    // 0-based start of the match window on the template
	Strand     Strand `json:"strand"` // "+" or "-"
	Length     int    `json:"length"`
	Mismatches int    `json:"mismatches"`
	// MismatchIdx holds 0-based mismatch offsets from the primer 5' end.
	MismatchIdx []int `json:"mismatch_idx,omitempty"`
	// ThreePrimeMM counts mismatches within the last 3 bases of the primer.
	ThreePrimeMM int  `json:"three_prime_mm"`
	WrapsOrigin  bool `json:"wraps_origin,omitempty"`

	// Thermodynamic annotation, attached post-scan.
	Tm           float64  `json:"tm"`
	ThreePrimeDG float64  `json:"three_prime_dg"`
	Valid        bool     `json:"valid"`
	Notes        []string `json:"notes,omitempty"`
}

// Options control one scan.
type Options struct {
	MaxMismatches  int  // total mismatch budget per site
	TerminalWindow int  // bases at the primer 3' end where mismatches are rejected outright
	Circular       bool // wrap positions modulo template length
}

// threePrimeSpan is the fixed window used for the ThreePrimeMM count and the
// doubled mismatch weighting. Distinct from Options.TerminalWindow, which is
// the hard rejection window.
const threePrimeSpan = 3

// Scan slides primer (given 5'→3') across every position of template and
// returns each position satisfying the mismatch constraints. For the Reverse
// strand the primer's reverse complement is matched against the template as
// given, so Pos is always a forward-strand coordinate. Mismatch offsets are
// reported from the primer's 5' end regardless of strand.
//
// Template symbols outside A/C/G/T count as unconditional mismatches for
// that position only; the scan never aborts mid-template.
func Scan(template, primer []byte, strand Strand, opt Options) ([]Site, error) {
	tl, pl := len(template), len(primer)
	if tl == 0 || pl == 0 {
		return nil, ErrEmptySequence
	}
	if pl > tl {
		return nil, ErrPrimerTooLong
	}

	pattern := primer
	threePrimeAtStart := false
	if strand == Reverse {
		pattern = dna.RevComp(primer)
		threePrimeAtStart = true
	}

	// Pattern indices where a mismatch is rejected outright.
	inHardWindow := func(j int) bool {
		if opt.TerminalWindow <= 0 {
			return false
		}
		if threePrimeAtStart {
			return j < opt.TerminalWindow
		}
		return j >= pl-opt.TerminalWindow
	}
	// Offset from the primer 5' end for pattern index j.
	primerIdx := func(j int) int {
		if threePrimeAtStart {
			return pl - 1 - j
		}
		return j
	}

	last := tl - pl
	if opt.Circular {
		last = tl - 1
	}

	out := make([]Site, 0, 4)
window:
	for pos := 0; pos <= last; pos++ {
		mm := 0
		var idx []int
		for j := 0; j < pl; j++ {
			ti := pos + j
			if opt.Circular {
				ti %= tl
			}
			if dna.TemplateMatch(template[ti], pattern[j]) {
				continue
			}
			if inHardWindow(j) {
				continue window
			}
			mm++
			if mm > opt.MaxMismatches {
				continue window
			}
			idx = append(idx, primerIdx(j))
		}
		if threePrimeAtStart {
			reverseInts(idx)
		}
		tpmm := 0
		for _, v := range idx {
			if v >= pl-threePrimeSpan {
				tpmm++
			}
		}
		out = append(out, Site{
			Pos:          pos,
			Strand:       strand,
			Length:       pl,
			Mismatches:   mm,
			MismatchIdx:  idx,
			ThreePrimeMM: tpmm,
			WrapsOrigin:  opt.Circular && pos+pl > tl,
			Valid:        true,
		})
	}
	return out, nil
}

func reverseInts(v []int) {
	for i, j := 0, len(v)-1; i < j; i, j = i+1, j-1 {
		v[i], v[j] = v[j], v[i]
	}
}
