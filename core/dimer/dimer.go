// Package dimer screens primer pairs for template-independent
// cross-hybridization.
package dimer

import (
	"pcrsim/core/dna"
	"pcrsim/core/thermo"
)

// Result is the outcome of hybridizing two primers against each other.
type Result struct {
	DeltaG      float64 `json:"delta_g"`
	Problematic bool    `json:"problematic"`
}

// Screen slides fwd against the reverse complement of rev over every
// antiparallel alignment, estimates the free energy of the best-pairing
// contiguous duplex with the nearest-neighbor model, and flags the pair when
// that estimate is at or below the configured threshold.
func Screen(fwd, rev string, p thermo.Params) Result {
	dg := bestOverlapDG(fwd, rev)
	return Result{DeltaG: dg, Problematic: dg <= p.DimerThresholdDG}
}

// SelfScreen is Screen applied to one primer against itself.
func SelfScreen(primer string, p thermo.Params) Result {
	return Screen(primer, primer, p)
}

// bestOverlapDG returns the most negative duplex ΔG (37 °C) over all sliding
// alignments of a against rc(b). A base of a matching rc(b) at the same
// alignment column is exactly a WC pair between a and b, so contiguous match
// runs are duplex segments and their stacks can be summed directly from a.
func bestOverlapDG(a, b string) float64 {
	brc := dna.RevCompString(b)
	best := 0.0
	// offset is the shift of brc relative to a; negative shifts slide brc left.
	for off := -(len(brc) - 1); off < len(a); off++ {
		runStart := -1
		for i := 0; i <= len(a); i++ {
			j := i - off
			paired := i < len(a) && j >= 0 && j < len(brc) &&
				dna.IsACGT(a[i]) && a[i] == brc[j]
			if paired {
				if runStart < 0 {
					runStart = i
				}
				continue
			}
			if runStart >= 0 {
				if dg := segmentDG(a[runStart:i]); dg < best {
					best = dg
				}
				runStart = -1
			}
		}
	}
	return best
}

// segmentDG is the stack-sum free energy of a perfectly paired segment.
func segmentDG(seg string) float64 {
	if len(seg) < 2 {
		return 0
	}
	var dH, dS float64
	for i := 0; i < len(seg)-1; i++ {
		dh, dso, ok := thermo.StackParams(seg[i : i+2])
		if !ok {
			continue
		}
		dH += dh
		dS += dso
	}
	return thermo.DeltaGAt(dH, dS, 37.0)
}
