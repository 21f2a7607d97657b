package dimer

import (
	"testing"

	"pcrsim/core/dna"
	"pcrsim/core/thermo"
)

func TestScreenComplementaryPair(t *testing.T) {
	// Fully mutually complementary GC-rich pair: strongly negative ΔG.
	fwd := "GCGCGCGCATGC"
	rev := dna.RevCompString(fwd)

	r := Screen(fwd, rev, thermo.DefaultParams())
	if r.DeltaG > -9.0 {
		t.Errorf("expected ΔG ≤ -9.0 for full complement, got %.2f", r.DeltaG)
	}
	if !r.Problematic {
		t.Error("full complement must be flagged problematic")
	}
}

func TestScreenUnrelatedPair(t *testing.T) {
	r := Screen("AAAAAAAAAAAA", "AAAAAAAAAAAA", thermo.DefaultParams())
	// rc(A-run) is a T-run; no alignment pairs anything.
	if r.DeltaG != 0 {
		t.Errorf("expected ΔG 0 for non-pairing primers, got %.2f", r.DeltaG)
	}
	if r.Problematic {
		t.Error("non-pairing primers flagged problematic")
	}
}

func TestScreenPartialOverlap(t *testing.T) {
	// A/T tails and the 4 bp GC clamp both pair, but neither duplex
	// reaches the default -8.0 threshold.
	fwd := "AAAAAAAAGCGC"
	rev := "TTTTTTTTGCGC"
	r := Screen(fwd, rev, thermo.DefaultParams())
	if r.DeltaG >= 0 {
		t.Errorf("expected some pairing, got ΔG %.2f", r.DeltaG)
	}
	if r.Problematic {
		t.Errorf("4 bp overlap should not be problematic: ΔG %.2f", r.DeltaG)
	}
}

func TestScreenThresholdIsConfigurable(t *testing.T) {
	p := thermo.DefaultParams()
	p.DimerThresholdDG = -0.5
	r := Screen("AAAAAAAAGCGC", "TTTTTTTTGCGC", p)
	if !r.Problematic {
		t.Errorf("with threshold -0.5 the 4 bp overlap (ΔG %.2f) should flag", r.DeltaG)
	}
}

func TestSelfScreenPalindrome(t *testing.T) {
	// EcoRI-style palindromic core self-anneals.
	r := SelfScreen("GGGAATTCCGGAATTCC", thermo.DefaultParams())
	if r.DeltaG >= 0 {
		t.Errorf("palindromic primer should self-pair, got ΔG %.2f", r.DeltaG)
	}
}
