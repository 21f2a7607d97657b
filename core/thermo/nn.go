// Package thermo estimates duplex melting temperatures and free energies
// with the SantaLucia unified nearest-neighbor parameter set.
// Units: ΔH in kcal/mol, ΔS in cal/(K·mol), Tm in °C.
package thermo

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Gas constant in cal/(K·mol).
const Rcal = 1.9872

// Watson–Crick propagation parameters at 1 M Na+ (SantaLucia 1998, unified).
var nnDH = map[string]float64{
	"AA": -7.9, "TT": -7.9, "AT": -7.2, "TA": -7.2,
	"CA": -8.5, "TG": -8.5, "GT": -8.4, "AC": -8.4,
	"CT": -7.8, "AG": -7.8, "GA": -8.2, "TC": -8.2,
	"CG": -10.6, "GC": -9.8, "GG": -8.0, "CC": -8.0,
}
var nnDS = map[string]float64{
	"AA": -22.2, "TT": -22.2, "AT": -20.4, "TA": -21.3,
	"CA": -22.7, "TG": -22.7, "GT": -22.4, "AC": -22.4,
	"CT": -21.0, "AG": -21.0, "GA": -22.2, "TC": -22.2,
	"CG": -27.2, "GC": -24.4, "GG": -19.9, "CC": -19.9,
}

const (
	initDH     = 0.2
	initDS     = -5.7
	termATDH   = 2.2 // once per terminal A·T pair
	termATDS   = 6.9
	symmetryDS = -1.4
)

// Conditions holds the commonly tuned wet-lab knobs.
type Conditions struct {
	AnnealC           float64 // annealing temperature, °C
	NaM               float64 // monovalent cations, mol/L
	MgM               float64 // magnesium, mol/L
	PrimerTotalM      float64 // total primer concentration, mol/L
	SelfComplementary bool
}

// DefaultConditions mirror a standard PCR mix: 50 mM monovalent salt,
// 1.5 mM Mg2+, 250 nM primer, 55 °C annealing.
func DefaultConditions() Conditions {
	return Conditions{AnnealC: 55.0, NaM: 0.05, MgM: 0.0015, PrimerTotalM: 250e-9}
}

// ParseConc parses "50mM", "250nM", "3uM" into mol/L.
func ParseConc(s string) (float64, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	unit := ""
	val := 0.0
	if _, err := fmt.Sscanf(s, "%f%s", &val, &unit); err != nil {
		return 0, fmt.Errorf("invalid conc %q: %w", s, err)
	}
	switch unit {
	case "m", "":
		return val, nil
	case "mm":
		return val * 1e-3, nil
	case "um", "μm":
		return val * 1e-6, nil
	case "nm":
		return val * 1e-9, nil
	default:
		return 0, fmt.Errorf("unknown unit %q in %q", unit, s)
	}
}

// EffectiveMonovalent folds Mg2+ into a single Na+-equivalent
// (Owczarzy-lite: Na_eff = Na + 3.8*sqrt(Mg)).
func EffectiveMonovalent(naM, mgM float64) float64 {
	if mgM > 0 {
		return naM + 3.8*math.Sqrt(mgM)
	}
	return naM
}

// TmNearestNeighbor computes the two-state melting temperature of primer
// (5'→3', A/C/G/T only) against its perfect complement:
//  1. sum initiation + per-stack ΔH/ΔS, terminal A·T penalties, symmetry
//     correction if applicable;
//  2. salt-correct ΔS for monovalent ions: ΔS+= 0.368*(n-1)*ln[Na+];
//  3. Tm = ΔH*1000 / (ΔS + R ln(CT/x)) − 273.15.
func TmNearestNeighbor(primer5to3 string, cond Conditions) (tmC, dH, dS float64, _ error) {
	s := strings.ToUpper(strings.TrimSpace(primer5to3))
	if len(s) < 2 {
		return 0, 0, 0, errors.New("thermo: sequence too short")
	}
	dH = initDH
	dS = initDS
	for i := 0; i < len(s)-1; i++ {
		dh, okH := nnDH[s[i:i+2]]
		ds, okS := nnDS[s[i:i+2]]
		if !okH || !okS {
			return 0, 0, 0, errors.New("thermo: ambiguous base, Tm needs A/C/G/T")
		}
		dH += dh
		dS += ds
	}
	// Terminal A·T penalties, once per end.
	if s[0] == 'A' || s[0] == 'T' {
		dH += termATDH
		dS += termATDS
	}
	if s[len(s)-1] == 'A' || s[len(s)-1] == 'T' {
		dH += termATDH
		dS += termATDS
	}
	if cond.SelfComplementary {
		dS += symmetryDS
	}
	naEff := EffectiveMonovalent(cond.NaM, cond.MgM)
	if naEff <= 0 {
		naEff = 1e-6
	}
	dS += 0.368 * float64(len(s)-1) * math.Log(naEff)

	ct := math.Max(cond.PrimerTotalM, 1e-12)
	cfactor := 4.0
	if cond.SelfComplementary {
		cfactor = 1.0
	}
	den := dS + Rcal*math.Log(ct/cfactor)
	tmK := (dH*1000.0)/den + 273.15
	return tmK - 273.15, dH, dS, nil
}

// StackParams exposes the ΔH/ΔS propagation parameters for one dinucleotide
// stack (top strand 5'→3'). ok is false for stacks containing ambiguity codes.
func StackParams(dinuc string) (dH, dS float64, ok bool) {
	dh, okH := nnDH[dinuc]
	ds, okS := nnDS[dinuc]
	return dh, ds, okH && okS
}

// DeltaGAt converts a ΔH/ΔS pair to free energy at the given temperature.
func DeltaGAt(dHkcal, dScal, tempC float64) float64 {
	tK := tempC + 273.15
	return dHkcal - tK*dScal/1000.0
}
