package thermo

// Params collects the tunable thermodynamic thresholds. The zero value is
// not useful; start from DefaultParams and override as needed (QC modes pass
// a fully populated record, nothing is read from files here).
type Params struct {
	// °C deducted from the base Tm per weighted mismatch.
	MismatchPenaltyC float64 `mapstructure:"mismatch-penalty"`
	// 3'-end duplex ΔG below this is flagged as mispriming-prone.
	ThreePrimeTooStableDG float64 `mapstructure:"three-prime-too-stable"`
	// 3'-end duplex ΔG above this is flagged as unreliable.
	ThreePrimeTooWeakDG float64 `mapstructure:"three-prime-too-weak"`
	// Cross-dimer ΔG at or below this marks the pair problematic.
	DimerThresholdDG float64 `mapstructure:"dimer-threshold"`
}

// DefaultParams are the out-of-the-box thresholds.
func DefaultParams() Params {
	return Params{
		MismatchPenaltyC:      2.5,
		ThreePrimeTooStableDG: -9.0,
		ThreePrimeTooWeakDG:   -3.0,
		DimerThresholdDG:      -8.0,
	}
}

// Validation notes attached to binding sites.
const (
	NoteTooStable = "3' end too stable, may cause mispriming"
	NoteTooWeak   = "3' end too weak, binding may be unreliable"
)

// ThreePrimeNotes returns the warnings the 3'-end ΔG estimate earns under p.
func (p Params) ThreePrimeNotes(dg float64) []string {
	switch {
	case dg < p.ThreePrimeTooStableDG:
		return []string{NoteTooStable}
	case dg > p.ThreePrimeTooWeakDG:
		return []string{NoteTooWeak}
	default:
		return nil
	}
}
