// Package config resolves QC profiles for the simulator. Settings are
// unmarshalled from Viper (see /internal/cli); the core never reads files.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"pcrsim/core/amplicon"
	"pcrsim/core/sim"
	"pcrsim/core/thermo"
)

// QC is one resolved quality-control profile: the scanner budgets plus the
// thermodynamic thresholds handed to the core as a plain record.
type QC struct {
	Mode               string           `mapstructure:"mode"`
	MaxMismatches      int              `mapstructure:"max-mismatches"`
	MinThreePrimeMatch int              `mapstructure:"min-three-prime-match"`
	Thermo             thermo.Params    `mapstructure:"thermo"`
	Weights            amplicon.Weights `mapstructure:"weights"`
}

// Standard is the out-of-the-box profile. The thermodynamic thresholds are
// the documented literal defaults in every mode; strict/relaxed only move
// the scanner's mismatch budget.
func Standard() QC {
	return QC{
		Mode:               "standard",
		MaxMismatches:      sim.DefaultMaxMismatches,
		MinThreePrimeMatch: sim.DefaultMinThreePrimeMatch,
		Thermo:             thermo.DefaultParams(),
		Weights:            amplicon.DefaultWeights(),
	}
}

// ForMode resolves a named QC mode.
func ForMode(mode string) (QC, error) {
	qc := Standard()
	switch mode {
	case "", "standard":
	case "strict":
		qc.Mode = "strict"
		qc.MaxMismatches = 1
	case "relaxed":
		qc.Mode = "relaxed"
		qc.MaxMismatches = 3
	default:
		return QC{}, fmt.Errorf("unknown qc mode %q (want strict, standard or relaxed)", mode)
	}
	return qc, nil
}

// Load reads an optional config file on top of the named mode's profile.
// Absent path means mode defaults only.
func Load(path, mode string) (QC, error) {
	qc, err := ForMode(mode)
	if err != nil {
		return QC{}, err
	}
	if path == "" {
		return qc, nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return QC{}, fmt.Errorf("read config: %w", err)
	}
	if err := v.Unmarshal(&qc); err != nil {
		return QC{}, fmt.Errorf("parse config: %w", err)
	}
	if qc.MaxMismatches < 0 || qc.MinThreePrimeMatch < 0 {
		return QC{}, fmt.Errorf("config: negative scanner budgets")
	}
	return qc, nil
}
