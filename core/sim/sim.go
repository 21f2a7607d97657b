// Package sim runs one in-silico PCR simulation: binding-site discovery,
// thermodynamic annotation, amplicon assembly, dimer screening and
// likelihood ranking, aggregated into a single immutable result.
package sim

import (
	"errors"
	"fmt"

	"pcrsim/core/amplicon"
	"pcrsim/core/dimer"
	"pcrsim/core/scan"
	"pcrsim/core/thermo"
)

// Out-of-the-box scanner budgets.
const (
	DefaultMaxMismatches      = 2
	DefaultMinThreePrimeMatch = 3
)

// ErrBadSizeWindow rejects negative or inverted product-size windows.
var ErrBadSizeWindow = errors.New("sim: non-positive product size window")

// Input is everything one simulation call consumes. Sequences are expected
// uppercase and alphabet-checked by the caller (the CLI boundary does this);
// structural problems are still caught here before any scanning.
type Input struct {
	Forward    string
	Reverse    string
	Template   string
	TemplateID string
	Circular   bool

	MaxMismatches      int
	MinThreePrimeMatch int
	SizeWindow         amplicon.SizeWindow

	Params     thermo.Params
	Conditions thermo.Conditions
	Weights    amplicon.Weights
}

// NewInput returns an Input with the documented defaults for the given
// sequences.
func NewInput(forward, reverse, template string) Input {
	return Input{
		Forward:            forward,
		Reverse:            reverse,
		Template:           template,
		MaxMismatches:      DefaultMaxMismatches,
		MinThreePrimeMatch: DefaultMinThreePrimeMatch,
		Params:             thermo.DefaultParams(),
		Conditions:         thermo.DefaultConditions(),
		Weights:            amplicon.DefaultWeights(),
	}
}

// Result is the aggregate hand-off artifact. Site lists include every site
// the scanner retained, warnings and all, for diagnostic transparency.
// Created once per call and never mutated afterwards.
type Result struct {
	TemplateID   string             `json:"template_id,omitempty"`
	Amplicons    []amplicon.Product `json:"amplicons"`
	ForwardSites []scan.Site        `json:"forward_sites"`
	ReverseSites []scan.Site        `json:"reverse_sites"`
	Dimer        dimer.Result       `json:"primer_dimer"`
	FwdSelf      dimer.Result       `json:"forward_self_dimer"`
	RevSelf      dimer.Result       `json:"reverse_self_dimer"`
	IsSpecific   bool               `json:"is_specific"`
}

// Simulate predicts where each primer binds the template and which products
// amplify. Structural input failures return a typed error before any
// scanning; everything else is reported as data on the Result.
func Simulate(in Input) (*Result, error) {
	if in.Forward == "" || in.Reverse == "" || in.Template == "" {
		return nil, scan.ErrEmptySequence
	}
	if len(in.Forward) > len(in.Template) || len(in.Reverse) > len(in.Template) {
		return nil, scan.ErrPrimerTooLong
	}
	if in.SizeWindow.Min < 0 || in.SizeWindow.Max < 0 ||
		(in.SizeWindow.Min > 0 && in.SizeWindow.Max > 0 && in.SizeWindow.Max < in.SizeWindow.Min) {
		return nil, fmt.Errorf("%w: min=%d max=%d", ErrBadSizeWindow, in.SizeWindow.Min, in.SizeWindow.Max)
	}

	opts := scan.Options{
		MaxMismatches:  in.MaxMismatches,
		TerminalWindow: in.MinThreePrimeMatch,
		Circular:       in.Circular,
	}
	template := []byte(in.Template)

	fwdSites, err := scan.Scan(template, []byte(in.Forward), scan.Forward, opts)
	if err != nil {
		return nil, err
	}
	revSites, err := scan.Scan(template, []byte(in.Reverse), scan.Reverse, opts)
	if err != nil {
		return nil, err
	}

	// Base Tm is memoized per primer for the duration of this call only.
	cache := thermo.NewTmCache(in.Conditions)
	annotate(fwdSites, in.Forward, cache, in.Params)
	annotate(revSites, in.Reverse, cache, in.Params)

	products := amplicon.Assemble(template, in.Circular, fwdSites, revSites, in.SizeWindow)
	ranked, err := amplicon.Rank(products, in.SizeWindow, in.Weights)
	if err != nil {
		return nil, err
	}

	return &Result{
		TemplateID:   in.TemplateID,
		Amplicons:    ranked,
		ForwardSites: fwdSites,
		ReverseSites: revSites,
		Dimer:        dimer.Screen(in.Forward, in.Reverse, in.Params),
		FwdSelf:      dimer.SelfScreen(in.Forward, in.Params),
		RevSelf:      dimer.SelfScreen(in.Reverse, in.Params),
		IsSpecific:   len(ranked) == 1,
	}, nil
}

// annotate attaches corrected Tm, 3'-end ΔG and validation notes to each
// site of one primer. A site is Valid when it earned no notes.
func annotate(sites []scan.Site, primer string, cache *thermo.TmCache, p thermo.Params) {
	if len(sites) == 0 {
		return
	}
	baseTm, tmErr := cache.BaseTm(primer)
	dg := thermo.ThreePrimeDG(primer)
	for i := range sites {
		s := &sites[i]
		if tmErr != nil {
			s.Notes = append(s.Notes, "Tm not estimated (ambiguous primer)")
		} else {
			s.Tm = thermo.CorrectTm(baseTm, s.Mismatches, s.ThreePrimeMM, p.MismatchPenaltyC)
		}
		s.ThreePrimeDG = dg
		s.Notes = append(s.Notes, p.ThreePrimeNotes(dg)...)
		s.Valid = len(s.Notes) == 0
	}
}
