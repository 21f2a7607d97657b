// Package cli wires the simulator into a cobra command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"pcrsim/core/amplicon"
	"pcrsim/core/dna"
	"pcrsim/core/sim"
	"pcrsim/core/thermo"
	"pcrsim/internal/config"
	"pcrsim/internal/history"
	"pcrsim/internal/report"
)

// Version is stamped at build time.
var Version = "dev"

// Exit codes: 0 products found, 1 no products, 2 usage error, 3 runtime error.
const (
	exitOK      = 0
	exitNoMatch = 1
	exitUsage   = 2
	exitRuntime = 3
)

type exitErr struct {
	code int
	err  error
}

func (e *exitErr) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}
func (e *exitErr) Unwrap() error { return e.err }

type options struct {
	forward  string
	reverse  string
	template string
	circular bool

	mismatches     int
	terminalWindow int
	minProduct     int
	maxProduct     int

	qcMode     string
	configPath string

	output   string // text | tsv | json
	noHeader bool

	historyDB string
	verbose   bool

	na         string
	mg         string
	primerConc string
	annealC    float64
}

// Execute runs the CLI and returns the process exit code.
func Execute(argv []string, stdout, stderr io.Writer) int {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: true}).
		With().Timestamp().Logger()

	root := newRootCmd(stdout, &logger)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(argv)

	if err := root.Execute(); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			if ee.err != nil {
				logger.Error().Err(ee.err).Msg("simulation failed")
			}
			return ee.code
		}
		// cobra already printed flag/usage problems to stderr
		return exitUsage
	}
	return exitOK
}

func newRootCmd(stdout io.Writer, logger *zerolog.Logger) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "pcrsim",
		Short:         "simulate PCR amplification in silico",
		Long:          "pcrsim predicts primer binding sites, amplicons and primer-dimer risk for a primer pair against a linear or circular template.",
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSimulate(cmd.Context(), stdout, logger, opts)
		},
	}

	fl := root.Flags()
	fl.StringVarP(&opts.forward, "forward", "f", "", "forward primer 5'→3' (required)")
	fl.StringVarP(&opts.reverse, "reverse", "r", "", "reverse primer 5'→3' (required)")
	fl.StringVarP(&opts.template, "template", "t", "", "template: FASTA path or sequence literal (required)")
	fl.BoolVar(&opts.circular, "circular", false, "treat the template as circular")
	fl.IntVarP(&opts.mismatches, "mismatches", "m", sim.DefaultMaxMismatches, "max mismatches per binding site")
	fl.IntVar(&opts.terminalWindow, "terminal-window", sim.DefaultMinThreePrimeMatch, "3' bases that must match perfectly")
	fl.IntVar(&opts.minProduct, "min-product", 0, "min product size (0 = unbounded)")
	fl.IntVar(&opts.maxProduct, "max-product", 0, "max product size (0 = unbounded)")
	fl.StringVar(&opts.qcMode, "qc-mode", "standard", "qc mode: strict, standard or relaxed")
	fl.StringVar(&opts.configPath, "config", "", "optional YAML config with threshold overrides")
	fl.StringVarP(&opts.output, "output", "o", "text", "output format: text, tsv or json")
	fl.BoolVar(&opts.noHeader, "no-header", false, "suppress the TSV header")
	fl.StringVar(&opts.historyDB, "history-db", "", "record the run in this SQLite database")
	fl.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose logging")
	fl.StringVar(&opts.na, "na", "50mM", "monovalent cation concentration")
	fl.StringVar(&opts.mg, "mg", "1.5mM", "Mg2+ concentration")
	fl.StringVar(&opts.primerConc, "primer-conc", "250nM", "total primer concentration")
	fl.Float64Var(&opts.annealC, "anneal", 55.0, "annealing temperature, °C")

	root.AddCommand(newHistoryCmd(stdout))
	return root
}

func runSimulate(ctx context.Context, stdout io.Writer, logger *zerolog.Logger, opts *options) error {
	log := logger.With().Str("component", "simulate").Logger()
	if opts.verbose {
		log = log.Level(zerolog.DebugLevel)
	} else {
		log = log.Level(zerolog.WarnLevel)
	}

	in, err := buildInput(opts)
	if err != nil {
		return &exitErr{code: exitUsage, err: err}
	}

	records, err := loadTemplates(opts.template)
	if err != nil {
		return &exitErr{code: exitUsage, err: err}
	}
	log.Debug().Int("templates", len(records)).Msg("templates loaded")

	var (
		inputs  []sim.Input
		results []*sim.Result
	)
	total := 0
	for _, rec := range records {
		callIn := in
		callIn.Template = rec.Seq
		callIn.TemplateID = rec.ID
		res, err := sim.Simulate(callIn)
		if err != nil {
			code := exitUsage
			if errors.Is(err, amplicon.ErrInternal) {
				code = exitRuntime
			}
			return &exitErr{code: code, err: fmt.Errorf("template %s: %w", rec.ID, err)}
		}
		if res.Dimer.Problematic {
			log.Warn().Float64("delta_g", res.Dimer.DeltaG).Msg("primer pair may form dimers")
		}
		inputs = append(inputs, callIn)
		results = append(results, res)
		total += len(res.Amplicons)
	}

	if err := writeResults(stdout, opts, inputs, results); err != nil {
		if report.IsBrokenPipe(err) {
			return nil
		}
		return &exitErr{code: exitRuntime, err: err}
	}

	if opts.historyDB != "" {
		if err := recordRuns(ctx, opts.historyDB, inputs, results); err != nil {
			// History is best-effort; the simulation output already went out.
			log.Warn().Err(err).Msg("run history not recorded")
		}
	}

	if total == 0 {
		log.Debug().Msg("no amplicons predicted")
		return &exitErr{code: exitNoMatch}
	}
	return nil
}

func buildInput(opts *options) (sim.Input, error) {
	fwd, err := dna.Validate(opts.forward)
	if err != nil {
		return sim.Input{}, fmt.Errorf("forward primer: %w", err)
	}
	rev, err := dna.Validate(opts.reverse)
	if err != nil {
		return sim.Input{}, fmt.Errorf("reverse primer: %w", err)
	}
	if opts.template == "" {
		return sim.Input{}, fmt.Errorf("template is required")
	}
	switch opts.output {
	case "text", "tsv", "json":
	default:
		return sim.Input{}, fmt.Errorf("unsupported output %q (want text, tsv or json)", opts.output)
	}

	qc, err := config.Load(opts.configPath, opts.qcMode)
	if err != nil {
		return sim.Input{}, err
	}

	cond := thermo.DefaultConditions()
	cond.AnnealC = opts.annealC
	if cond.NaM, err = thermo.ParseConc(opts.na); err != nil {
		return sim.Input{}, err
	}
	if cond.MgM, err = thermo.ParseConc(opts.mg); err != nil {
		return sim.Input{}, err
	}
	if cond.PrimerTotalM, err = thermo.ParseConc(opts.primerConc); err != nil {
		return sim.Input{}, err
	}

	in := sim.NewInput(fwd, rev, "")
	in.Circular = opts.circular
	in.MaxMismatches = qc.MaxMismatches
	in.MinThreePrimeMatch = qc.MinThreePrimeMatch
	in.Params = qc.Thermo
	in.Weights = qc.Weights
	in.Conditions = cond
	in.SizeWindow = amplicon.SizeWindow{Min: opts.minProduct, Max: opts.maxProduct}

	// Explicit flags override the profile's scanner budgets.
	if opts.mismatches != sim.DefaultMaxMismatches {
		in.MaxMismatches = opts.mismatches
	}
	if opts.terminalWindow != sim.DefaultMinThreePrimeMatch {
		in.MinThreePrimeMatch = opts.terminalWindow
	}
	return in, nil
}

func writeResults(w io.Writer, opts *options, inputs []sim.Input, results []*sim.Result) error {
	switch opts.output {
	case "json":
		return report.WriteJSON(w, results)
	case "tsv":
		return report.WriteTSV(w, results, !opts.noHeader)
	case "text":
		for i, res := range results {
			if err := report.WriteText(w, inputs[i], res); err != nil {
				return err
			}
		}
		return nil
	default:
		// buildInput already rejected anything else.
		return fmt.Errorf("unsupported output %q", opts.output)
	}
}

func recordRuns(ctx context.Context, path string, inputs []sim.Input, results []*sim.Result) error {
	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()
	for i, res := range results {
		if err := store.Record(ctx, history.NewRun(inputs[i], res)); err != nil {
			return err
		}
	}
	return nil
}
