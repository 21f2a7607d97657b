// Package report renders simulation results as JSON, TSV or a human-readable
// alignment view.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"pcrsim/core/sim"
)

// WriteJSON writes the results as a JSON array with stable field names.
func WriteJSON(w io.Writer, results []*sim.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

var tsvColumns = []string{
	"template_id", "start", "end", "size", "likelihood", "primary",
	"wraps_origin", "extension_secs", "fwd_mm", "rev_mm",
}

// WriteTSV writes one row per amplicon across all results.
func WriteTSV(w io.Writer, results []*sim.Result, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, strings.Join(tsvColumns, "\t")); err != nil {
			return err
		}
	}
	for _, res := range results {
		for _, p := range res.Amplicons {
			if _, err := fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%.1f\t%t\t%t\t%d\t%d\t%d\n",
				res.TemplateID, p.Start, p.End, p.Size, p.Likelihood, p.Primary,
				p.WrapsOrigin, p.ExtensionSecs, p.Fwd.Mismatches, p.Rev.Mismatches); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteText writes the full human-readable report for one simulation:
// summary, dimer screen, amplicons and per-site alignments.
func WriteText(w io.Writer, in sim.Input, res *sim.Result) error {
	id := res.TemplateID
	if id == "" {
		id = "template"
	}
	fmt.Fprintf(w, "template %s (%d bp", id, len(in.Template))
	if in.Circular {
		fmt.Fprint(w, ", circular")
	}
	fmt.Fprintln(w, ")")
	fmt.Fprintf(w, "amplicons: %d  specific: %t\n", len(res.Amplicons), res.IsSpecific)
	fmt.Fprintf(w, "primer dimer: dG=%.2f kcal/mol problematic=%t\n",
		res.Dimer.DeltaG, res.Dimer.Problematic)
	if res.FwdSelf.Problematic || res.RevSelf.Problematic {
		fmt.Fprintf(w, "self dimer: fwd dG=%.2f rev dG=%.2f\n",
			res.FwdSelf.DeltaG, res.RevSelf.DeltaG)
	}

	for i, p := range res.Amplicons {
		tag := ""
		if p.Primary {
			tag = " primary"
		}
		if p.WrapsOrigin {
			tag += " wraps-origin"
		}
		fmt.Fprintf(w, "\nproduct %d: %d..%d size=%d bp likelihood=%.1f ext=%ds%s\n",
			i+1, p.Start, p.End, p.Size, p.Likelihood, p.ExtensionSecs, tag)
	}

	if len(res.ForwardSites) > 0 {
		fmt.Fprintln(w, "\nforward primer sites:")
		for _, s := range res.ForwardSites {
			fmt.Fprint(w, RenderSite([]byte(in.Template), in.Forward, s))
		}
	}
	if len(res.ReverseSites) > 0 {
		fmt.Fprintln(w, "\nreverse primer sites:")
		for _, s := range res.ReverseSites {
			fmt.Fprint(w, RenderSite([]byte(in.Template), in.Reverse, s))
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}
