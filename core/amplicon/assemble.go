// Package amplicon pairs primer binding sites into candidate PCR products
// and ranks them by likelihood.
package amplicon

import (
	"errors"
	"math"

	"pcrsim/core/scan"
)

// ErrInternal marks invariant violations that indicate a bug upstream, not a
// property of the input.
var ErrInternal = errors.New("amplicon: internal invariant violation")

// SizeWindow bounds plausible product sizes, inclusive. Zero means unbounded
// on that side.
type SizeWindow struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether n falls inside the window.
func (w SizeWindow) Contains(n int) bool {
	if w.Min > 0 && n < w.Min {
		return false
	}
	if w.Max > 0 && n > w.Max {
		return false
	}
	return true
}

// Bounded reports whether both edges are set and ordered.
func (w SizeWindow) Bounded() bool { return w.Min > 0 && w.Max > w.Min }

// Product is one candidate amplicon. End < Start only for wrap-around
// products on circular templates, which WrapsOrigin flags explicitly.
type Product struct {
	Start         int       `json:"start"`
	End           int       `json:"end"`
	Size          int       `json:"size"`
	Seq           string    `json:"seq"`
	WrapsOrigin   bool      `json:"wraps_origin,omitempty"`
	Likelihood    float64   `json:"likelihood"`
	Primary       bool      `json:"primary"`
	ExtensionSecs int       `json:"extension_secs"`
	Fwd           scan.Site `json:"forward_site"`
	Rev           scan.Site `json:"reverse_site"`
}

// extensionSecs estimates polymerase extension time at 1 min/kb, rounded to
// whole seconds.
func extensionSecs(size int) int {
	return int(math.Round(float64(size) * 60.0 / 1000.0))
}

// Assemble forms every valid convergent pairing of a forward site with a
// reverse site. All valid pairs are returned; ranking and specificity
// judgments happen downstream on the complete candidate set. Pairs whose
// sites share a start position (no extendable span) are discarded, as are
// products outside the size window.
func Assemble(template []byte, circular bool, fwd, rev []scan.Site, win SizeWindow) []Product {
	tl := len(template)
	var out []Product
	for _, f := range fwd {
		for _, r := range rev {
			if r.Pos == f.Pos {
				continue
			}
			var size, end int
			wraps := false
			if circular {
				size = (r.Pos-f.Pos+tl)%tl + r.Length
				// A reverse span reaching back through the forward site
				// would claim a product longer than the template itself.
				if size > tl {
					continue
				}
				if f.Pos+size > tl {
					wraps = true
					end = f.Pos + size - tl
				} else {
					end = f.Pos + size
				}
			} else {
				if r.Pos < f.Pos {
					continue
				}
				end = r.Pos + r.Length
				size = end - f.Pos
			}
			if size <= 0 || !win.Contains(size) {
				continue
			}
			var seq string
			if wraps {
				seq = string(template[f.Pos:]) + string(template[:end])
			} else {
				seq = string(template[f.Pos:end])
			}
			out = append(out, Product{
				Start:         f.Pos,
				End:           end,
				Size:          size,
				Seq:           seq,
				WrapsOrigin:   wraps,
				ExtensionSecs: extensionSecs(size),
				Fwd:           f,
				Rev:           r,
			})
		}
	}
	return out
}
