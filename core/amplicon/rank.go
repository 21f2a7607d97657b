package amplicon

import (
	"fmt"
	"math"
	"sort"
)

// Weights are the tunable deduction magnitudes for likelihood scoring. The
// ordering and tie-break contract is fixed; only magnitudes move.
type Weights struct {
	PerWeightedMismatch float64 `mapstructure:"per-weighted-mismatch"`
	WrapAround          float64 `mapstructure:"wrap-around"`
	SizeEdge            float64 `mapstructure:"size-edge"`
}

// DefaultWeights are the out-of-the-box deduction magnitudes.
func DefaultWeights() Weights {
	return Weights{PerWeightedMismatch: 5.0, WrapAround: 10.0, SizeEdge: 10.0}
}

// Rank assigns each product a likelihood in [0,100], sorts by likelihood
// descending with ties broken by smaller size (shorter products amplify more
// efficiently), and marks exactly one primary when the set is non-empty.
// A non-positive product size here is an assembler bug and aborts with
// ErrInternal.
func Rank(products []Product, win SizeWindow, w Weights) ([]Product, error) {
	for i := range products {
		p := &products[i]
		if p.Size <= 0 {
			return nil, fmt.Errorf("%w: product with size %d reached the ranker", ErrInternal, p.Size)
		}
		score := 100.0
		// 3'-terminal mismatches weigh double, matching the Tm correction.
		weighted := float64(p.Fwd.Mismatches+p.Fwd.ThreePrimeMM) +
			float64(p.Rev.Mismatches+p.Rev.ThreePrimeMM)
		score -= w.PerWeightedMismatch * weighted
		if p.WrapsOrigin {
			score -= w.WrapAround
		}
		score -= w.SizeEdge * edgeFactor(p.Size, win)
		p.Likelihood = clamp(score, 0, 100)
		p.Primary = false
	}
	sort.SliceStable(products, func(i, j int) bool {
		if products[i].Likelihood != products[j].Likelihood {
			return products[i].Likelihood > products[j].Likelihood
		}
		return products[i].Size < products[j].Size
	})
	if len(products) > 0 {
		products[0].Primary = true
	}
	return products, nil
}

// edgeFactor is 0 for sizes in the central three quarters of a bounded
// window and ramps linearly to 1 at either edge.
func edgeFactor(size int, win SizeWindow) float64 {
	if !win.Bounded() {
		return 0
	}
	center := float64(win.Min+win.Max) / 2.0
	half := float64(win.Max-win.Min) / 2.0
	frac := math.Abs(float64(size)-center) / half
	const inner = 0.75
	if frac <= inner {
		return 0
	}
	if frac > 1 {
		frac = 1
	}
	return (frac - inner) / (1 - inner)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
