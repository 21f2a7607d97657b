package thermo

import "sync"

// threePrimeWindow is the terminal duplex span used for the 3' ΔG estimate.
const threePrimeWindow = 5

// CorrectTm applies the mismatch correction to a base melting temperature.
// Each 3'-terminal mismatch (last 3 bases) weighs 2.0, every other mismatch
// 1.0, so the weighted count is mismatches + threePrimeMM.
func CorrectTm(baseTm float64, mismatches, threePrimeMM int, penaltyC float64) float64 {
	weighted := float64(mismatches) + float64(threePrimeMM)
	return baseTm - penaltyC*weighted
}

// ThreePrimeDG estimates the free energy of the primer's terminal duplex
// region (last 5 bases, stacks only) at 37 °C. Stacks containing ambiguity
// codes are skipped, which biases degenerate ends toward "too weak" — the
// conservative direction.
func ThreePrimeDG(primer string) float64 {
	s := primer
	if len(s) > threePrimeWindow {
		s = s[len(s)-threePrimeWindow:]
	}
	var dH, dS float64
	for i := 0; i < len(s)-1; i++ {
		dh, okH := nnDH[s[i:i+2]]
		ds, okS := nnDS[s[i:i+2]]
		if !okH || !okS {
			continue
		}
		dH += dh
		dS += ds
	}
	return DeltaGAt(dH, dS, 37.0)
}

// TmCache memoizes the base Tm per primer for one simulation call. The base
// Tm is a property of the primer alone, so many candidate sites share it.
// Safe for concurrent use.
type TmCache struct {
	cond Conditions

	mu sync.Mutex
	m  map[string]cached
}

type cached struct {
	tm  float64
	err error
}

// NewTmCache builds an empty cache bound to one set of conditions.
func NewTmCache(cond Conditions) *TmCache {
	return &TmCache{cond: cond, m: make(map[string]cached)}
}

// BaseTm returns the nearest-neighbor Tm of primer, computing it at most
// once. Degenerate primers return the underlying error on every call.
func (c *TmCache) BaseTm(primer string) (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.m[primer]; ok {
		return v.tm, v.err
	}
	tm, _, _, err := TmNearestNeighbor(primer, c.cond)
	c.m[primer] = cached{tm: tm, err: err}
	return tm, err
}
