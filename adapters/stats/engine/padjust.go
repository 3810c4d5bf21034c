package engine

import (
	"fmt"
	"math"
	"sort"

	"qpcrfold/domain/core"
	"qpcrfold/domain/qpcr"
)

// AdjustPValues applies the chosen multiple-comparison correction to a
// family of p-values. The method set and semantics follow the standard
// p.adjust family; "fdr" is an alias for Benjamini-Hochberg.
func AdjustPValues(p []float64, method qpcr.AdjustMethod) ([]float64, error) {
	n := len(p)
	if n <= 1 || method == qpcr.AdjustNone {
		return append([]float64(nil), p...), nil
	}
	switch method {
	case qpcr.AdjustBonferroni:
		out := make([]float64, n)
		for i, v := range p {
			out[i] = math.Min(1, float64(n)*v)
		}
		return out, nil
	case qpcr.AdjustHolm:
		return holm(p), nil
	case qpcr.AdjustHochberg:
		return hochberg(p), nil
	case qpcr.AdjustHommel:
		return hommel(p), nil
	case qpcr.AdjustBH, qpcr.AdjustFDR:
		return benjaminiHochberg(p, 1), nil
	case qpcr.AdjustBY:
		q := 0.0
		for k := 1; k <= n; k++ {
			q += 1 / float64(k)
		}
		return benjaminiHochberg(p, q), nil
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrInvalidAdjustMethod, method)
	}
}

// ascOrder returns indices sorting p ascending.
func ascOrder(p []float64) []int {
	o := make([]int, len(p))
	for i := range o {
		o[i] = i
	}
	sort.SliceStable(o, func(a, b int) bool { return p[o[a]] < p[o[b]] })
	return o
}

// holm: step-down, running maximum of (n-i)*p over ascending p.
func holm(p []float64) []float64 {
	n := len(p)
	o := ascOrder(p)
	out := make([]float64, n)
	cummax := math.Inf(-1)
	for i, idx := range o {
		v := float64(n-i) * p[idx]
		cummax = math.Max(cummax, v)
		out[idx] = math.Min(1, cummax)
	}
	return out
}

// hochberg: step-up, running minimum of rank*p over descending p.
func hochberg(p []float64) []float64 {
	n := len(p)
	o := ascOrder(p)
	out := make([]float64, n)
	cummin := math.Inf(1)
	for i := n - 1; i >= 0; i-- {
		idx := o[i]
		v := float64(n-i) * p[idx]
		cummin = math.Min(cummin, v)
		out[idx] = math.Min(1, cummin)
	}
	return out
}

// benjaminiHochberg: step-up with rank fraction n/rank, scaled by q (1 for
// BH, the harmonic sum for BY).
func benjaminiHochberg(p []float64, q float64) []float64 {
	n := len(p)
	o := ascOrder(p)
	out := make([]float64, n)
	cummin := math.Inf(1)
	for i := n - 1; i >= 0; i-- {
		idx := o[i]
		v := q * float64(n) / float64(i+1) * p[idx]
		cummin = math.Min(cummin, v)
		out[idx] = math.Min(1, cummin)
	}
	return out
}

// hommel implements Hommel's closed-testing adjustment.
func hommel(p []float64) []float64 {
	n := len(p)
	o := ascOrder(p)
	sorted := make([]float64, n)
	for i, idx := range o {
		sorted[i] = p[idx]
	}

	init := math.Inf(1)
	for i := 0; i < n; i++ {
		init = math.Min(init, float64(n)*sorted[i]/float64(i+1))
	}
	pa := make([]float64, n)
	qv := make([]float64, n)
	for i := range pa {
		pa[i] = init
		qv[i] = init
	}

	for m := n - 1; m >= 2; m-- {
		// upper block: the largest m-1 sorted p-values
		lower := n - m + 1 // count of the lower block
		q1 := math.Inf(1)
		for k := lower; k < n; k++ {
			q1 = math.Min(q1, float64(m)*sorted[k]/float64(k-lower+2))
		}
		for i := 0; i < lower; i++ {
			qv[i] = math.Min(float64(m)*sorted[i], q1)
		}
		for i := lower; i < n; i++ {
			qv[i] = qv[lower-1]
		}
		for i := 0; i < n; i++ {
			pa[i] = math.Max(pa[i], qv[i])
		}
	}

	out := make([]float64, n)
	for i, idx := range o {
		out[idx] = math.Max(pa[i], sorted[i])
	}
	return out
}
