package engine

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"qpcrfold/domain/core"
	"qpcrfold/domain/qpcr"
)

// EMM is the estimated marginal mean of the response at one main-factor
// level, other terms held at their equal-weight average.
type EMM struct {
	Level    string
	Estimate float64
	// row is the prediction row that produced the estimate.
	row []float64
}

// EMMeans computes the least-squares means of every level of the named
// factor from the fitted model. Dummies of other factors are averaged: each
// of a k-level factor's indicators takes the value 1/k.
func EMMeans(fit *qpcr.ModelFit, factor string) ([]EMM, error) {
	design := fit.Design
	levels, ok := design.FactorLevels[factor]
	if !ok {
		return nil, fmt.Errorf("%w: factor %q", core.ErrTermNotInModel, factor)
	}

	means := make([]EMM, len(levels))
	for li, level := range levels {
		row := make([]float64, len(design.Columns))
		for ci, col := range design.Columns {
			v := 1.0
			for _, d := range col.Dummies {
				if d.Factor == factor {
					if d.Level != level {
						v = 0
						break
					}
				} else {
					v /= float64(len(design.FactorLevels[d.Factor]))
				}
			}
			row[ci] = v
		}
		est := 0.0
		for ci := range row {
			est += row[ci] * fit.Coefficients[ci].Estimate
		}
		means[li] = EMM{Level: level, Estimate: est, row: row}
	}
	return means, nil
}

// ReferenceContrasts forms the (k-1) pairwise contrasts of each non-reference
// level against the reference level of the dataset's main factor. Contrasts
// are selected by level identity, never by position in a pairwise enumeration.
// The estimate is oriented reference minus level, so a positive value means
// the level expresses more than the reference (lower wDCt).
func ReferenceContrasts(fit *qpcr.ModelFit, mainFactor, reference string) ([]qpcr.Contrast, error) {
	means, err := EMMeans(fit, mainFactor)
	if err != nil {
		return nil, err
	}

	var ref *EMM
	for i := range means {
		if means[i].Level == reference {
			ref = &means[i]
			break
		}
	}
	if ref == nil {
		return nil, fmt.Errorf("%w: reference level %q has no marginal mean",
			core.ErrContrastUnresolved, reference)
	}

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(fit.DFResidual)}
	contrasts := make([]qpcr.Contrast, 0, len(means)-1)
	for i := range means {
		m := &means[i]
		if m.Level == reference {
			continue
		}
		c := make([]float64, len(ref.row))
		for j := range c {
			c[j] = ref.row[j] - m.row[j]
		}
		variance := fit.Sigma2 * quadraticForm(c, fit.Design.XtXInv)
		se := math.Sqrt(variance)
		est := ref.Estimate - m.Estimate
		t := est / se
		p := 2 * tDist.Survival(math.Abs(t))
		contrasts = append(contrasts, qpcr.Contrast{
			Level:    m.Level,
			Estimate: est,
			SE:       se,
			T:        t,
			DF:       fit.DFResidual,
			P:        p,
		})
	}
	return contrasts, nil
}

// quadraticForm computes c' M c.
func quadraticForm(c []float64, m [][]float64) float64 {
	total := 0.0
	for i := range c {
		if c[i] == 0 {
			continue
		}
		for j := range c {
			total += c[i] * m[i][j] * c[j]
		}
	}
	return total
}
