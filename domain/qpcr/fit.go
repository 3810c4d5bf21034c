package qpcr

import (
	"qpcrfold/domain/model"
)

// Coefficient is one fitted design-matrix coefficient.
type Coefficient struct {
	Name     string  `json:"name"`
	Estimate float64 `json:"estimate"`
}

// Dummy is one treatment-coded indicator: 1 when the row's value of Factor
// equals Level, 0 otherwise.
type Dummy struct {
	Factor string `json:"factor"`
	Level  string `json:"level"`
}

// DesignColumn describes one design-matrix column as a product of dummies.
// The intercept column has no dummies. TermIndex is -1 for the intercept,
// otherwise the index into the model spec's term list.
type DesignColumn struct {
	Name      string  `json:"name"`
	TermIndex int     `json:"term_index"`
	Dummies   []Dummy `json:"dummies"`
}

// DesignInfo carries the fitted design's metadata and the inverse normal
// matrix needed for marginal-mean variance computation.
type DesignInfo struct {
	Columns      []DesignColumn      `json:"columns"`
	XtXInv       [][]float64         `json:"xtx_inv"`
	FactorLevels map[string][]string `json:"factor_levels"`
}

// ModelFit is an immutable ordinary-least-squares fit of wDCt against a
// model specification. It owns its coefficient table and residual vector.
type ModelFit struct {
	Spec         model.Spec    `json:"spec"`
	Coefficients []Coefficient `json:"coefficients"`
	Fitted       []float64     `json:"fitted"`
	Residuals    []float64     `json:"residuals"`
	RSS          float64       `json:"rss"`
	DFResidual   int           `json:"df_residual"`
	Sigma2       float64       `json:"sigma2"`
	Design       *DesignInfo   `json:"design"`
}

// NumObservations returns the number of fitted rows.
func (f *ModelFit) NumObservations() int {
	return len(f.Fitted)
}

// Coefficient returns the estimate of the named design column.
func (f *ModelFit) Coefficient(name string) (float64, bool) {
	for _, c := range f.Coefficients {
		if c.Name == name {
			return c.Estimate, true
		}
	}
	return 0, false
}
