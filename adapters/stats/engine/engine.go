// Package engine fits the comparative linear models over wDCt and extracts
// reference-level fold-change contrasts from them.
package engine

import (
	"qpcrfold/domain/model"
	"qpcrfold/domain/qpcr"
)

// ResponseColumn names the derived response every model fits against.
const ResponseColumn = "wDCt"

// AnovaSpec builds the full factorial specification: the main factor crossed
// with every covariate, block (if any) additive.
func AnovaSpec(ds *qpcr.Dataset) model.Spec {
	factors := append([]string{ds.MainFactor}, ds.Factors...)
	return model.FullFactorial(ResponseColumn, factors, ds.Block)
}

// AncovaSpec builds the additive specification with term priority reversed:
// covariates first, main factor last, so the sequential sum of squares lets
// the covariates absorb shared variance before the main factor.
func AncovaSpec(ds *qpcr.Dataset) model.Spec {
	factors := append([]string{ds.MainFactor}, ds.Factors...)
	reversed := make([]string, len(factors))
	for i, f := range factors {
		reversed[len(factors)-1-i] = f
	}
	return model.Additive(ResponseColumn, reversed, ds.Block)
}
