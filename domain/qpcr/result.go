package qpcr

import (
	"qpcrfold/domain/core"
)

// Contrast is one pairwise comparison of a main-factor level against the
// reference level, on the wDCt (log10) scale. Estimate is oriented
// reference minus level so a positive estimate means more expression.
type Contrast struct {
	Level    string  `json:"level"`
	Estimate float64 `json:"estimate"`
	SE       float64 `json:"se"`
	T        float64 `json:"t"`
	DF       int     `json:"df"`
	P        float64 `json:"p"`
	PAdj     float64 `json:"p_adj"`
}

// Result bundles everything one fold-change analysis produced. Both models
// and both variance tables are always present regardless of which one the
// configuration selected for contrasts.
type Result struct {
	ID        core.ID        `json:"id"`
	CreatedAt core.Timestamp `json:"created_at"`
	Config    Config         `json:"config"`

	// Data is the final dataset: normalized rows, wDCt, and the selected
	// model's residuals.
	Data *Dataset `json:"data"`

	AnovaFit    *ModelFit  `json:"anova_fit"`
	AncovaFit   *ModelFit  `json:"ancova_fit"`
	AnovaTable  AnovaTable `json:"anova_table"`
	AncovaTable AnovaTable `json:"ancova_table"`

	Contrasts  []Contrast      `json:"contrasts"`
	FoldChange FoldChangeTable `json:"fold_change"`
}

// SelectedFit returns the fit chosen by the configuration's analysis type.
func (r *Result) SelectedFit() *ModelFit {
	if r.Config.AnalysisType == AnalysisANOVA {
		return r.AnovaFit
	}
	return r.AncovaFit
}
