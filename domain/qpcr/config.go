package qpcr

import (
	"fmt"

	"qpcrfold/domain/core"
)

// AnalysisType selects which fitted model feeds the contrast engine. Both
// models are always fitted and returned regardless of the selection.
type AnalysisType string

const (
	AnalysisANOVA  AnalysisType = "anova"
	AnalysisANCOVA AnalysisType = "ancova"
)

// AdjustMethod identifies a multiple-comparison p-value correction policy.
// The set mirrors R's p.adjust methods; "fdr" is an alias for "BH".
type AdjustMethod string

const (
	AdjustNone       AdjustMethod = "none"
	AdjustHolm       AdjustMethod = "holm"
	AdjustHommel     AdjustMethod = "hommel"
	AdjustHochberg   AdjustMethod = "hochberg"
	AdjustBonferroni AdjustMethod = "bonferroni"
	AdjustBH         AdjustMethod = "BH"
	AdjustBY         AdjustMethod = "BY"
	AdjustFDR        AdjustMethod = "fdr"
)

// AdjustMethods lists every accepted adjustment identifier.
var AdjustMethods = []AdjustMethod{
	AdjustNone, AdjustHolm, AdjustHommel, AdjustHochberg,
	AdjustBonferroni, AdjustBH, AdjustBY, AdjustFDR,
}

// Style carries chart options passed through to the external renderer.
// None of these influence the statistical computation.
type Style struct {
	Width         float64 `json:"width"`
	FillColor     string  `json:"fill_color"`
	XAxisLabel    string  `json:"x_axis_label"`
	YAxisLabel    string  `json:"y_axis_label"`
	FontSizeAxis  float64 `json:"font_size_axis"`
	FontSizeLabel float64 `json:"font_size_label"`
	LabelAngle    float64 `json:"label_angle"`
	LabelHJust    float64 `json:"label_hjust"`
	YAxisBreaks   float64 `json:"y_axis_breaks"`
}

// DefaultStyle mirrors the renderer's defaults for a fold-change bar chart.
func DefaultStyle() Style {
	return Style{
		Width:         0.5,
		FillColor:     "skyblue",
		XAxisLabel:    "Factor levels",
		YAxisLabel:    "Fold change",
		FontSizeAxis:  12,
		FontSizeLabel: 12,
		LabelAngle:    0,
		LabelHJust:    0.5,
		YAxisBreaks:   1,
	}
}

// Config holds the explicit configuration of one fold-change analysis.
type Config struct {
	// NumRefGenes is the number of reference genes, 1 or 2.
	NumRefGenes int `json:"num_ref_genes"`
	// MainFactorColumn is the 1-based index of the main factor column in
	// the raw observation table.
	MainFactorColumn int `json:"main_factor_column"`
	// LevelOrder orders the main factor's levels; the first entry is the
	// reference level every contrast is taken against.
	LevelOrder []string `json:"level_order"`
	// Block names the blocking column, empty when the design is unblocked.
	Block string `json:"block,omitempty"`
	// AnalysisType picks the model that drives contrasts.
	AnalysisType AnalysisType `json:"analysis_type"`
	// PAdjust is the multiple-comparison correction applied to the pairwise
	// p-values before significance classification.
	PAdjust AdjustMethod `json:"p_adjust"`
	// Style is passed through to the chart renderer untouched.
	Style Style `json:"style"`
}

// Validate checks the configuration enums and shape constraints.
func (c *Config) Validate() error {
	if c.NumRefGenes != 1 && c.NumRefGenes != 2 {
		return fmt.Errorf("%w: got %d", core.ErrInvalidRefGenes, c.NumRefGenes)
	}
	if c.MainFactorColumn < 1 {
		return core.NewShapeError(core.ErrColumnOutOfRange,
			fmt.Sprintf("main factor column %d", c.MainFactorColumn))
	}
	if len(c.LevelOrder) == 0 {
		return core.ErrEmptyLevelOrder
	}
	switch c.AnalysisType {
	case AnalysisANOVA, AnalysisANCOVA:
	default:
		return fmt.Errorf("%w: got %q", core.ErrInvalidAnalysisType, c.AnalysisType)
	}
	if !c.PAdjust.Valid() {
		return fmt.Errorf("%w: got %q", core.ErrInvalidAdjustMethod, c.PAdjust)
	}
	return nil
}

// Reference returns the reference level, the first entry of LevelOrder.
func (c *Config) Reference() string {
	if len(c.LevelOrder) == 0 {
		return ""
	}
	return c.LevelOrder[0]
}

// Valid reports whether m is one of the accepted adjustment methods.
func (m AdjustMethod) Valid() bool {
	for _, known := range AdjustMethods {
		if m == known {
			return true
		}
	}
	return false
}
