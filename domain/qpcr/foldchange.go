package qpcr

import "math"

// Significance codes classify a contrast's p-value. Thresholds are strict:
// p exactly 0.001 earns **, not ***.
const (
	SignificanceHigh   = "***" // p < 0.001
	SignificanceMedium = "**"  // p < 0.01
	SignificanceLow    = "*"   // p < 0.05
	SignificanceNone   = "ns"
)

// Classify maps a p-value to its significance code.
func Classify(p float64) string {
	switch {
	case p < 0.001:
		return SignificanceHigh
	case p < 0.01:
		return SignificanceMedium
	case p < 0.05:
		return SignificanceLow
	default:
		return SignificanceNone
	}
}

// FoldChangeRow is one level of the fold-change table.
type FoldChangeRow struct {
	Level        string  `json:"level"`
	FoldChange   float64 `json:"fold_change"`
	StdDev       float64 `json:"std_dev"`
	PValue       float64 `json:"p_value"`
	Significance string  `json:"significance"`
}

// FoldChangeTable is the primary analysis output: one row per main-factor
// level, reference first with FC and p-value pinned to 1 and a blank code.
// Built once per invocation and never mutated afterwards.
type FoldChangeTable struct {
	Reference string          `json:"reference"`
	Rows      []FoldChangeRow `json:"rows"`
}

// ReferenceRow builds the fixed reference row. sd is the reference group's
// raw wDCt standard deviation, displayed untransformed.
func ReferenceRow(level string, sd float64) FoldChangeRow {
	return FoldChangeRow{
		Level:        level,
		FoldChange:   1,
		StdDev:       sd,
		PValue:       1,
		Significance: "",
	}
}

// FoldChangeFromEstimate converts a log10-scale contrast estimate to a
// linear fold change. Positive estimate means more expression than the
// reference, so FC > 1.
func FoldChangeFromEstimate(estimate float64) float64 {
	return 1 / math.Pow(10, -estimate)
}

// Row returns the row for the named level, or nil.
func (t *FoldChangeTable) Row(level string) *FoldChangeRow {
	for i := range t.Rows {
		if t.Rows[i].Level == level {
			return &t.Rows[i]
		}
	}
	return nil
}
