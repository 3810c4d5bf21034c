// Package chart turns a fold-change table into a renderable bar-chart
// description. It is a pure function of the table and the styling options;
// no statistical computation happens here.
package chart

import (
	"math"

	"qpcrfold/domain/qpcr"
)

// Bar is one fold-change bar with its error whisker and significance label.
type Bar struct {
	Label      string  `json:"label"`
	Value      float64 `json:"value"`
	ErrorLow   float64 `json:"error_low"`
	ErrorHigh  float64 `json:"error_high"`
	Annotation string  `json:"annotation"`
}

// BarChart is the renderable chart description consumed by external
// renderers.
type BarChart struct {
	Title       string     `json:"title"`
	XAxisLabel  string     `json:"x_axis_label"`
	YAxisLabel  string     `json:"y_axis_label"`
	Bars        []Bar      `json:"bars"`
	YAxisBreaks []float64  `json:"y_axis_breaks"`
	Style       qpcr.Style `json:"style"`
}

// Build constructs the bar chart from a fold-change table. Bars keep the
// table's order (reference first); annotations carry the significance codes.
func Build(fc qpcr.FoldChangeTable, style qpcr.Style) BarChart {
	bars := make([]Bar, len(fc.Rows))
	maxTop := 0.0
	for i, row := range fc.Rows {
		// fold change is strictly positive, the lower whisker never dips
		// below zero
		low := row.FoldChange - row.StdDev
		if low < 0 {
			low = 0
		}
		bars[i] = Bar{
			Label:      row.Level,
			Value:      row.FoldChange,
			ErrorLow:   low,
			ErrorHigh:  row.FoldChange + row.StdDev,
			Annotation: row.Significance,
		}
		if top := bars[i].ErrorHigh; top > maxTop {
			maxTop = top
		}
	}
	return BarChart{
		XAxisLabel:  style.XAxisLabel,
		YAxisLabel:  style.YAxisLabel,
		Bars:        bars,
		YAxisBreaks: axisBreaks(maxTop, style.YAxisBreaks),
		Style:       style,
	}
}

// axisBreaks places tick marks from zero past the tallest whisker.
func axisBreaks(maxTop, step float64) []float64 {
	if step <= 0 {
		step = 1
	}
	top := math.Ceil(maxTop/step) * step
	if top < step {
		top = step
	}
	breaks := make([]float64, 0, int(top/step)+1)
	for v := 0.0; v <= top+step/2; v += step {
		breaks = append(breaks, v)
	}
	return breaks
}
