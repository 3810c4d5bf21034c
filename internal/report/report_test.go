package report

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qpcrfold/domain/core"
	"qpcrfold/domain/qpcr"
)

func sampleResult() *qpcr.Result {
	return &qpcr.Result{
		ID: core.NewID(),
		Config: qpcr.Config{
			NumRefGenes:  1,
			AnalysisType: qpcr.AnalysisANOVA,
			PAdjust:      qpcr.AdjustHolm,
		},
		Data: &qpcr.Dataset{
			MainFactor: "Condition",
			Levels:     []string{"Control", "Treat"},
		},
		AnovaTable: qpcr.AnovaTable{Rows: []qpcr.AnovaRow{
			{Term: "Condition", DF: 1, SumSq: 13.5, MeanSq: 13.5, F: 13.5, P: 0.0213},
			{Term: "Residuals", DF: 4, SumSq: 4, MeanSq: 1, F: math.NaN(), P: math.NaN()},
		}},
		AncovaTable: qpcr.AnovaTable{Rows: []qpcr.AnovaRow{
			{Term: "Condition", DF: 1, SumSq: 13.5, MeanSq: 13.5, F: 13.5, P: 0.0213},
			{Term: "Residuals", DF: 4, SumSq: 4, MeanSq: 1, F: math.NaN(), P: math.NaN()},
		}},
		FoldChange: qpcr.FoldChangeTable{
			Reference: "Control",
			Rows: []qpcr.FoldChangeRow{
				{Level: "Control", FoldChange: 1, StdDev: 0.3, PValue: 1},
				{Level: "Treat", FoldChange: 8, StdDev: 0.1, PValue: 0.0213, Significance: "*"},
			},
		},
	}
}

func TestMarkdown(t *testing.T) {
	md := Markdown(sampleResult())

	assert.Contains(t, md, "# Fold-change analysis")
	assert.Contains(t, md, "Main factor: **Condition** (reference: Control)")
	assert.Contains(t, md, "Analysis type: anova")
	assert.Contains(t, md, "P-value adjustment: holm")
	assert.Contains(t, md, "## ANOVA table")
	assert.Contains(t, md, "## ANCOVA table")
	assert.Contains(t, md, "| Condition | 1 | 13.5000 | 13.5 | 13.5 | 0.0213 |")
	assert.Contains(t, md, "| Treat | 8.0000 | 0.1000 | 0.0213 | * |")
	// residual F and p render blank, not NaN
	assert.NotContains(t, md, "NaN")
}

func TestMarkdown_OmitsEmptyBlock(t *testing.T) {
	result := sampleResult()
	md := Markdown(result)
	assert.NotContains(t, md, "- Block:")

	result.Config.Block = "Batch"
	md = Markdown(result)
	assert.Contains(t, md, "- Block: Batch")
}

func TestHTML(t *testing.T) {
	out := string(HTML(sampleResult()))

	require.True(t, strings.Contains(out, "<html"))
	assert.Contains(t, out, "Fold-change analysis")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "Condition")
}
