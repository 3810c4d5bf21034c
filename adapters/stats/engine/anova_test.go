package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qpcrfold/domain/qpcr"
)

func TestSequentialAnova_TwoGroups(t *testing.T) {
	ds := twoGroupDataset()
	table, fit, err := SequentialAnova(ds, AnovaSpec(ds))
	require.NoError(t, err)
	require.NotNil(t, fit)

	require.Len(t, table.Rows, 2) // Condition + Residuals
	cond := table.Rows[0]
	resid := table.Rows[1]

	assert.Equal(t, "Condition", cond.Term)
	assert.Equal(t, 1, cond.DF)
	// total SS 17.5 around the grand mean, 4 left in the residual
	assert.InDelta(t, 13.5, cond.SumSq, 1e-9)
	assert.InDelta(t, 13.5, cond.F, 1e-9)
	assert.InDelta(t, 0.0213, cond.P, 1e-3)

	assert.Equal(t, "Residuals", resid.Term)
	assert.Equal(t, 4, resid.DF)
	assert.InDelta(t, 4, resid.SumSq, 1e-9)
	assert.True(t, math.IsNaN(resid.F))
}

// covariateDataset crosses a 2-level condition with a 2-level genotype,
// two replicates per cell.
func covariateDataset() *qpcr.Dataset {
	table := &qpcr.Table{
		Columns: []string{"Condition", "Genotype"},
		Rows: [][]string{
			{"Control", "WT"}, {"Control", "WT"},
			{"Control", "MU"}, {"Control", "MU"},
			{"Treat", "WT"}, {"Treat", "WT"},
			{"Treat", "MU"}, {"Treat", "MU"},
		},
	}
	return &qpcr.Dataset{
		Table:      table,
		MainFactor: "Condition",
		Levels:     []string{"Control", "Treat"},
		Factors:    []string{"Genotype"},
		WDCt:       []float64{1.0, 1.2, 1.5, 1.7, 2.4, 2.6, 3.1, 3.3},
	}
}

func TestSequentialAnova_TermOrderDiffers(t *testing.T) {
	ds := covariateDataset()

	anova, _, err := SequentialAnova(ds, AnovaSpec(ds))
	require.NoError(t, err)
	ancova, _, err := SequentialAnova(ds, AncovaSpec(ds))
	require.NoError(t, err)

	// full factorial: main effect first, interaction, residuals
	assert.Equal(t, "Condition", anova.Rows[0].Term)
	assert.Equal(t, "Genotype", anova.Rows[1].Term)
	assert.Equal(t, "Condition:Genotype", anova.Rows[2].Term)
	assert.Equal(t, "Residuals", anova.Rows[3].Term)

	// additive with reversed priority: covariate absorbs variance first
	assert.Equal(t, "Genotype", ancova.Rows[0].Term)
	assert.Equal(t, "Condition", ancova.Rows[1].Term)
	assert.Equal(t, "Residuals", ancova.Rows[2].Term)
}

func TestSequentialAnova_SumOfSquaresDecomposes(t *testing.T) {
	ds := covariateDataset()
	table, fit, err := SequentialAnova(ds, AnovaSpec(ds))
	require.NoError(t, err)

	mean := 0.0
	for _, y := range ds.WDCt {
		mean += y
	}
	mean /= float64(len(ds.WDCt))
	total := 0.0
	for _, y := range ds.WDCt {
		total += (y - mean) * (y - mean)
	}

	sum := 0.0
	for _, row := range table.Rows {
		sum += row.SumSq
	}
	assert.InDelta(t, total, sum, 1e-9)
	assert.Equal(t, len(ds.WDCt)-len(fit.Coefficients), table.ResidualRow().DF)
}

func TestSequentialAnova_BlockAddsExactlyOneRow(t *testing.T) {
	table := &qpcr.Table{
		Columns: []string{"Condition", "Plate"},
		Rows: [][]string{
			{"Control", "p1"}, {"Control", "p2"}, {"Control", "p1"}, {"Control", "p2"},
			{"Treat", "p1"}, {"Treat", "p2"}, {"Treat", "p1"}, {"Treat", "p2"},
		},
	}
	base := &qpcr.Dataset{
		Table:      table,
		MainFactor: "Condition",
		Levels:     []string{"Control", "Treat"},
		WDCt:       []float64{1.1, 1.4, 1.0, 1.5, 2.2, 2.6, 2.1, 2.5},
	}

	unblocked, _, err := SequentialAnova(base, AnovaSpec(base))
	require.NoError(t, err)

	blocked := *base
	blocked.Block = "Plate"
	withBlock, _, err := SequentialAnova(&blocked, AnovaSpec(&blocked))
	require.NoError(t, err)

	assert.Len(t, withBlock.Rows, len(unblocked.Rows)+1)
	// the main factor's row label is unchanged
	assert.Equal(t, unblocked.Rows[0].Term, withBlock.Rows[0].Term)
	assert.NotNil(t, withBlock.TermRow("Plate"))
	assert.Nil(t, unblocked.TermRow("Plate"))
}
