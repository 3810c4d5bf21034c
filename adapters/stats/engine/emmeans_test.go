package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qpcrfold/domain/core"
	"qpcrfold/domain/qpcr"
)

func TestEMMeans_BalancedOneFactor(t *testing.T) {
	ds := twoGroupDataset()
	fit, err := Fit(ds, AnovaSpec(ds))
	require.NoError(t, err)

	means, err := EMMeans(fit, "Condition")
	require.NoError(t, err)
	require.Len(t, means, 2)

	// balanced one-factor design: marginal means are the group means
	assert.Equal(t, "Control", means[0].Level)
	assert.InDelta(t, 2, means[0].Estimate, 1e-9)
	assert.Equal(t, "Treat", means[1].Level)
	assert.InDelta(t, 5, means[1].Estimate, 1e-9)
}

func TestEMMeans_AveragesOverCovariate(t *testing.T) {
	ds := covariateDataset()
	fit, err := Fit(ds, AncovaSpec(ds))
	require.NoError(t, err)

	means, err := EMMeans(fit, "Condition")
	require.NoError(t, err)
	require.Len(t, means, 2)

	// balanced design: the marginal mean equals the plain level mean
	groups := ds.GroupWDCt()
	for _, m := range means {
		g := groups[m.Level]
		want := 0.0
		for _, y := range g {
			want += y
		}
		want /= float64(len(g))
		assert.InDelta(t, want, m.Estimate, 1e-9, "level %s", m.Level)
	}
}

func TestEMMeans_UnknownFactor(t *testing.T) {
	ds := twoGroupDataset()
	fit, err := Fit(ds, AnovaSpec(ds))
	require.NoError(t, err)

	_, err = EMMeans(fit, "Moonphase")
	assert.ErrorIs(t, err, core.ErrTermNotInModel)
}

func TestReferenceContrasts_TwoGroups(t *testing.T) {
	ds := twoGroupDataset()
	fit, err := Fit(ds, AnovaSpec(ds))
	require.NoError(t, err)

	contrasts, err := ReferenceContrasts(fit, "Condition", "Control")
	require.NoError(t, err)
	require.Len(t, contrasts, 1)

	c := contrasts[0]
	assert.Equal(t, "Treat", c.Level)
	// reference minus level: 2 - 5
	assert.InDelta(t, -3, c.Estimate, 1e-9)
	// se = sqrt(sigma2 * (1/3 + 1/3)) with sigma2 = 1
	assert.InDelta(t, math.Sqrt(2.0/3.0), c.SE, 1e-9)
	assert.Equal(t, 4, c.DF)
	assert.InDelta(t, -3/math.Sqrt(2.0/3.0), c.T, 1e-9)
	// same evidence as the ANOVA F test for a single contrast
	assert.InDelta(t, 0.0213, c.P, 1e-3)
}

func TestReferenceContrasts_FilterByIdentityNotPosition(t *testing.T) {
	// three levels; every contrast must involve the reference no matter how
	// the levels enumerate pairwise
	table := &qpcr.Table{
		Columns: []string{"Condition"},
		Rows: [][]string{
			{"Zeta"}, {"Zeta"}, {"Zeta"},
			{"Alpha"}, {"Alpha"}, {"Alpha"},
			{"Mid"}, {"Mid"}, {"Mid"},
		},
	}
	ds := &qpcr.Dataset{
		Table:      table,
		MainFactor: "Condition",
		Levels:     []string{"Zeta", "Alpha", "Mid"}, // caller order, Zeta = reference
		WDCt:       []float64{1, 1.1, 0.9, 2, 2.1, 1.9, 3, 3.1, 2.9},
	}
	fit, err := Fit(ds, AnovaSpec(ds))
	require.NoError(t, err)

	contrasts, err := ReferenceContrasts(fit, "Condition", "Zeta")
	require.NoError(t, err)
	require.Len(t, contrasts, 2)
	assert.Equal(t, "Alpha", contrasts[0].Level)
	assert.InDelta(t, -1, contrasts[0].Estimate, 1e-9)
	assert.Equal(t, "Mid", contrasts[1].Level)
	assert.InDelta(t, -2, contrasts[1].Estimate, 1e-9)
}

func TestReferenceContrasts_MissingReference(t *testing.T) {
	ds := twoGroupDataset()
	fit, err := Fit(ds, AnovaSpec(ds))
	require.NoError(t, err)

	_, err = ReferenceContrasts(fit, "Condition", "Ghost")
	assert.ErrorIs(t, err, core.ErrContrastUnresolved)
}
