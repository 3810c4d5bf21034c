package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qpcrfold/domain/qpcr"
)

func TestBuildFoldChangeTable(t *testing.T) {
	ds := twoGroupDataset()
	contrasts := []qpcr.Contrast{
		{Level: "Treat", Estimate: -3, P: 0.0213, PAdj: 0.0213},
	}

	fc := BuildFoldChangeTable(ds, contrasts)
	require.Len(t, fc.Rows, 2)
	assert.Equal(t, "Control", fc.Reference)

	ref := fc.Rows[0]
	assert.Equal(t, "Control", ref.Level)
	assert.Equal(t, 1.0, ref.FoldChange)
	assert.Equal(t, 1.0, ref.PValue)
	assert.Equal(t, "", ref.Significance)
	// reference sd is the raw group standard deviation: sd({1,2,3}) = 1
	assert.InDelta(t, 1, ref.StdDev, 1e-9)

	treat := fc.Rows[1]
	assert.Equal(t, "Treat", treat.Level)
	assert.InDelta(t, math.Pow(10, -3), treat.FoldChange, 1e-12)
	// pooled sd: sqrt((1 + 1)/2) = 1, displayed as 10^-1
	assert.InDelta(t, 0.1, treat.StdDev, 1e-9)
	assert.Equal(t, 0.0213, treat.PValue)
	assert.Equal(t, qpcr.SignificanceLow, treat.Significance)
}

func TestBuildFoldChangeTable_SignificanceFromAdjustedP(t *testing.T) {
	ds := twoGroupDataset()
	contrasts := []qpcr.Contrast{
		{Level: "Treat", Estimate: 1, P: 0.0004, PAdj: 0.02},
	}
	fc := BuildFoldChangeTable(ds, contrasts)
	require.Len(t, fc.Rows, 2)
	assert.Equal(t, 0.02, fc.Rows[1].PValue)
	assert.Equal(t, qpcr.SignificanceLow, fc.Rows[1].Significance)
}

func TestBuildFoldChangeTable_SkipsUnobservedLevels(t *testing.T) {
	ds := twoGroupDataset()
	ds.Levels = []string{"Control", "Treat", "Ghost"}
	contrasts := []qpcr.Contrast{
		{Level: "Treat", Estimate: 0.5, P: 0.2, PAdj: 0.2},
	}
	fc := BuildFoldChangeTable(ds, contrasts)
	require.Len(t, fc.Rows, 2)
	assert.Nil(t, fc.Row("Ghost"))
}

func TestBuildFoldChangeTable_LogRecoversEstimate(t *testing.T) {
	ds := twoGroupDataset()
	contrasts := []qpcr.Contrast{
		{Level: "Treat", Estimate: 0.7312, P: 0.04, PAdj: 0.04},
	}
	fc := BuildFoldChangeTable(ds, contrasts)
	assert.InDelta(t, 0.7312, math.Log10(fc.Rows[1].FoldChange), 1e-12)
}
