package qpcr

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_Thresholds(t *testing.T) {
	cases := []struct {
		p    float64
		want string
	}{
		{0.0005, SignificanceHigh},
		{0.001, SignificanceMedium}, // boundary: strictly less than
		{0.005, SignificanceMedium},
		{0.01, SignificanceLow},
		{0.03, SignificanceLow},
		{0.05, SignificanceNone},
		{0.5, SignificanceNone},
		{1, SignificanceNone},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.p), "p=%v", tc.p)
	}
}

func TestFoldChangeFromEstimate(t *testing.T) {
	// positive estimate: more expression than reference
	assert.InDelta(t, 100, FoldChangeFromEstimate(2), 1e-9)
	// zero estimate: no change
	assert.InDelta(t, 1, FoldChangeFromEstimate(0), 1e-12)
	// negative estimate: below reference but still positive
	fc := FoldChangeFromEstimate(-1.5)
	assert.Greater(t, fc, 0.0)
	assert.InDelta(t, math.Pow(10, -1.5), fc, 1e-12)
	// log10 recovers the estimate
	assert.InDelta(t, 0.73, math.Log10(FoldChangeFromEstimate(0.73)), 1e-12)
}

func TestReferenceRow(t *testing.T) {
	row := ReferenceRow("Control", 0.42)
	assert.Equal(t, "Control", row.Level)
	assert.Equal(t, 1.0, row.FoldChange)
	assert.Equal(t, 1.0, row.PValue)
	assert.Equal(t, 0.42, row.StdDev)
	assert.Equal(t, "", row.Significance)
}
