package engine

import (
	"math"

	"github.com/montanaflynn/stats"

	"qpcrfold/domain/qpcr"
)

// BuildFoldChangeTable assembles the final fold-change table from the
// reference contrasts and the per-level wDCt groups. The reference row comes
// first with FC and p pinned to 1 and a blank significance code; remaining
// rows follow the caller's level ordering. Significance is classified from
// the adjusted p-value carried by each contrast.
func BuildFoldChangeTable(ds *qpcr.Dataset, contrasts []qpcr.Contrast) qpcr.FoldChangeTable {
	groups := ds.GroupWDCt()
	reference := ds.Reference()
	refVar := sampleVariance(groups[reference])

	byLevel := make(map[string]*qpcr.Contrast, len(contrasts))
	for i := range contrasts {
		byLevel[contrasts[i].Level] = &contrasts[i]
	}

	rows := make([]qpcr.FoldChangeRow, 0, len(ds.Levels))
	rows = append(rows, qpcr.ReferenceRow(reference, math.Sqrt(refVar)))
	for _, level := range ds.Levels[1:] {
		c, ok := byLevel[level]
		if !ok {
			// Unobserved level: present in the factor domain but
			// contributed no rows, so there is nothing to contrast.
			continue
		}
		pooled := math.Sqrt((refVar + sampleVariance(groups[level])) / 2)
		p := c.PAdj
		rows = append(rows, qpcr.FoldChangeRow{
			Level:        level,
			FoldChange:   qpcr.FoldChangeFromEstimate(c.Estimate),
			StdDev:       math.Pow(10, -pooled),
			PValue:       p,
			Significance: qpcr.Classify(p),
		})
	}
	return qpcr.FoldChangeTable{Reference: reference, Rows: rows}
}

// sampleVariance returns the sample variance of the group, 0 when fewer than
// two observations exist.
func sampleVariance(group []float64) float64 {
	if len(group) < 2 {
		return 0
	}
	v, err := stats.SampleVariance(group)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
