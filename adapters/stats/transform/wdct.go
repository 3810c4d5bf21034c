// Package transform derives the weighted delta-Ct expression response from
// raw efficiency and cycle-threshold readings.
package transform

import (
	"fmt"
	"math"
	"strconv"

	"qpcrfold/domain/core"
	"qpcrfold/domain/qpcr"
)

// Weighter computes wDCt per observation row. With one reference gene the
// table's last four columns are E, Ct, Eref, Ctref; with two reference genes
// the last six are E, Ct, Eref, Ctref, Eref2, Ctref2. Every column before
// those, except the main factor and the block, is a covariate factor.
type Weighter struct{}

// NewWeighter creates the default wDCt transformer.
func NewWeighter() *Weighter {
	return &Weighter{}
}

// numRawColumns returns the count of trailing qPCR columns for the config.
func numRawColumns(cfg *qpcr.Config) int {
	return 2 * (1 + cfg.NumRefGenes)
}

// Transform computes wDCt for every row of the normalized table:
//
//	wDCt = log10(E)*Ct - mean_i(log10(Eref_i)*Ctref_i)
//
// Lower wDCt means higher relative expression. The derivation is a pure
// function of the row, so identical inputs always yield identical outputs.
func (w *Weighter) Transform(n *qpcr.Normalized, cfg *qpcr.Config) (*qpcr.Dataset, error) {
	t := n.Table
	raw := numRawColumns(cfg)
	// main factor + raw qPCR columns at minimum
	if t.ColumnCount() < 1+raw {
		return nil, core.NewShapeError(core.ErrEmptyTable,
			fmt.Sprintf("need at least %d columns for %d reference gene(s), got %d",
				1+raw, cfg.NumRefGenes, t.ColumnCount()))
	}

	rawStart := t.ColumnCount() - raw
	factors := make([]string, 0, rawStart)
	for i := 1; i < rawStart; i++ {
		if t.Columns[i] == cfg.Block {
			continue
		}
		factors = append(factors, t.Columns[i])
	}
	if cfg.Block != "" {
		blockIdx := t.ColumnIndex(cfg.Block)
		if blockIdx < 0 || blockIdx >= rawStart {
			return nil, core.NewShapeError(core.ErrColumnNotFound,
				fmt.Sprintf("block column %q", cfg.Block))
		}
	}

	wdct := make([]float64, t.RowCount())
	for ri, row := range t.Rows {
		target, err := weightedCt(row, t.Columns, rawStart)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", ri+1, err)
		}
		refSum := 0.0
		for g := 0; g < cfg.NumRefGenes; g++ {
			ref, err := weightedCt(row, t.Columns, rawStart+2*(g+1))
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", ri+1, err)
			}
			refSum += ref
		}
		wdct[ri] = target - refSum/float64(cfg.NumRefGenes)
	}

	return &qpcr.Dataset{
		Table:      t,
		MainFactor: n.MainFactor,
		Levels:     n.Levels,
		Factors:    factors,
		Block:      cfg.Block,
		WDCt:       wdct,
	}, nil
}

// weightedCt parses the (E, Ct) pair starting at column eIdx and returns
// log10(E)*Ct.
func weightedCt(row, columns []string, eIdx int) (float64, error) {
	e, err := parseCell(row, columns, eIdx)
	if err != nil {
		return 0, err
	}
	ct, err := parseCell(row, columns, eIdx+1)
	if err != nil {
		return 0, err
	}
	return math.Log10(e) * ct, nil
}

func parseCell(row, columns []string, idx int) (float64, error) {
	v, err := strconv.ParseFloat(row[idx], 64)
	if err != nil {
		return 0, core.NewShapeError(core.ErrNonNumericValue,
			fmt.Sprintf("column %q value %q", columns[idx], row[idx]))
	}
	return v, nil
}
