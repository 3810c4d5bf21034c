package qpcr

import (
	"fmt"
	"sort"

	"qpcrfold/domain/core"
)

// Normalized is the output of input normalization: the observation table with
// the main factor moved to column 1 and rows ordered by the caller's level
// ordering, plus the main factor's full level domain.
type Normalized struct {
	Table *Table
	// MainFactor is the (possibly renamed) first column of Table.
	MainFactor string
	// Levels is the categorical domain of the main factor: exactly the
	// caller's ordering, including levels that match no rows.
	Levels []string
	// Dropped counts rows whose main-factor value was absent from the
	// ordering and therefore excluded from the modeled dataset.
	Dropped int
}

// Reference returns the reference level (first in the ordering).
func (n *Normalized) Reference() string {
	return n.Levels[0]
}

// Normalize moves the main factor column to position 1, stably sorts rows by
// their level's position in cfg.LevelOrder, and drops rows whose level is not
// in the ordering. Levels in the ordering that match no rows are kept in the
// level domain so downstream formula building sees the full factor.
func Normalize(t *Table, cfg *Config) (*Normalized, error) {
	if t == nil || t.RowCount() == 0 {
		return nil, core.ErrEmptyTable
	}
	mainIdx := cfg.MainFactorColumn - 1
	if mainIdx < 0 || mainIdx >= t.ColumnCount() {
		return nil, core.NewShapeError(core.ErrColumnOutOfRange,
			fmt.Sprintf("column %d of %d", cfg.MainFactorColumn, t.ColumnCount()))
	}

	position := make(map[string]int, len(cfg.LevelOrder))
	for i, level := range cfg.LevelOrder {
		if _, dup := position[level]; !dup {
			position[level] = i
		}
	}

	// Stable sort by level position; unmatched levels sort last and are
	// dropped afterwards.
	unmatched := len(cfg.LevelOrder)
	indices := make([]int, t.RowCount())
	for i := range indices {
		indices[i] = i
	}
	rank := func(row int) int {
		if p, ok := position[t.Rows[row][mainIdx]]; ok {
			return p
		}
		return unmatched
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return rank(indices[a]) < rank(indices[b])
	})

	columns := make([]string, 0, t.ColumnCount())
	columns = append(columns, t.Columns[mainIdx])
	for i, c := range t.Columns {
		if i != mainIdx {
			columns = append(columns, c)
		}
	}

	rows := make([][]string, 0, t.RowCount())
	dropped := 0
	for _, ri := range indices {
		src := t.Rows[ri]
		if rank(ri) == unmatched {
			dropped++
			continue
		}
		row := make([]string, 0, len(src))
		row = append(row, src[mainIdx])
		for i, cell := range src {
			if i != mainIdx {
				row = append(row, cell)
			}
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, core.NewShapeError(core.ErrNoMatchingRows,
			fmt.Sprintf("no row matches any of the %d ordered levels", len(cfg.LevelOrder)))
	}

	return &Normalized{
		Table:      &Table{Columns: columns, Rows: rows},
		MainFactor: columns[0],
		Levels:     append([]string(nil), cfg.LevelOrder...),
		Dropped:    dropped,
	}, nil
}
