package engine

import (
	"strings"

	"gonum.org/v1/gonum/mat"

	"qpcrfold/domain/model"
	"qpcrfold/domain/qpcr"
)

// designMatrix is a treatment-coded design matrix plus the column metadata
// the contrast engine needs to rebuild prediction rows.
type designMatrix struct {
	X       *mat.Dense
	Columns []qpcr.DesignColumn
	Levels  map[string][]string
}

// buildDesign expands the model spec over the dataset into a treatment-coded
// design matrix. Each factor's first level is the reference and contributes
// no column; an interaction column is the product of its factors' dummies.
func buildDesign(ds *qpcr.Dataset, spec model.Spec) (*designMatrix, error) {
	levels := make(map[string][]string)
	values := make(map[string][]string)
	for _, f := range spec.Factors() {
		lv, err := ds.FactorLevels(f)
		if err != nil {
			return nil, err
		}
		col, err := ds.Table.Column(f)
		if err != nil {
			return nil, err
		}
		// Levels with no observations stay in the factor's domain but get
		// no dummy column; an all-zero column would only break the fit.
		observed := make(map[string]bool, len(col))
		for _, v := range col {
			observed[v] = true
		}
		kept := make([]string, 0, len(lv))
		for _, l := range lv {
			if observed[l] {
				kept = append(kept, l)
			}
		}
		levels[f] = kept
		values[f] = col
	}

	columns := []qpcr.DesignColumn{{Name: "(Intercept)", TermIndex: -1}}
	for ti, term := range spec.Terms {
		for _, dummies := range dummyCombos(term, levels) {
			names := make([]string, len(dummies))
			for i, d := range dummies {
				names[i] = d.Factor + d.Level
			}
			columns = append(columns, qpcr.DesignColumn{
				Name:      strings.Join(names, ":"),
				TermIndex: ti,
				Dummies:   dummies,
			})
		}
	}

	n := ds.Table.RowCount()
	X := mat.NewDense(n, len(columns), nil)
	for ri := 0; ri < n; ri++ {
		for ci, col := range columns {
			v := 1.0
			for _, d := range col.Dummies {
				if values[d.Factor][ri] != d.Level {
					v = 0
					break
				}
			}
			X.Set(ri, ci, v)
		}
	}
	return &designMatrix{X: X, Columns: columns, Levels: levels}, nil
}

// dummyCombos enumerates the non-reference level combinations of a term's
// factors, first factor varying fastest.
func dummyCombos(term model.Term, levels map[string][]string) [][]qpcr.Dummy {
	combos := [][]qpcr.Dummy{{}}
	for _, f := range term.Factors {
		nonRef := levels[f]
		if len(nonRef) > 0 {
			nonRef = nonRef[1:]
		}
		next := make([][]qpcr.Dummy, 0, len(combos)*len(nonRef))
		for _, lv := range nonRef {
			for _, c := range combos {
				combo := append(append([]qpcr.Dummy(nil), c...), qpcr.Dummy{Factor: f, Level: lv})
				next = append(next, combo)
			}
		}
		combos = next
	}
	return combos
}
