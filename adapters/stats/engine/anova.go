package engine

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"qpcrfold/domain/model"
	"qpcrfold/domain/qpcr"
)

// SequentialAnova computes the Type I variance decomposition of the spec
// over the dataset. Terms are attributed sum of squares in spec order, each
// term absorbing what the terms before it left unexplained, so the ANOVA and
// ANCOVA specs decompose the same response differently.
func SequentialAnova(ds *qpcr.Dataset, spec model.Spec) (qpcr.AnovaTable, *qpcr.ModelFit, error) {
	full, err := Fit(ds, spec)
	if err != nil {
		return qpcr.AnovaTable{}, nil, err
	}

	// RSS of the intercept-only model and of each term prefix.
	rssPrev, pPrev, err := prefixRSS(ds, spec, 0)
	if err != nil {
		return qpcr.AnovaTable{}, nil, err
	}

	dfResid := full.DFResidual
	meanSqResid := full.RSS / float64(dfResid)

	rows := make([]qpcr.AnovaRow, 0, len(spec.Terms)+1)
	for i, term := range spec.Terms {
		rss, p, err := prefixRSS(ds, spec, i+1)
		if err != nil {
			return qpcr.AnovaTable{}, nil, err
		}
		df := p - pPrev
		ss := rssPrev - rss
		row := qpcr.AnovaRow{Term: term.Label(), DF: df, SumSq: ss}
		if df > 0 {
			row.MeanSq = ss / float64(df)
			row.F = row.MeanSq / meanSqResid
			fDist := distuv.F{D1: float64(df), D2: float64(dfResid)}
			row.P = fDist.Survival(row.F)
		} else {
			row.MeanSq = math.NaN()
			row.F = math.NaN()
			row.P = math.NaN()
		}
		rows = append(rows, row)
		rssPrev, pPrev = rss, p
	}
	rows = append(rows, qpcr.AnovaRow{
		Term:   "Residuals",
		DF:     dfResid,
		SumSq:  full.RSS,
		MeanSq: meanSqResid,
		F:      math.NaN(),
		P:      math.NaN(),
	})

	return qpcr.AnovaTable{Rows: rows}, full, nil
}

// prefixRSS fits the model restricted to the first k terms and returns its
// residual sum of squares and column count.
func prefixRSS(ds *qpcr.Dataset, spec model.Spec, k int) (float64, int, error) {
	sub := model.Spec{Response: spec.Response, Terms: spec.Terms[:k]}
	design, err := buildDesign(ds, sub)
	if err != nil {
		return 0, 0, err
	}
	_, p := design.X.Dims()
	fit, err := fitDesign(ds.WDCt, design, sub)
	if err != nil {
		return 0, 0, err
	}
	return fit.RSS, p, nil
}
