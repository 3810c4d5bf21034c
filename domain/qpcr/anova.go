package qpcr

import (
	"encoding/json"
	"math"
)

// AnovaRow is one term of a sequential (Type I) variance decomposition.
// The residual row carries NaN for F and P; those encode as JSON null.
type AnovaRow struct {
	Term   string  `json:"term"`
	DF     int     `json:"df"`
	SumSq  float64 `json:"sum_sq"`
	MeanSq float64 `json:"mean_sq"`
	F      float64 `json:"f"`
	P      float64 `json:"p"`
}

type anovaRowJSON struct {
	Term   string   `json:"term"`
	DF     int      `json:"df"`
	SumSq  float64  `json:"sum_sq"`
	MeanSq *float64 `json:"mean_sq"`
	F      *float64 `json:"f"`
	P      *float64 `json:"p"`
}

func nullableFloat(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

func floatOrNaN(p *float64) float64 {
	if p == nil {
		return math.NaN()
	}
	return *p
}

func (r AnovaRow) MarshalJSON() ([]byte, error) {
	return json.Marshal(anovaRowJSON{
		Term:   r.Term,
		DF:     r.DF,
		SumSq:  r.SumSq,
		MeanSq: nullableFloat(r.MeanSq),
		F:      nullableFloat(r.F),
		P:      nullableFloat(r.P),
	})
}

func (r *AnovaRow) UnmarshalJSON(data []byte) error {
	var raw anovaRowJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Term = raw.Term
	r.DF = raw.DF
	r.SumSq = raw.SumSq
	r.MeanSq = floatOrNaN(raw.MeanSq)
	r.F = floatOrNaN(raw.F)
	r.P = floatOrNaN(raw.P)
	return nil
}

// AnovaTable is a read-only term-by-term variance decomposition of a fitted
// model, residual row last.
type AnovaTable struct {
	Rows []AnovaRow `json:"rows"`
}

// TermRow returns the row for the named term, or nil.
func (t *AnovaTable) TermRow(term string) *AnovaRow {
	for i := range t.Rows {
		if t.Rows[i].Term == term {
			return &t.Rows[i]
		}
	}
	return nil
}

// ResidualRow returns the residual row, or nil for an empty table.
func (t *AnovaTable) ResidualRow() *AnovaRow {
	if len(t.Rows) == 0 {
		return nil
	}
	return &t.Rows[len(t.Rows)-1]
}
