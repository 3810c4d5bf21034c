package app

import (
	"context"
	"fmt"

	"qpcrfold/adapters/chart"
	"qpcrfold/adapters/stats/engine"
	"qpcrfold/domain/core"
	"qpcrfold/domain/qpcr"
	"qpcrfold/internal/errors"
	"qpcrfold/ports"
)

// Analysis is the complete output of one pipeline invocation: the result
// object plus the chart description derived from its fold-change table.
type Analysis struct {
	Result *qpcr.Result   `json:"result"`
	Chart  chart.BarChart `json:"chart"`
}

// AnalysisService runs the fold-change pipeline: normalize, transform, fit
// both models, extract reference contrasts, assemble the result. Each call
// is an independent one-shot batch computation; the service holds no mutable
// state across invocations.
type AnalysisService struct {
	transformer ports.Transformer
}

// NewAnalysisService creates the pipeline service around an expression
// transformer.
func NewAnalysisService(transformer ports.Transformer) *AnalysisService {
	return &AnalysisService{transformer: transformer}
}

// Run executes the pipeline over the raw observation table. Any stage
// failure aborts the whole computation; the returned error names the stage
// and the violated precondition.
func (s *AnalysisService) Run(ctx context.Context, table *qpcr.Table, cfg *qpcr.Config) (*Analysis, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.WithCode(errors.CodeConfigInvalid, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	normalized, err := qpcr.Normalize(table, cfg)
	if err != nil {
		return nil, errors.Stage(errors.CodeNormalization, err)
	}
	if !hasRows(normalized, cfg.Reference()) {
		return nil, errors.Stage(errors.CodeNormalization,
			fmt.Errorf("%w: reference level %q has no observations",
				core.ErrNoMatchingRows, cfg.Reference()))
	}

	ds, err := s.transformer.Transform(normalized, cfg)
	if err != nil {
		return nil, errors.Stage(errors.CodeTransform, err)
	}

	anovaTable, anovaFit, err := engine.SequentialAnova(ds, engine.AnovaSpec(ds))
	if err != nil {
		return nil, errors.Stage(errors.CodeFitting, err)
	}
	ancovaTable, ancovaFit, err := engine.SequentialAnova(ds, engine.AncovaSpec(ds))
	if err != nil {
		return nil, errors.Stage(errors.CodeFitting, err)
	}

	selected := anovaFit
	if cfg.AnalysisType == qpcr.AnalysisANCOVA {
		selected = ancovaFit
	}
	ds.Resid = append([]float64(nil), selected.Residuals...)

	contrasts, err := engine.ReferenceContrasts(selected, ds.MainFactor, ds.Reference())
	if err != nil {
		return nil, errors.Stage(errors.CodeContrast, err)
	}
	raw := make([]float64, len(contrasts))
	for i := range contrasts {
		raw[i] = contrasts[i].P
	}
	adjusted, err := engine.AdjustPValues(raw, cfg.PAdjust)
	if err != nil {
		return nil, errors.Stage(errors.CodeContrast, err)
	}
	for i := range contrasts {
		contrasts[i].PAdj = adjusted[i]
	}

	fc := engine.BuildFoldChangeTable(ds, contrasts)

	result := &qpcr.Result{
		ID:          core.NewID(),
		CreatedAt:   core.Now(),
		Config:      *cfg,
		Data:        ds,
		AnovaFit:    anovaFit,
		AncovaFit:   ancovaFit,
		AnovaTable:  anovaTable,
		AncovaTable: ancovaTable,
		Contrasts:   contrasts,
		FoldChange:  fc,
	}
	return &Analysis{
		Result: result,
		Chart:  chart.Build(fc, cfg.Style),
	}, nil
}

func hasRows(n *qpcr.Normalized, level string) bool {
	for _, row := range n.Table.Rows {
		if row[0] == level {
			return true
		}
	}
	return false
}
