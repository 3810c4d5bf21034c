package app

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"qpcrfold/domain/qpcr"
	"qpcrfold/internal/errors"
	"qpcrfold/ports"
)

// NamedTable pairs a target-gene name with its observation table.
type NamedTable struct {
	Name  string
	Table *qpcr.Table
}

// SweepOutcome is one gene's analysis, or the error that aborted it. Other
// genes in the sweep are unaffected by a single failure.
type SweepOutcome struct {
	Name     string    `json:"name"`
	Analysis *Analysis `json:"analysis,omitempty"`
	Err      error     `json:"-"`
}

// SweepService analyzes many target genes with the same configuration.
// Each gene's pipeline stays single-threaded and independent; the sweep only
// bounds how many run at once.
type SweepService struct {
	analysis *AnalysisService
	sem      *semaphore.Weighted
}

// NewSweepService creates a sweep runner allowing maxParallel concurrent
// analyses.
func NewSweepService(transformer ports.Transformer, maxParallel int64) *SweepService {
	if maxParallel < 1 {
		maxParallel = 1
	}
	return &SweepService{
		analysis: NewAnalysisService(transformer),
		sem:      semaphore.NewWeighted(maxParallel),
	}
}

// Run analyzes every table with the shared configuration. Outcomes keep the
// input order. A cancelled context stops admission of new gene analyses.
func (s *SweepService) Run(ctx context.Context, tables []NamedTable, cfg *qpcr.Config) []SweepOutcome {
	outcomes := make([]SweepOutcome, len(tables))
	var wg sync.WaitGroup
	for i, nt := range tables {
		if err := s.sem.Acquire(ctx, 1); err != nil {
			outcomes[i] = SweepOutcome{Name: nt.Name, Err: err}
			continue
		}
		wg.Add(1)
		go func(i int, nt NamedTable) {
			defer wg.Done()
			defer s.sem.Release(1)
			analysis, err := s.analysis.Run(ctx, nt.Table, cfg)
			if err != nil {
				outcomes[i] = SweepOutcome{
					Name: nt.Name,
					Err:  errors.Wrapf(err, "analysis of %s failed", nt.Name),
				}
				return
			}
			outcomes[i] = SweepOutcome{Name: nt.Name, Analysis: analysis}
		}(i, nt)
	}
	wg.Wait()
	return outcomes
}
