package api

import (
	"qpcrfold/app"
	"qpcrfold/domain/qpcr"
)

// AnalyzeRequest is the POST /api/analyses body: the raw observation table
// plus the analysis configuration.
type AnalyzeRequest struct {
	Columns []string     `json:"columns"`
	Rows    [][]string   `json:"rows"`
	Config  *qpcr.Config `json:"config"`
	// Persist stores the result when a repository is configured.
	Persist bool `json:"persist,omitempty"`
}

// SweepTable is one named observation table inside a sweep request.
type SweepTable struct {
	Name    string     `json:"name"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// SweepRequest is the POST /api/sweeps body: several target-gene tables
// analyzed with one shared configuration.
type SweepRequest struct {
	Tables []SweepTable `json:"tables"`
	Config *qpcr.Config `json:"config"`
}

// SweepOutcomeResponse is one gene's result in a sweep response. Exactly one
// of Analysis and Error is set.
type SweepOutcomeResponse struct {
	Name     string        `json:"name"`
	Analysis *app.Analysis `json:"analysis,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// ErrorResponse is the uniform error body. Code carries the pipeline stage
// or validation code that produced the failure.
type ErrorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}
