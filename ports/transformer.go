package ports

import (
	"qpcrfold/domain/qpcr"
)

// Transformer converts a normalized observation table into a Dataset with
// the derived wDCt response. It must be deterministic per row and report
// which remaining columns are covariate factors.
type Transformer interface {
	Transform(n *qpcr.Normalized, cfg *qpcr.Config) (*qpcr.Dataset, error)
}
