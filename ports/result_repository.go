package ports

import (
	"context"

	"qpcrfold/domain/core"
	"qpcrfold/domain/qpcr"
)

// ResultRepository persists completed analysis results.
type ResultRepository interface {
	Save(ctx context.Context, result *qpcr.Result) error
	GetByID(ctx context.Context, id core.ID) (*qpcr.Result, error)
	List(ctx context.Context, limit, offset int) ([]*qpcr.Result, error)
	Delete(ctx context.Context, id core.ID) error
}
