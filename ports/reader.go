package ports

import (
	"qpcrfold/domain/qpcr"
)

// ObservationReader loads a raw observation table from an external source
// (CSV, XLSX, request body).
type ObservationReader interface {
	Read() (*qpcr.Table, error)
}
