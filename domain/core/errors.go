package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input shape errors
	ErrColumnOutOfRange = errors.New("main factor column index out of range")
	ErrColumnNotFound   = errors.New("column not found")
	ErrNoMatchingRows   = errors.New("level ordering matches no rows")
	ErrEmptyTable       = errors.New("observation table is empty")
	ErrRaggedRow        = errors.New("row length does not match header")

	// Configuration errors
	ErrInvalidRefGenes     = errors.New("numberOfRefGenes must be 1 or 2")
	ErrInvalidAnalysisType = errors.New("analysis type must be anova or ancova")
	ErrInvalidAdjustMethod = errors.New("unknown p-value adjustment method")
	ErrEmptyLevelOrder     = errors.New("main factor level order is empty")

	// Fitting errors
	ErrRankDeficient      = errors.New("design matrix is rank deficient")
	ErrNoResidualDF       = errors.New("model has no residual degrees of freedom")
	ErrTermNotInModel     = errors.New("term not present in fitted model")
	ErrNonNumericValue    = errors.New("non-numeric value in qPCR column")
	ErrInsufficientData   = errors.New("insufficient data for analysis")
	ErrContrastUnresolved = errors.New("reference contrast could not be resolved")

	// Persistence errors
	ErrNotFound       = errors.New("resource not found")
	ErrResultNotFound = fmt.Errorf("%w: analysis result", ErrNotFound)
)

// NewShapeError describes an input-shape violation detected during normalization
func NewShapeError(reason error, detail string) error {
	return fmt.Errorf("%w: %s", reason, detail)
}

// NewFitError describes a fatal model-fitting failure
func NewFitError(reason error, term string) error {
	return fmt.Errorf("%w: term %s", reason, term)
}

// IsShapeError checks if an error is an input-shape error
func IsShapeError(err error) bool {
	return errors.Is(err, ErrColumnOutOfRange) ||
		errors.Is(err, ErrColumnNotFound) ||
		errors.Is(err, ErrNoMatchingRows) ||
		errors.Is(err, ErrEmptyTable) ||
		errors.Is(err, ErrRaggedRow)
}

// IsFitError checks if an error is a model-fitting failure
func IsFitError(err error) bool {
	return errors.Is(err, ErrRankDeficient) ||
		errors.Is(err, ErrNoResidualDF) ||
		errors.Is(err, ErrInsufficientData)
}

// IsConfigError checks if an error is a configuration validation failure
func IsConfigError(err error) bool {
	return errors.Is(err, ErrInvalidRefGenes) ||
		errors.Is(err, ErrInvalidAnalysisType) ||
		errors.Is(err, ErrInvalidAdjustMethod) ||
		errors.Is(err, ErrEmptyLevelOrder)
}
