package errors

import (
	stderrors "errors"
	"fmt"
)

// ProcessingError is a structured error carrying a machine-readable code and
// a human-readable message. Every user-visible failure in the pipeline is
// reported through this type.
type ProcessingError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *ProcessingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches two processing errors by code, so sentinel comparisons with
// errors.Is work across instances created by the helper constructors.
func (e *ProcessingError) Is(target error) bool {
	var pe *ProcessingError
	if !stderrors.As(target, &pe) {
		return false
	}
	return e.Code == pe.Code
}

// New creates a new ProcessingError with the given code and message
func New(code, message string) *ProcessingError {
	return &ProcessingError{
		Code:    code,
		Message: message,
	}
}

// NewWithDetails creates a new ProcessingError with additional details
func NewWithDetails(code, message string, details interface{}) *ProcessingError {
	return &ProcessingError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// Predefined error types for common scenarios.
//
// Structural and configuration errors are fatal for the whole batch and are
// raised before any row is processed. Row-level numeric gaps are never
// errors; they surface as absent markup cells.
var (
	ErrEmptyGrid          = New("EMPTY_GRID", "Sheet contains no data")
	ErrHeadersNotFound    = New("HEADERS_NOT_FOUND", "Could not locate a header row")
	ErrInvalidConfig      = New("INVALID_CONFIG", "Invalid configuration values")
	ErrColumnOutOfRange   = New("COLUMN_OUT_OF_RANGE", "Column index outside header bounds")
	ErrInvalidCostColumn  = New("INVALID_COST_COLUMN", "Cost column has too few numeric values")
	ErrCostColumnNotFound = New("COST_COLUMN_NOT_FOUND", "No strategy could identify a cost column")
	ErrRowLimitExceeded   = New("ROW_LIMIT_EXCEEDED", "Sheet exceeds the row limit")
	ErrComputationFailed  = New("COMPUTATION_FAILED", "Markup computation failed")
)

// Helper functions for specific error types

// HeadersNotFoundError reports a failed header-row search for a named sheet.
func HeadersNotFoundError(sheet string) *ProcessingError {
	return NewWithDetails("HEADERS_NOT_FOUND",
		fmt.Sprintf("Could not locate a header row in sheet %q", sheet), sheet)
}

// InvalidConfigError reports an invalid configuration field.
func InvalidConfigError(field, message string) *ProcessingError {
	return NewWithDetails("INVALID_CONFIG",
		fmt.Sprintf("Invalid configuration: %s %s", field, message),
		map[string]string{"field": field, "message": message})
}

// ColumnOutOfRangeError reports a cost column index outside the header row.
func ColumnOutOfRangeError(index, columns int) *ProcessingError {
	return NewWithDetails("COLUMN_OUT_OF_RANGE",
		fmt.Sprintf("Column index %d outside header bounds (0-%d)", index, columns-1),
		map[string]int{"index": index, "columns": columns})
}

// InvalidCostColumnError reports a detected column whose values are almost
// entirely non-numeric.
func InvalidCostColumnError(index int, validRatio float64) *ProcessingError {
	return NewWithDetails("INVALID_COST_COLUMN",
		fmt.Sprintf("Column %d has too few valid cost values (%.1f%%)", index, validRatio*100),
		map[string]interface{}{"index": index, "valid_ratio": validRatio})
}

// CostColumnNotFoundError reports that every detection strategy came up empty.
func CostColumnNotFoundError(sheet string) *ProcessingError {
	return NewWithDetails("COST_COLUMN_NOT_FOUND",
		fmt.Sprintf("No strategy could identify a cost column in sheet %q", sheet), sheet)
}

// RowLimitError reports a sheet larger than the configured bound.
func RowLimitError(rows, limit int) *ProcessingError {
	return NewWithDetails("ROW_LIMIT_EXCEEDED",
		fmt.Sprintf("Sheet has %d rows, limit is %d", rows, limit),
		map[string]int{"rows": rows, "limit": limit})
}

// ComputationError wraps an unexpected arithmetic failure.
func ComputationError(err error) *ProcessingError {
	return NewWithDetails("COMPUTATION_FAILED", "Markup computation failed", err.Error())
}

// Code extracts the machine-readable code from an error chain, or "" when
// the error is not a ProcessingError.
func Code(err error) string {
	var pe *ProcessingError
	if stderrors.As(err, &pe) {
		return pe.Code
	}
	return ""
}
