// Package errors provides standardized error handling for the quote engine.
package errors

import (
	goerrors "errors"
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Validation errors: malformed or out-of-range caller input. Never retryable,
// never defaulted away.
const (
	ErrCodeInvalidInput         ErrorCode = "INVALID_INPUT"
	ErrCodeInvalidPanelCount    ErrorCode = "INVALID_PANEL_COUNT"
	ErrCodeNegativePrice        ErrorCode = "NEGATIVE_PRICE"
	ErrCodeMissingInverter      ErrorCode = "MISSING_INVERTER"
	ErrCodeMissingPanelProduct  ErrorCode = "MISSING_PANEL_PRODUCT"
	ErrCodeUnknownProduct       ErrorCode = "UNKNOWN_PRODUCT"
	ErrCodeRoofCapacityExceeded ErrorCode = "ROOF_CAPACITY_EXCEEDED"
)

// Computation invariant errors: an assembled result failed its own consistency
// check. Treated as a programming bug.
const (
	ErrCodeSubtotalMismatch   ErrorCode = "SUBTOTAL_MISMATCH"
	ErrCodeInvestmentMismatch ErrorCode = "INVESTMENT_MISMATCH"
	ErrCodeEnergyImbalance    ErrorCode = "ENERGY_SPLIT_IMBALANCE"
	ErrCodeNumericAnomaly     ErrorCode = "NUMERIC_ANOMALY"
)

// Upstream errors: a collaborator the engine depends on failed. Retryable.
const (
	ErrCodeCatalogUnavailable      ErrorCode = "CATALOG_UNAVAILABLE"
	ErrCodeRoofAnalysisUnavailable ErrorCode = "ROOF_ANALYSIS_UNAVAILABLE"
	ErrCodeQuoteStoreFailed        ErrorCode = "QUOTE_STORE_FAILED"
	ErrCodeQuoteNotFound           ErrorCode = "QUOTE_NOT_FOUND"
	ErrCodeNotificationSendFailed  ErrorCode = "NOTIFICATION_SEND_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewValidationError creates a non-retryable input validation error.
func NewValidationError(code ErrorCode, message, details string) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidPanelCountError rejects a panel count outside the allowed range.
func NewInvalidPanelCountError(count, min, max int) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidPanelCount,
		Message:   "Panel count out of allowed range",
		Details:   fmt.Sprintf("count: %d, allowed: %d-%d", count, min, max),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNegativePriceError rejects a negative catalog or input price.
func NewNegativePriceError(field string, cents int64) *StandardError {
	return &StandardError{
		Code:      ErrCodeNegativePrice,
		Message:   "Price must be non-negative",
		Details:   fmt.Sprintf("field: %s, cents: %d", field, cents),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMissingInverterError rejects a selection without an inverter.
func NewMissingInverterError() *StandardError {
	return &StandardError{
		Code:      ErrCodeMissingInverter,
		Message:   "Equipment selection has no inverter",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownProductError rejects a product id the catalog does not know.
func NewUnknownProductError(productID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownProduct,
		Message:   "Product not found in catalog",
		Details:   fmt.Sprintf("productId: %s", productID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRoofCapacityExceededError rejects a panel count above the roof limit.
func NewRoofCapacityExceededError(count, maxPanels int) *StandardError {
	return &StandardError{
		Code:      ErrCodeRoofCapacityExceeded,
		Message:   "Panel count exceeds roof capacity",
		Details:   fmt.Sprintf("count: %d, roof max: %d", count, maxPanels),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvariantError creates a non-retryable internal consistency error.
func NewInvariantError(code ErrorCode, message, details string) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNumericAnomalyError flags a NaN, Inf, or negative cost in a result.
func NewNumericAnomalyError(field string, value interface{}) *StandardError {
	return &StandardError{
		Code:      ErrCodeNumericAnomaly,
		Message:   "Computed value failed numeric sanity check",
		Details:   fmt.Sprintf("field: %s, value: %v", field, value),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogUnavailableError creates a retryable catalog lookup error.
func NewCatalogUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogUnavailable,
		Message:   "Product catalog lookup failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewRoofAnalysisUnavailableError creates a retryable roof analysis error.
func NewRoofAnalysisUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRoofAnalysisUnavailable,
		Message:   "Roof analysis service unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQuoteStoreFailedError creates a retryable persistence error.
func NewQuoteStoreFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQuoteStoreFailed,
		Message:   "Quote persistence failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQuoteNotFoundError creates a non-retryable missing quote error.
func NewQuoteNotFoundError(reference string) *StandardError {
	return &StandardError{
		Code:      ErrCodeQuoteNotFound,
		Message:   "Quote not found",
		Details:   fmt.Sprintf("reference: %s", reference),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable notification error.
func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("channel: %s, error: %s", channel, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Error Classification
// ==========================

// Kind groups error codes into the three categories callers branch on.
type Kind string

const (
	KindValidation Kind = "VALIDATION"
	KindInvariant  Kind = "INVARIANT"
	KindUpstream   Kind = "UPSTREAM"
	KindOther      Kind = "OTHER"
)

// KindOf returns the category of the error code.
func KindOf(code ErrorCode) Kind {
	switch code {
	case ErrCodeInvalidInput, ErrCodeInvalidPanelCount, ErrCodeNegativePrice,
		ErrCodeMissingInverter, ErrCodeMissingPanelProduct, ErrCodeUnknownProduct,
		ErrCodeRoofCapacityExceeded:
		return KindValidation
	case ErrCodeSubtotalMismatch, ErrCodeInvestmentMismatch,
		ErrCodeEnergyImbalance, ErrCodeNumericAnomaly:
		return KindInvariant
	case ErrCodeCatalogUnavailable, ErrCodeRoofAnalysisUnavailable,
		ErrCodeQuoteStoreFailed, ErrCodeQuoteNotFound, ErrCodeNotificationSendFailed:
		return KindUpstream
	default:
		return KindOther
	}
}

// AsStandard unwraps err to a *StandardError if possible.
func AsStandard(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if goerrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// IsValidation reports whether err is a caller input validation error.
func IsValidation(err error) bool {
	if stdErr, ok := AsStandard(err); ok {
		return KindOf(stdErr.Code) == KindValidation
	}
	return false
}

// IsInvariant reports whether err is an internal consistency failure.
func IsInvariant(err error) bool {
	if stdErr, ok := AsStandard(err); ok {
		return KindOf(stdErr.Code) == KindInvariant
	}
	return false
}

// IsUpstream reports whether err came from a collaborator the engine depends on.
func IsUpstream(err error) bool {
	if stdErr, ok := AsStandard(err); ok {
		return KindOf(stdErr.Code) == KindUpstream
	}
	return false
}

// IsRetryable reports whether the operation that produced err may be retried.
func IsRetryable(err error) bool {
	if stdErr, ok := AsStandard(err); ok {
		return stdErr.Retryable
	}
	return false
}
