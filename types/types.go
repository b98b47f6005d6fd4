package types

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Quote is the itemised cost of bonding a run of dots on a curve
type Quote struct {
	// First supply position priced.
	Start decimal.Decimal `json:"start"`

	// Number of dots priced, starting at Start.
	Count decimal.Decimal `json:"count"`

	// Price of each dot, Prices[i] is the price at Start+i.
	Prices []decimal.Decimal `json:"prices,omitempty"`

	// Sum of Prices, in the base unit (wei).
	Total decimal.Decimal `json:"total"`
}

// ParseRequest carries an algebraic curve expression to be turned into a
// single-piece raw encoding.
type ParseRequest struct {
	// Inclusive upper bound of the piece's domain. Must be a positive whole number.
	DomainUpperBound decimal.Decimal `json:"domainUpperBound"`

	// Polynomial terms joined by "+", e.g. "4x^0+2gweix^1+3x^2".
	Expression string `json:"expression" validate:"required"`
}

// EngineConfig contains global configuration for the curve engine
type EngineConfig struct {
	LogLevel         string    `json:"logLevel,omitempty" validate:"omitempty,oneof=debug info warn error"`
	EnableMetrics    bool      `json:"enableMetrics,omitempty"`
	MetricsNamespace string    `json:"metricsNamespace,omitempty" validate:"omitempty,alphanum"`
	Extra            ExtraData `json:"extra,omitempty"`
}

// ExtraData contains additional caller-specific data
type ExtraData map[string]interface{}

// CurveError is returned by every failing curve operation
type CurveError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (e CurveError) Error() string {
	return e.Message
}

// Common error codes
const (
	// Codec / validator
	ErrInvalidPieceLength               = "INVALID_PIECE_LENGTH"
	ErrPieceOutOfBounds                 = "PIECE_OUT_OF_BOUNDS"
	ErrOverlappingOrNonIncreasingDomain = "OVERLAPPING_OR_NON_INCREASING_DOMAIN"

	// Pricing
	ErrUninitializedCurve     = "UNINITIALIZED_CURVE"
	ErrNonWholeSupplyPosition = "NON_WHOLE_SUPPLY_POSITION"
	ErrOutOfDomain            = "OUT_OF_DOMAIN"

	// Textual converter
	ErrInvalidDomainBound = "INVALID_DOMAIN_BOUND"
	ErrMissingExponent    = "MISSING_EXPONENT"
	ErrNonIntegerExponent = "NON_INTEGER_EXPONENT"
	ErrExponentTooLarge   = "EXPONENT_TOO_LARGE"
	ErrInvalidExpression  = "INVALID_EXPRESSION"

	// Wire encoding
	ErrNonIntegerEncoding = "NON_INTEGER_ENCODING"
	ErrEncodingOverflow   = "ENCODING_OVERFLOW"
	ErrInvalidEncoding    = "INVALID_ENCODING"

	// Registry
	ErrInvalidEndpoint = "INVALID_ENDPOINT"
	ErrRegistryCall    = "REGISTRY_CALL_FAILED"

	ErrConfigError = "CONFIG_ERROR"
)

// NewCurveError builds a CurveError with a formatted message
func NewCurveError(code string, format string, args ...interface{}) *CurveError {
	return &CurveError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// IsCode reports whether err, or anything it wraps, is a CurveError with the given code
func IsCode(err error, code string) bool {
	var ce *CurveError
	if errors.As(err, &ce) {
		return ce.Code == code
	}

	var cv CurveError
	if errors.As(err, &cv) {
		return cv.Code == code
	}
	return false
}

// CodeOf returns the CurveError code carried by err, or "" if there is none
func CodeOf(err error) string {
	var ce *CurveError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}
