package utils

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/zapproject/zappy-sub000/types"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ParseEngineConfig parses and validates EngineConfig from JSON
func ParseEngineConfig(data []byte) (*types.EngineConfig, error) {
	var config types.EngineConfig

	if err := json.Unmarshal(data, &config); err != nil {
		return nil, &types.CurveError{
			Code:    types.ErrConfigError,
			Message: fmt.Sprintf("failed to parse engine config: %v", err),
		}
	}

	if err := ValidateEngineConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// ValidateEngineConfig checks an EngineConfig against its struct tags
func ValidateEngineConfig(config *types.EngineConfig) error {
	if err := validate.Struct(config); err != nil {
		return &types.CurveError{
			Code:    types.ErrConfigError,
			Message: fmt.Sprintf("validation failed: %v", err),
		}
	}
	return nil
}

// ValidateParseRequest checks the required fields of a ParseRequest
func ValidateParseRequest(req *types.ParseRequest) error {
	if req == nil {
		return &types.CurveError{
			Code:    types.ErrInvalidExpression,
			Message: "parse request is required",
		}
	}

	if err := validate.Struct(req); err != nil {
		return &types.CurveError{
			Code:    types.ErrInvalidExpression,
			Message: fmt.Sprintf("validation failed: %v", err),
		}
	}
	return nil
}

// ParseRawEncoding reads a raw curve encoding from a JSON array. Elements
// may be numbers or decimal strings; strings keep full precision.
func ParseRawEncoding(data []byte) ([]decimal.Decimal, error) {
	var raw []decimal.Decimal

	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &types.CurveError{
			Code:    types.ErrInvalidEncoding,
			Message: fmt.Sprintf("failed to parse curve encoding: %v", err),
		}
	}

	return raw, nil
}

// SerializeRawEncoding writes a raw curve encoding as a JSON array of strings
func SerializeRawEncoding(raw []decimal.Decimal) ([]byte, error) {
	return json.Marshal(raw)
}

// SerializeQuote converts a Quote to JSON
func SerializeQuote(quote *types.Quote) ([]byte, error) {
	return json.Marshal(quote)
}
