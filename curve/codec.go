package curve

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/zapproject/zappy-sub000/types"
)

var one = decimal.NewFromInt(1)

// Validate parses a raw encoding, [len, c0 .. c(len-1), bound] repeated for
// every piece, into a Curve. Upper bounds must strictly increase, starting
// above 1. An empty encoding yields an empty curve that cannot be priced.
func Validate(raw []decimal.Decimal) (*Curve, error) {
	c := &Curve{}
	prevEnd := one

	for cursor := 0; cursor < len(raw); {
		length := raw[cursor]
		if length.Sign() <= 0 || !length.IsInteger() {
			return nil, &types.CurveError{
				Code:    types.ErrInvalidPieceLength,
				Message: fmt.Sprintf("invalid piece length %s at index %d", length, cursor),
				Data:    cursor,
			}
		}

		// compare before converting so oversized lengths can't overflow an int
		remaining := decimal.NewFromInt(int64(len(raw) - cursor - 1))
		if length.GreaterThanOrEqual(remaining) {
			return nil, &types.CurveError{
				Code:    types.ErrPieceOutOfBounds,
				Message: fmt.Sprintf("piece of length %s at index %d runs past the end of the encoding", length, cursor),
				Data:    cursor,
			}
		}

		n := int(length.IntPart())
		endIndex := cursor + n + 1
		end := raw[endIndex]
		if end.LessThanOrEqual(prevEnd) {
			return nil, &types.CurveError{
				Code:    types.ErrOverlappingOrNonIncreasingDomain,
				Message: fmt.Sprintf("piece bound %s at index %d does not exceed previous bound %s", end, endIndex, prevEnd),
				Data:    endIndex,
			}
		}

		c.pieces = append(c.pieces, Piece{
			coefficients: append([]decimal.Decimal(nil), raw[cursor+1:endIndex]...),
			upperBound:   end,
		})

		prevEnd = end
		cursor = endIndex + 1
	}

	if len(c.pieces) > 0 {
		c.domainMax = prevEnd
	}
	return c, nil
}

// Encode re-derives the raw encoding Validate would accept for this curve
func (c *Curve) Encode() []decimal.Decimal {
	if c == nil {
		return nil
	}

	size := 0
	for _, p := range c.pieces {
		size += len(p.coefficients) + 2
	}

	raw := make([]decimal.Decimal, 0, size)
	for _, p := range c.pieces {
		raw = append(raw, decimal.NewFromInt(int64(len(p.coefficients))))
		raw = append(raw, p.coefficients...)
		raw = append(raw, p.upperBound)
	}
	return raw
}

// FromStrings converts decimal strings into a raw encoding
func FromStrings(values ...string) ([]decimal.Decimal, error) {
	raw := make([]decimal.Decimal, len(values))
	for i, v := range values {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return nil, &types.CurveError{
				Code:    types.ErrInvalidEncoding,
				Message: fmt.Sprintf("invalid number %q at index %d: %v", v, i, err),
				Data:    i,
			}
		}
		raw[i] = d
	}
	return raw, nil
}

// Strings renders a raw encoding as plain decimal strings
func Strings(raw []decimal.Decimal) []string {
	out := make([]string, len(raw))
	for i, d := range raw {
		out[i] = d.String()
	}
	return out
}
