package curve

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/zapproject/zappy-sub000/types"
)

// MaxExponent bounds the degree Parse accepts
const MaxExponent = 255

// Render writes every piece as "c0x^0+c1x^1+...; limit = bound", joined by
// "&". Zero coefficients are skipped and a coefficient of 1 is left implicit.
//
// The output is for display. Parse reads back a single piece only and
// ignores the "&" piece boundaries.
func Render(c *Curve) string {
	if c == nil {
		return ""
	}

	pieces := make([]string, 0, len(c.pieces))
	for _, p := range c.pieces {
		terms := make([]string, 0, len(p.coefficients))
		for i, coef := range p.coefficients {
			switch {
			case coef.IsZero():
				continue
			case coef.Equal(one):
				terms = append(terms, fmt.Sprintf("x^%d", i))
			default:
				terms = append(terms, fmt.Sprintf("%sx^%d", coef, i))
			}
		}
		pieces = append(pieces, strings.Join(terms, "+")+"; limit = "+p.upperBound.String())
	}
	return strings.Join(pieces, "&")
}

// String renders the curve, see Render
func (c *Curve) String() string {
	return Render(c)
}

// Parse reads an algebraic expression such as "4x^0+2gweix^1+3x^2" and
// returns the raw encoding of a single piece bounded by domainUpperBound.
// Numbers may carry an ether denomination suffix (wei, gwei, ether, ...).
// Terms sharing an exponent are added together.
func Parse(domainUpperBound decimal.Decimal, expression string) ([]decimal.Decimal, error) {
	if !domainUpperBound.IsInteger() || domainUpperBound.Sign() <= 0 {
		return nil, &types.CurveError{
			Code:    types.ErrInvalidDomainBound,
			Message: fmt.Sprintf("domain upper bound %s must be a positive whole number", domainUpperBound),
		}
	}

	terms, err := ParseTerms(expression)
	if err != nil {
		return nil, err
	}

	var coefficients []decimal.Decimal
	for _, term := range terms {
		for len(coefficients) <= term.Exponent {
			coefficients = append(coefficients, decimal.Zero)
		}
		coefficients[term.Exponent] = coefficients[term.Exponent].Add(term.Coefficient)
	}

	raw := make([]decimal.Decimal, 0, len(coefficients)+2)
	raw = append(raw, decimal.NewFromInt(int64(len(coefficients))))
	raw = append(raw, coefficients...)
	raw = append(raw, domainUpperBound)
	return raw, nil
}

// ParseTerms splits an expression on "+" and reads each part as a Term
func ParseTerms(expression string) ([]Term, error) {
	parts := strings.Split(expression, "+")
	terms := make([]Term, 0, len(parts))
	for _, part := range parts {
		term, err := parseTerm(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		terms = append(terms, term)
	}
	return terms, nil
}

func parseTerm(text string) (Term, error) {
	tokens, err := tokenize(text)
	if err != nil {
		return Term{}, err
	}
	if len(tokens) == 0 {
		return Term{}, invalidExpression("empty term")
	}

	term := Term{Coefficient: one}
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		switch tok.kind {
		case tokenNumber:
			term.Coefficient = term.Coefficient.Mul(tok.value)
			if i+1 < len(tokens) && tokens[i+1].kind == tokenUnit {
				term.Coefficient = term.Coefficient.Mul(tokens[i+1].scale)
				i++
			}

		case tokenUnit:
			return Term{}, invalidExpression("unit %q in term %q does not follow a number", tok.text, text)

		case tokenVariable:
			term.Exponent = 1

		case tokenPower:
			if i+1 >= len(tokens) {
				return Term{}, &types.CurveError{
					Code:    types.ErrMissingExponent,
					Message: fmt.Sprintf("term %q ends with ^", text),
				}
			}
			next := tokens[i+1]
			if next.kind != tokenNumber || !next.value.IsInteger() {
				return Term{}, &types.CurveError{
					Code:    types.ErrNonIntegerExponent,
					Message: fmt.Sprintf("exponent %q in term %q is not a whole number", next.text, text),
				}
			}
			if next.value.GreaterThan(decimal.NewFromInt(MaxExponent)) {
				return Term{}, &types.CurveError{
					Code:    types.ErrExponentTooLarge,
					Message: fmt.Sprintf("exponent %s in term %q exceeds %d", next.value, text, MaxExponent),
				}
			}
			term.Exponent = int(next.value.IntPart())
			i++

		case tokenTimes:
		}
	}
	return term, nil
}
