// Package curve implements piecewise polynomial bonding curves: the flat
// numeric encoding used on chain, price evaluation over supply positions and
// an algebraic text form.
package curve

import (
	"github.com/shopspring/decimal"
)

// Piece is one polynomial segment of a curve. Coefficients are in ascending
// degree, Coefficients[i] multiplies x^i. The piece prices every supply
// position up to and including UpperBound.
type Piece struct {
	coefficients []decimal.Decimal
	upperBound   decimal.Decimal
}

// Coefficients returns a copy of the piece's coefficients
func (p Piece) Coefficients() []decimal.Decimal {
	return append([]decimal.Decimal(nil), p.coefficients...)
}

// UpperBound is the inclusive last supply position priced by this piece
func (p Piece) UpperBound() decimal.Decimal {
	return p.upperBound
}

// Degree is the highest exponent of the piece's polynomial
func (p Piece) Degree() int {
	return len(p.coefficients) - 1
}

// Eval computes sum(c_i * x^i) exactly
func (p Piece) Eval(x decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	power := decimal.NewFromInt(1)
	for _, c := range p.coefficients {
		if !c.IsZero() {
			sum = sum.Add(c.Mul(power))
		}
		power = power.Mul(x)
	}
	return sum
}

// Curve is a validated piecewise pricing function. It is never mutated after
// Validate returns it and is safe for concurrent use.
type Curve struct {
	pieces    []Piece
	domainMax decimal.Decimal
}

// Pieces returns the curve's segments in increasing domain order
func (c *Curve) Pieces() []Piece {
	return append([]Piece(nil), c.pieces...)
}

// Len is the number of pieces
func (c *Curve) Len() int {
	return len(c.pieces)
}

// IsEmpty reports whether the curve was built from an empty encoding
func (c *Curve) IsEmpty() bool {
	return c == nil || len(c.pieces) == 0
}

// DomainMax is the largest valid supply position. The second return value is
// false for an empty curve, whose domain is undefined.
func (c *Curve) DomainMax() (decimal.Decimal, bool) {
	if c.IsEmpty() {
		return decimal.Decimal{}, false
	}
	return c.domainMax, true
}

// PieceAt returns the piece pricing supply position x: the first one whose
// upper bound is >= x.
func (c *Curve) PieceAt(x decimal.Decimal) (Piece, bool) {
	if c == nil {
		return Piece{}, false
	}
	for _, p := range c.pieces {
		if p.upperBound.GreaterThanOrEqual(x) {
			return p, true
		}
	}
	return Piece{}, false
}

// Term is a single monomial read from an algebraic expression
type Term struct {
	Coefficient decimal.Decimal
	Exponent    int
}
