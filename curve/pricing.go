package curve

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/zapproject/zappy-sub000/types"
)

// PriceAt returns the price of the dot at supply position x. x must be a
// whole number in (0, DomainMax].
func PriceAt(c *Curve, x decimal.Decimal) (decimal.Decimal, error) {
	if !x.IsInteger() {
		return decimal.Zero, &types.CurveError{
			Code:    types.ErrNonWholeSupplyPosition,
			Message: fmt.Sprintf("supply position %s is not a whole number", x),
		}
	}

	if c.IsEmpty() {
		return decimal.Zero, &types.CurveError{
			Code:    types.ErrUninitializedCurve,
			Message: "curve has no pieces",
		}
	}

	if x.Sign() <= 0 || x.GreaterThan(c.domainMax) {
		return decimal.Zero, &types.CurveError{
			Code:    types.ErrOutOfDomain,
			Message: fmt.Sprintf("supply position %s is outside (0, %s]", x, c.domainMax),
		}
	}

	p, ok := c.PieceAt(x)
	if !ok {
		// x <= domainMax, so the last piece always matches
		panic(fmt.Sprintf("curve: no piece covers supply position %s below domain max %s", x, c.domainMax))
	}

	return p.Eval(x), nil
}

// CostOfRange sums the price of count dots starting at supply position
// start, i.e. PriceAt(start) + ... + PriceAt(start+count-1).
//
// count must be below the curve's domain max. That alone does not keep the
// whole range in domain: a range running past DomainMax fails with
// ErrOutOfDomain from the first position outside it.
func CostOfRange(c *Curve, start, count decimal.Decimal) (decimal.Decimal, error) {
	total := decimal.Zero
	err := walkRange(c, start, count, func(_ decimal.Decimal, price decimal.Decimal) {
		total = total.Add(price)
	})
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// Prices returns the price of each of count dots starting at start
func Prices(c *Curve, start, count decimal.Decimal) ([]decimal.Decimal, error) {
	var prices []decimal.Decimal
	err := walkRange(c, start, count, func(_ decimal.Decimal, price decimal.Decimal) {
		prices = append(prices, price)
	})
	if err != nil {
		return nil, err
	}
	return prices, nil
}

func walkRange(c *Curve, start, count decimal.Decimal, fn func(x, price decimal.Decimal)) error {
	if !start.IsInteger() || !count.IsInteger() {
		return &types.CurveError{
			Code:    types.ErrNonWholeSupplyPosition,
			Message: fmt.Sprintf("range start %s and count %s must be whole numbers", start, count),
		}
	}

	if c.IsEmpty() {
		return &types.CurveError{
			Code:    types.ErrUninitializedCurve,
			Message: "curve has no pieces",
		}
	}

	if count.Sign() < 0 || count.GreaterThanOrEqual(c.domainMax) {
		return &types.CurveError{
			Code:    types.ErrOutOfDomain,
			Message: fmt.Sprintf("dot count %s must be in [0, %s)", count, c.domainMax),
		}
	}

	end := start.Add(count)
	for x := start; x.LessThan(end); x = x.Add(one) {
		price, err := PriceAt(c, x)
		if err != nil {
			return err
		}
		fn(x, price)
	}
	return nil
}
