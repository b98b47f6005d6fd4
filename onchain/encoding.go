// Package onchain converts curve encodings to and from the form the registry
// contract stores: an ABI encoded int256[].
package onchain

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/shopspring/decimal"
	"github.com/zapproject/zappy-sub000/types"
)

var (
	maxInt256 = new(big.Int).Rsh(math.MaxBig256, 1)
	minInt256 = new(big.Int).Not(maxInt256)

	curveArguments = abi.Arguments{{Type: mustABIType("int256[]")}}
)

func mustABIType(t string) abi.Type {
	typ, err := abi.NewType(t, "", nil)
	if err != nil {
		panic(err)
	}
	return typ
}

// ToBigInts converts a raw encoding into contract integers. Every value must
// be whole and fit in an int256.
func ToBigInts(raw []decimal.Decimal) ([]*big.Int, error) {
	out := make([]*big.Int, len(raw))
	for i, d := range raw {
		if !d.IsInteger() {
			return nil, &types.CurveError{
				Code:    types.ErrNonIntegerEncoding,
				Message: fmt.Sprintf("value %s at index %d is not an integer", d, i),
				Data:    i,
			}
		}

		v := d.BigInt()
		if v.Cmp(maxInt256) > 0 || v.Cmp(minInt256) < 0 {
			return nil, &types.CurveError{
				Code:    types.ErrEncodingOverflow,
				Message: fmt.Sprintf("value %s at index %d does not fit in int256", d, i),
				Data:    i,
			}
		}
		out[i] = v
	}
	return out, nil
}

// FromBigInts converts contract integers into a raw encoding
func FromBigInts(values []*big.Int) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		if v == nil {
			out[i] = decimal.Zero
			continue
		}
		out[i] = decimal.NewFromBigInt(v, 0)
	}
	return out
}

// Pack ABI encodes a raw encoding as int256[]
func Pack(raw []decimal.Decimal) ([]byte, error) {
	values, err := ToBigInts(raw)
	if err != nil {
		return nil, err
	}

	packed, err := curveArguments.Pack(values)
	if err != nil {
		return nil, &types.CurveError{
			Code:    types.ErrInvalidEncoding,
			Message: fmt.Sprintf("failed to pack curve: %v", err),
		}
	}
	return packed, nil
}

// Unpack decodes an ABI encoded int256[] into a raw encoding
func Unpack(data []byte) ([]decimal.Decimal, error) {
	unpacked, err := curveArguments.Unpack(data)
	if err != nil {
		return nil, &types.CurveError{
			Code:    types.ErrInvalidEncoding,
			Message: fmt.Sprintf("failed to unpack curve: %v", err),
		}
	}

	values, ok := unpacked[0].([]*big.Int)
	if !ok {
		return nil, &types.CurveError{
			Code:    types.ErrInvalidEncoding,
			Message: fmt.Sprintf("unexpected curve type %T", unpacked[0]),
		}
	}
	return FromBigInts(values), nil
}

// Hash returns keccak256 of the packed encoding. Two encodings hash equally
// exactly when they describe the same curve on chain.
func Hash(raw []decimal.Decimal) (common.Hash, error) {
	packed, err := Pack(raw)
	if err != nil {
		return common.Hash{}, err
	}
	return crypto.Keccak256Hash(packed), nil
}
