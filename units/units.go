// Package units maps ether denomination suffixes to their value in wei.
package units

import (
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/params"
	"github.com/shopspring/decimal"
)

var (
	wei   = decimal.NewFromInt(params.Wei)
	gwei  = decimal.NewFromInt(params.GWei)
	ether = decimal.NewFromInt(params.Ether)
)

// scales holds every recognised suffix. Aliases share one multiplier.
var scales = map[string]decimal.Decimal{
	"wei": wei,

	"kwei":       wei.Shift(3),
	"babbage":    wei.Shift(3),
	"femtoether": wei.Shift(3),

	"mwei":      wei.Shift(6),
	"lovelace":  wei.Shift(6),
	"picoether": wei.Shift(6),

	"gwei":      gwei,
	"shannon":   gwei,
	"nanoether": gwei,
	"nano":      gwei,

	"szabo":      gwei.Shift(3),
	"microether": gwei.Shift(3),
	"micro":      gwei.Shift(3),

	"finney":     gwei.Shift(6),
	"milliether": gwei.Shift(6),
	"milli":      gwei.Shift(6),

	"ether": ether,
	"zap":   ether,

	"kether": ether.Shift(3),
	"grand":  ether.Shift(3),

	"mether": ether.Shift(6),
	"gether": ether.Shift(9),
	"tether": ether.Shift(12),
}

// Lookup returns the wei multiplier for a denomination suffix.
// Matching is case-insensitive.
func Lookup(suffix string) (decimal.Decimal, bool) {
	scale, ok := scales[strings.ToLower(suffix)]
	return scale, ok
}

// IsUnit reports whether suffix names a known denomination
func IsUnit(suffix string) bool {
	_, ok := Lookup(suffix)
	return ok
}

// Apply scales amount, expressed in the given denomination, to wei
func Apply(amount decimal.Decimal, suffix string) (decimal.Decimal, bool) {
	scale, ok := Lookup(suffix)
	if !ok {
		return decimal.Decimal{}, false
	}
	return amount.Mul(scale), true
}

// Names lists every recognised suffix in ascending order of value, then name.
func Names() []string {
	names := make([]string, 0, len(scales))
	for name := range scales {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if c := scales[names[i]].Cmp(scales[names[j]]); c != 0 {
			return c < 0
		}
		return names[i] < names[j]
	})
	return names
}

// Decimals returns the power of ten a suffix scales by, 18 for ether
func Decimals(suffix string) (int32, bool) {
	scale, ok := Lookup(suffix)
	if !ok {
		return 0, false
	}
	return int32(len(scale.BigInt().String()) - 1), true
}

// FromWei expresses a wei amount in the given denomination
func FromWei(amount decimal.Decimal, suffix string) (decimal.Decimal, bool) {
	decimals, ok := Decimals(suffix)
	if !ok {
		return decimal.Decimal{}, false
	}
	return amount.Shift(-decimals), true
}
