package curve

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zapproject/zappy-sub000/types"
)

func mustCurve(t *testing.T, values ...string) *Curve {
	t.Helper()
	c, err := Validate(mustRaw(t, values...))
	require.NoError(t, err)
	return c
}

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func TestPriceAt(t *testing.T) {
	c := mustCurve(t, "3", "0", "0", "3", "1e10")

	tests := []struct {
		x    int64
		want string
	}{
		{1, "3"},
		{2, "12"},
		{10, "300"},
		{10000000000, "300000000000000000000"},
	}

	for _, tt := range tests {
		got, err := PriceAt(c, dec(tt.x))
		require.NoError(t, err)
		assert.Equal(t, tt.want, got.String(), "x=%d", tt.x)
	}
}

func TestPriceAtPicksActivePiece(t *testing.T) {
	// 2x up to 10, then 100 + x^2 up to 20
	c := mustCurve(t, "2", "0", "2", "10", "3", "100", "0", "1", "20")

	tests := []struct {
		x    int64
		want string
	}{
		{1, "2"},
		{10, "20"},
		{11, "221"},
		{20, "500"},
	}

	for _, tt := range tests {
		got, err := PriceAt(c, dec(tt.x))
		require.NoError(t, err)
		assert.Equal(t, tt.want, got.String(), "x=%d", tt.x)
	}
}

func TestPriceAtFailures(t *testing.T) {
	c := mustCurve(t, "3", "0", "0", "3", "100")
	empty, err := Validate(nil)
	require.NoError(t, err)

	tests := []struct {
		name     string
		c        *Curve
		x        decimal.Decimal
		wantCode string
	}{
		{"fractional position", c, decimal.RequireFromString("1.5"), types.ErrNonWholeSupplyPosition},
		{"zero position", c, dec(0), types.ErrOutOfDomain},
		{"negative position", c, dec(-3), types.ErrOutOfDomain},
		{"past domain max", c, dec(101), types.ErrOutOfDomain},
		{"empty curve", empty, dec(1), types.ErrUninitializedCurve},
		{"nil curve", nil, dec(1), types.ErrUninitializedCurve},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PriceAt(tt.c, tt.x)
			require.Error(t, err)
			assert.True(t, types.IsCode(err, tt.wantCode), "got %v", err)
		})
	}
}

// bruteForce evaluates sum(c_i * x^i) with big.Int powers
func bruteForce(coefs []int64, x int64) *big.Int {
	sum := new(big.Int)
	bx := big.NewInt(x)
	for i, c := range coefs {
		term := new(big.Int).Exp(bx, big.NewInt(int64(i)), nil)
		term.Mul(term, big.NewInt(c))
		sum.Add(sum, term)
	}
	return sum
}

func TestPriceAtMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 50; round++ {
		coefs := make([]int64, 1+rng.Intn(6))
		raw := []decimal.Decimal{dec(int64(len(coefs)))}
		for i := range coefs {
			coefs[i] = rng.Int63n(1_000_000)
			raw = append(raw, dec(coefs[i]))
		}
		raw = append(raw, dec(1_000_000_000))

		c, err := Validate(raw)
		require.NoError(t, err)

		for i := 0; i < 10; i++ {
			x := 1 + rng.Int63n(1_000_000_000)
			got, err := PriceAt(c, dec(x))
			require.NoError(t, err)

			want := bruteForce(coefs, x)
			assert.Equal(t, want.String(), got.String())
			assert.False(t, got.IsNegative())
		}
	}
}

func TestPriceAtLargeCoefficients(t *testing.T) {
	// 2 tether per dot squared
	c := mustCurve(t, "3", "0", "0", "2000000000000000000000000000000", "1000000")

	got, err := PriceAt(c, dec(1000000))
	require.NoError(t, err)
	assert.Equal(t, "2"+zeros(42), got.String())
}

func zeros(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '0'
	}
	return string(b)
}

func TestCostOfRange(t *testing.T) {
	c := mustCurve(t, "2", "0", "2", "10", "3", "100", "0", "1", "20")

	got, err := CostOfRange(c, dec(1), dec(3))
	require.NoError(t, err)
	assert.Equal(t, "12", got.String()) // 2 + 4 + 6

	// crosses the piece boundary: 18 + 20 + 221
	got, err = CostOfRange(c, dec(9), dec(3))
	require.NoError(t, err)
	assert.Equal(t, "259", got.String())

	got, err = CostOfRange(c, dec(5), dec(0))
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestCostOfRangeIdentity(t *testing.T) {
	c := mustCurve(t, "3", "1", "2", "3", "50", "2", "1000", "7", "120")

	for start := int64(1); start <= 100; start += 9 {
		for n := int64(0); start+n-1 <= 120 && n < 30; n += 4 {
			got, err := CostOfRange(c, dec(start), dec(n))
			require.NoError(t, err)

			want := decimal.Zero
			for i := start; i < start+n; i++ {
				p, err := PriceAt(c, dec(i))
				require.NoError(t, err)
				want = want.Add(p)
			}
			assert.True(t, want.Equal(got), "start=%d n=%d want %s got %s", start, n, want, got)
		}
	}
}

func TestCostOfRangeFailures(t *testing.T) {
	c := mustCurve(t, "1", "5", "10")
	empty, err := Validate(nil)
	require.NoError(t, err)

	tests := []struct {
		name     string
		c        *Curve
		start    decimal.Decimal
		count    decimal.Decimal
		wantCode string
	}{
		{"fractional start", c, decimal.RequireFromString("0.5"), dec(2), types.ErrNonWholeSupplyPosition},
		{"fractional count", c, dec(1), decimal.RequireFromString("2.5"), types.ErrNonWholeSupplyPosition},
		{"count equal to domain max", c, dec(1), dec(10), types.ErrOutOfDomain},
		{"negative count", c, dec(1), dec(-1), types.ErrOutOfDomain},
		// count < domain max, yet the range runs past it
		{"range past domain max", c, dec(8), dec(5), types.ErrOutOfDomain},
		{"range starting at zero", c, dec(0), dec(2), types.ErrOutOfDomain},
		{"empty curve", empty, dec(1), dec(1), types.ErrUninitializedCurve},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CostOfRange(tt.c, tt.start, tt.count)
			require.Error(t, err)
			assert.True(t, types.IsCode(err, tt.wantCode), "got %v", err)
		})
	}
}

func TestPrices(t *testing.T) {
	c := mustCurve(t, "3", "0", "0", "3", "1e10")

	prices, err := Prices(c, dec(1), dec(3))
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "12", "27"}, Strings(prices))
}
