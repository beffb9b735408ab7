package pricing

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestComputeTotalsWithDiscount(t *testing.T) {
	lines := []Line{
		{ItemID: 1, UnitPrice: 1000, Count: 2},
		{ItemID: 2, UnitPrice: 500, Count: 1},
	}
	got, err := ComputeTotals(lines, intPtr(10))
	require.NoError(t, err)

	assert.Equal(t, int64(2500), got.Amount)
	assert.True(t, decimal.NewFromInt(250).Equal(got.DiscountPrice), got.DiscountPrice.String())
	assert.True(t, decimal.NewFromInt(2250).Equal(got.PayAmount), got.PayAmount.String())
}

func TestComputeTotalsWithoutDiscount(t *testing.T) {
	lines := []Line{{UnitPrice: 799, Count: 3}, {UnitPrice: 1, Count: 1}}
	got, err := ComputeTotals(lines, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(2398), got.Amount)
	assert.True(t, got.DiscountPrice.IsZero())
	assert.True(t, decimal.NewFromInt(2398).Equal(got.PayAmount))
}

func TestComputeTotalsFractionalDiscountIsExact(t *testing.T) {
	got, err := ComputeTotals([]Line{{UnitPrice: 333, Count: 1}}, intPtr(15))
	require.NoError(t, err)

	assert.Equal(t, "49.95", got.DiscountPrice.String())
	assert.Equal(t, "283.05", got.PayAmount.String())
}

func TestPayAmountInvariant(t *testing.T) {
	for _, p := range []int{0, 1, 7, 33, 50, 99, 100} {
		lines := []Line{{UnitPrice: 12345, Count: 7}, {UnitPrice: 3, Count: 11}}
		got, err := ComputeTotals(lines, intPtr(p))
		require.NoError(t, err)
		want := decimal.NewFromInt(got.Amount).Sub(got.DiscountPrice)
		assert.True(t, want.Equal(got.PayAmount), "percent %d", p)
	}
}

func TestEmptyCart(t *testing.T) {
	got, err := ComputeTotals(nil, intPtr(20))
	require.NoError(t, err)
	assert.Zero(t, got.Amount)
	assert.True(t, got.PayAmount.IsZero())
}

func TestFreezeMatchesPricedLines(t *testing.T) {
	lines := []Line{{ItemID: 4, UnitPrice: 1000, Count: 2}, {ItemID: 9, UnitPrice: 500, Count: 1}}
	assert.Equal(t, []FrozenPrice{{ItemID: 4, UnitPrice: 1000}, {ItemID: 9, UnitPrice: 500}}, Freeze(lines))
}

func TestAmountOverflowIsReported(t *testing.T) {
	_, err := Amount([]Line{{UnitPrice: math.MaxInt64/2 + 1, Count: 2}})
	assert.ErrorIs(t, err, ErrAmountOutOfRange)

	_, err = Amount([]Line{{UnitPrice: math.MaxInt64, Count: 1}, {UnitPrice: 1, Count: 1}})
	assert.ErrorIs(t, err, ErrAmountOutOfRange)

	_, err = ComputeTotals([]Line{{UnitPrice: math.MaxInt64, Count: 3}}, intPtr(10))
	assert.ErrorIs(t, err, ErrAmountOutOfRange)
}

func TestAmountAtTheLimit(t *testing.T) {
	got, err := Amount([]Line{{UnitPrice: math.MaxInt64 - 1, Count: 1}, {UnitPrice: 1, Count: 1}})
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), got)
}
