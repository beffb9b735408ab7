// Package pricing holds the money rules of order finalization as pure
// functions over value snapshots, so they can be tested without a database.
package pricing

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

// ErrAmountOutOfRange is returned when a cart total does not fit the int64
// amount column.
var ErrAmountOutOfRange = errors.New("pricing: amount out of range")

// Bounds accepted for a product price and a cart line count. Binding tags
// on the request types carry the same values.
const (
	MaxUnitPrice int64 = 1_000_000_000_000
	MaxCount           = 100_000
)

var (
	hundred   = decimal.NewFromInt(100)
	maxAmount = decimal.NewFromInt(math.MaxInt64)
)

// Line is a snapshot of one cart item priced at the product's current price.
type Line struct {
	ItemID    uint
	UnitPrice int64
	Count     int
}

// Totals are the monetary fields of an order. PayAmount is always
// Amount - DiscountPrice.
type Totals struct {
	Amount        int64
	DiscountPrice decimal.Decimal
	PayAmount     decimal.Decimal
}

// Amount sums UnitPrice * Count over lines. The sum is taken in decimal so
// an int64 overflow is reported instead of wrapping.
func Amount(lines []Line) (int64, error) {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(decimal.NewFromInt(l.UnitPrice).Mul(decimal.NewFromInt(int64(l.Count))))
	}
	if sum.IsNegative() || sum.GreaterThan(maxAmount) {
		return 0, ErrAmountOutOfRange
	}
	return sum.IntPart(), nil
}

// DiscountPrice is percent/100 of amount, kept exact.
func DiscountPrice(amount int64, percent int) decimal.Decimal {
	return decimal.NewFromInt(amount).Mul(decimal.NewFromInt(int64(percent))).Div(hundred)
}

// ComputeTotals prices lines. A nil percent means no discount. The percent
// applies to the whole amount whatever products the discount targets.
func ComputeTotals(lines []Line, percent *int) (Totals, error) {
	amount, err := Amount(lines)
	if err != nil {
		return Totals{}, err
	}
	discount := decimal.Zero
	if percent != nil {
		discount = DiscountPrice(amount, *percent)
	}
	return Totals{
		Amount:        amount,
		DiscountPrice: discount,
		PayAmount:     decimal.NewFromInt(amount).Sub(discount),
	}, nil
}

// FrozenPrice is the unit price to persist on an item when its cart is
// ordered.
type FrozenPrice struct {
	ItemID    uint
	UnitPrice int64
}

// Freeze returns the unit price of every line, the same values Amount used.
func Freeze(lines []Line) []FrozenPrice {
	out := make([]FrozenPrice, len(lines))
	for i, l := range lines {
		out[i] = FrozenPrice{ItemID: l.ItemID, UnitPrice: l.UnitPrice}
	}
	return out
}
