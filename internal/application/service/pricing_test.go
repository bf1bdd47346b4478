package service

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wekesa/tillpoint-api/internal/domain/entity"
	"github.com/wekesa/tillpoint-api/internal/domain/enum"
)

func cartWith(lines ...entity.CartLine) *entity.Cart {
	return &entity.Cart{SessionID: "till-1", Lines: lines}
}

func line(name string, priceCents int64, qty int) entity.CartLine {
	return entity.CartLine{
		Product: entity.Product{
			ID:           uuid.New(),
			Name:         name,
			SellingPrice: priceCents,
			Quantity:     qty + 100,
			IsActive:     true,
		},
		Quantity: qty,
	}
}

func TestComputeTotals(t *testing.T) {
	t.Run("subtotal sums line totals", func(t *testing.T) {
		cart := cartWith(line("Soda", 1000, 3)) // 3 x 10.00

		totals := ComputeTotals(cart, nil)

		assert.True(t, totals.SubTotal.Equal(decimal.RequireFromString("30.00")), "got %s", totals.SubTotal)
		assert.True(t, totals.DiscountAmount.IsZero())
		assert.True(t, totals.TaxAmount.IsZero())
		assert.True(t, totals.Total.Equal(decimal.RequireFromString("30.00")))
	})

	t.Run("percent discount", func(t *testing.T) {
		cart := cartWith(line("Soda", 1000, 3))
		discount := &DiscountSpec{Type: enum.DiscountPercent, Value: decimal.NewFromInt(10)}

		totals := ComputeTotals(cart, discount)

		assert.True(t, totals.DiscountAmount.Equal(decimal.RequireFromString("3.00")), "got %s", totals.DiscountAmount)
		assert.True(t, totals.Total.Equal(decimal.RequireFromString("27.00")), "got %s", totals.Total)
	})

	t.Run("fixed discount larger than subtotal clamps to subtotal", func(t *testing.T) {
		cart := cartWith(line("Soda", 1000, 3))
		discount := &DiscountSpec{Type: enum.DiscountFixed, Value: decimal.NewFromInt(50)}

		totals := ComputeTotals(cart, discount)

		assert.True(t, totals.DiscountAmount.Equal(decimal.RequireFromString("30.00")))
		assert.True(t, totals.Total.IsZero(), "got %s", totals.Total)
	})

	t.Run("percent over 100 clamps to subtotal", func(t *testing.T) {
		cart := cartWith(line("Soda", 1000, 3))
		discount := &DiscountSpec{Type: enum.DiscountPercent, Value: decimal.NewFromInt(150)}

		totals := ComputeTotals(cart, discount)

		assert.True(t, totals.DiscountAmount.Equal(totals.SubTotal))
		assert.True(t, totals.Total.IsZero())
	})

	t.Run("negative discount value is ignored", func(t *testing.T) {
		cart := cartWith(line("Soda", 1000, 3))
		discount := &DiscountSpec{Type: enum.DiscountFixed, Value: decimal.NewFromInt(-5)}

		totals := ComputeTotals(cart, discount)

		assert.True(t, totals.DiscountAmount.IsZero())
		assert.True(t, totals.Total.Equal(totals.SubTotal))
	})

	t.Run("empty cart totals are zero", func(t *testing.T) {
		totals := ComputeTotals(cartWith(), nil)

		assert.True(t, totals.SubTotal.IsZero())
		assert.True(t, totals.Total.IsZero())
	})

	t.Run("tax is zero until a tax source is wired in", func(t *testing.T) {
		cart := cartWith(line("Soda", 999, 7), line("Bread", 1250, 2))

		totals := ComputeTotals(cart, nil)

		assert.True(t, totals.TaxAmount.IsZero())
		assert.True(t, totals.Total.Equal(totals.SubTotal.Sub(totals.DiscountAmount)))
	})

	t.Run("cents round-trip for persistence", func(t *testing.T) {
		cart := cartWith(line("Soda", 333, 3)) // 9.99
		discount := &DiscountSpec{Type: enum.DiscountPercent, Value: decimal.NewFromInt(10)}

		totals := ComputeTotals(cart, discount)

		assert.Equal(t, int64(999), totals.SubTotalCents())
		assert.Equal(t, int64(100), totals.DiscountCents()) // 0.999 rounds to 1.00
		assert.Equal(t, int64(0), totals.TaxCents())
	})
}

// Discount never exceeds the subtotal and the total never goes negative,
// whatever the inputs.
func TestComputeTotalsClampProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		cart := cartWith(
			line("A", rng.Int63n(100000), 1+rng.Intn(20)),
			line("B", rng.Int63n(100000), 1+rng.Intn(20)),
		)

		discountType := enum.DiscountPercent
		if i%2 == 0 {
			discountType = enum.DiscountFixed
		}
		// Values deliberately range past any sensible input
		value := decimal.NewFromFloat(rng.Float64()*400 - 100)

		totals := ComputeTotals(cart, &DiscountSpec{Type: discountType, Value: value})

		require.False(t, totals.DiscountAmount.IsNegative(),
			"discount went negative for value %s", value)
		require.True(t, totals.DiscountAmount.LessThanOrEqual(totals.SubTotal),
			"discount %s exceeded subtotal %s", totals.DiscountAmount, totals.SubTotal)
		require.False(t, totals.Total.IsNegative(),
			"total went negative for value %s", value)
	}
}

func TestChangeAmount(t *testing.T) {
	total := decimal.RequireFromString("27.00")

	t.Run("cash change is received minus total", func(t *testing.T) {
		change := ChangeAmount(enum.PaymentCash, decimal.RequireFromString("30.00"), total)
		assert.True(t, change.Equal(decimal.RequireFromString("3.00")), "got %s", change)
	})

	t.Run("exact cash payment yields zero change", func(t *testing.T) {
		change := ChangeAmount(enum.PaymentCash, total, total)
		assert.True(t, change.IsZero())
	})

	t.Run("underpayment never yields negative change", func(t *testing.T) {
		change := ChangeAmount(enum.PaymentCash, decimal.RequireFromString("20.00"), total)
		assert.True(t, change.IsZero())
	})

	t.Run("non-cash methods have no change concept", func(t *testing.T) {
		for _, method := range []enum.PaymentMethod{enum.PaymentCard, enum.PaymentMobileMoney, enum.PaymentBankTransfer} {
			change := ChangeAmount(method, decimal.RequireFromString("100.00"), total)
			assert.True(t, change.IsZero(), "method %s", method)
		}
	})
}
