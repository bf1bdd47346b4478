package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct(name string, priceCents int64, stock int) *Product {
	return &Product{
		ID:           uuid.New(),
		Name:         name,
		Code:         "PRD-" + name,
		SellingPrice: priceCents,
		Quantity:     stock,
		IsActive:     true,
	}
}

func TestCartAddProduct(t *testing.T) {
	t.Run("first add creates a line with quantity 1", func(t *testing.T) {
		cart := NewCart("till-1")
		soda := testProduct("Soda", 150, 10)

		require.NoError(t, cart.AddProduct(soda))

		require.Len(t, cart.Lines, 1)
		assert.Equal(t, soda.ID, cart.Lines[0].Product.ID)
		assert.Equal(t, 1, cart.Lines[0].Quantity)
	})

	t.Run("repeated adds increment the same line", func(t *testing.T) {
		cart := NewCart("till-1")
		soda := testProduct("Soda", 150, 10)

		require.NoError(t, cart.AddProduct(soda))
		require.NoError(t, cart.AddProduct(soda))
		require.NoError(t, cart.AddProduct(soda))

		require.Len(t, cart.Lines, 1)
		assert.Equal(t, 3, cart.Lines[0].Quantity)
		assert.Equal(t, 3, cart.TotalItems())
	})

	t.Run("each product gets its own line", func(t *testing.T) {
		cart := NewCart("till-1")
		soda := testProduct("Soda", 150, 10)
		bread := testProduct("Bread", 250, 5)

		require.NoError(t, cart.AddProduct(soda))
		require.NoError(t, cart.AddProduct(bread))

		assert.Len(t, cart.Lines, 2)
	})

	t.Run("add past stock fails and leaves the cart unchanged", func(t *testing.T) {
		cart := NewCart("till-1")
		soda := testProduct("Soda", 150, 2)

		require.NoError(t, cart.AddProduct(soda))
		require.NoError(t, cart.AddProduct(soda))

		err := cart.AddProduct(soda)
		require.Error(t, err)
		var stockErr *InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, "Soda", stockErr.ProductName)
		assert.Equal(t, 2, stockErr.Available)
		assert.Equal(t, 3, stockErr.Requested)

		// Cart unchanged
		require.Len(t, cart.Lines, 1)
		assert.Equal(t, 2, cart.Lines[0].Quantity)
	})

	t.Run("out of stock product cannot start a line", func(t *testing.T) {
		cart := NewCart("till-1")
		soda := testProduct("Soda", 150, 0)

		err := cart.AddProduct(soda)
		require.Error(t, err)
		assert.True(t, cart.IsEmpty())
	})

	t.Run("successful add refreshes the stock snapshot", func(t *testing.T) {
		cart := NewCart("till-1")
		soda := testProduct("Soda", 150, 2)
		require.NoError(t, cart.AddProduct(soda))

		// Stock was replenished between keystrokes
		soda.Quantity = 10
		require.NoError(t, cart.AddProduct(soda))

		assert.Equal(t, 10, cart.Lines[0].Product.Quantity)
	})
}

func TestCartUpdateQuantity(t *testing.T) {
	t.Run("positive delta increments within stock", func(t *testing.T) {
		cart := NewCart("till-1")
		soda := testProduct("Soda", 150, 10)
		require.NoError(t, cart.AddProduct(soda))

		require.NoError(t, cart.UpdateQuantity(soda.ID, 4))
		assert.Equal(t, 5, cart.Lines[0].Quantity)
	})

	t.Run("delta past the stock snapshot fails and leaves the line unchanged", func(t *testing.T) {
		cart := NewCart("till-1")
		soda := testProduct("Soda", 150, 5)
		require.NoError(t, cart.AddProduct(soda))
		require.NoError(t, cart.UpdateQuantity(soda.ID, 2)) // quantity 3

		err := cart.UpdateQuantity(soda.ID, 5) // would be 8 of 5
		require.Error(t, err)
		var stockErr *InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, 5, stockErr.Available)
		assert.Equal(t, 8, stockErr.Requested)
		assert.Equal(t, 3, cart.Lines[0].Quantity)
	})

	t.Run("delta to zero removes the line", func(t *testing.T) {
		cart := NewCart("till-1")
		soda := testProduct("Soda", 150, 10)
		require.NoError(t, cart.AddProduct(soda))

		require.NoError(t, cart.UpdateQuantity(soda.ID, -1))
		assert.True(t, cart.IsEmpty())
	})

	t.Run("delta below zero also removes the line", func(t *testing.T) {
		cart := NewCart("till-1")
		soda := testProduct("Soda", 150, 10)
		require.NoError(t, cart.AddProduct(soda))
		require.NoError(t, cart.UpdateQuantity(soda.ID, 2))

		require.NoError(t, cart.UpdateQuantity(soda.ID, -10))
		assert.True(t, cart.IsEmpty())
	})

	t.Run("unknown product is a no-op", func(t *testing.T) {
		cart := NewCart("till-1")
		soda := testProduct("Soda", 150, 10)
		require.NoError(t, cart.AddProduct(soda))

		require.NoError(t, cart.UpdateQuantity(uuid.New(), 3))
		assert.Equal(t, 1, cart.Lines[0].Quantity)
	})
}

func TestCartRemoveAndClear(t *testing.T) {
	cart := NewCart("till-1")
	soda := testProduct("Soda", 150, 10)
	bread := testProduct("Bread", 250, 5)
	require.NoError(t, cart.AddProduct(soda))
	require.NoError(t, cart.AddProduct(bread))

	cart.Remove(soda.ID)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, bread.ID, cart.Lines[0].Product.ID)

	// Removing again is a no-op
	cart.Remove(soda.ID)
	assert.Len(t, cart.Lines, 1)

	cart.Clear()
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, 0, cart.TotalItems())
}

func TestCartSubTotalCents(t *testing.T) {
	cart := NewCart("till-1")
	assert.Equal(t, int64(0), cart.SubTotalCents())

	soda := testProduct("Soda", 1000, 10) // 10.00 each
	require.NoError(t, cart.AddProduct(soda))
	require.NoError(t, cart.UpdateQuantity(soda.ID, 2)) // 3 units

	assert.Equal(t, int64(3000), cart.SubTotalCents())

	bread := testProduct("Bread", 250, 5)
	require.NoError(t, cart.AddProduct(bread))
	assert.Equal(t, int64(3250), cart.SubTotalCents())
}
