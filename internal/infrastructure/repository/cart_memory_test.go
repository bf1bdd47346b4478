package repository

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wekesa/tillpoint-api/internal/domain/entity"
)

func TestMemoryCartStore(t *testing.T) {
	t.Run("GetOrCreate returns the same cart per session", func(t *testing.T) {
		store := NewMemoryCartStore(time.Hour)

		a := store.GetOrCreate("till-1")
		b := store.GetOrCreate("till-1")
		other := store.GetOrCreate("till-2")

		assert.Same(t, a, b)
		assert.NotSame(t, a, other)
		assert.Equal(t, "till-1", a.SessionID)
	})

	t.Run("Get reports a missing session", func(t *testing.T) {
		store := NewMemoryCartStore(time.Hour)

		_, ok := store.Get("till-1")
		assert.False(t, ok)

		store.GetOrCreate("till-1")
		cart, ok := store.Get("till-1")
		require.True(t, ok)
		assert.True(t, cart.IsEmpty())
	})

	t.Run("Update creates the cart and applies the mutation", func(t *testing.T) {
		store := NewMemoryCartStore(time.Hour)
		product := &entity.Product{ID: uuid.New(), Name: "Soda", SellingPrice: 150, Quantity: 5, IsActive: true}

		cart, err := store.Update("till-1", func(cart *entity.Cart) error {
			return cart.AddProduct(product)
		})
		require.NoError(t, err)
		assert.Equal(t, 1, cart.TotalItems())

		stored, ok := store.Get("till-1")
		require.True(t, ok)
		assert.Equal(t, 1, stored.TotalItems())
	})

	t.Run("Update propagates the mutation error", func(t *testing.T) {
		store := NewMemoryCartStore(time.Hour)
		boom := errors.New("boom")

		_, err := store.Update("till-1", func(cart *entity.Cart) error {
			return boom
		})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("Delete discards the session", func(t *testing.T) {
		store := NewMemoryCartStore(time.Hour)
		store.GetOrCreate("till-1")

		store.Delete("till-1")

		_, ok := store.Get("till-1")
		assert.False(t, ok)
	})

	t.Run("concurrent updates do not lose increments", func(t *testing.T) {
		store := NewMemoryCartStore(time.Hour)
		product := &entity.Product{ID: uuid.New(), Name: "Soda", SellingPrice: 150, Quantity: 1000, IsActive: true}

		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = store.Update("till-1", func(cart *entity.Cart) error {
					return cart.AddProduct(product)
				})
			}()
		}
		wg.Wait()

		cart, ok := store.Get("till-1")
		require.True(t, ok)
		assert.Equal(t, 50, cart.TotalItems())
	})
}
