package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wekesa/tillpoint-api/internal/domain/entity"
)

func catalogProduct(name, category string, stock int, active bool) entity.Product {
	return entity.Product{
		ID:           uuid.New(),
		Name:         name,
		Category:     category,
		SellingPrice: 1000,
		Quantity:     stock,
		IsActive:     active,
	}
}

func TestFilterSellable(t *testing.T) {
	products := []entity.Product{
		catalogProduct("Coca Cola 500ml", "Drinks", 10, true),
		catalogProduct("Fanta Orange", "Drinks", 0, true),    // out of stock
		catalogProduct("White Bread", "Bakery", 5, true),
		catalogProduct("Old Stock Juice", "Drinks", 3, false), // inactive
	}

	t.Run("no filters returns active in-stock products only", func(t *testing.T) {
		result := FilterSellable(products, "", "")

		names := make([]string, 0, len(result))
		for _, p := range result {
			names = append(names, p.Name)
		}
		assert.Equal(t, []string{"Coca Cola 500ml", "White Bread"}, names)
	})

	t.Run("category restricts to an exact match", func(t *testing.T) {
		result := FilterSellable(products, "", "Drinks")

		assert.Len(t, result, 1)
		assert.Equal(t, "Coca Cola 500ml", result[0].Name)
	})

	t.Run("category match is exact, not substring", func(t *testing.T) {
		result := FilterSellable(products, "", "Drink")
		assert.Empty(t, result)
	})

	t.Run("query matches name case-insensitively", func(t *testing.T) {
		result := FilterSellable(products, "cola", "")

		assert.Len(t, result, 1)
		assert.Equal(t, "Coca Cola 500ml", result[0].Name)
	})

	t.Run("query also matches the category text", func(t *testing.T) {
		result := FilterSellable(products, "bakery", "")

		assert.Len(t, result, 1)
		assert.Equal(t, "White Bread", result[0].Name)
	})

	t.Run("query and category combine", func(t *testing.T) {
		result := FilterSellable(products, "bread", "Drinks")
		assert.Empty(t, result)
	})

	t.Run("no match is an empty result, not an error", func(t *testing.T) {
		result := FilterSellable(products, "nonexistent", "")
		assert.NotNil(t, result)
		assert.Empty(t, result)
	})

	t.Run("surrounding whitespace in the query is ignored", func(t *testing.T) {
		result := FilterSellable(products, "  COLA  ", "")
		assert.Len(t, result, 1)
	})
}

func TestListSellableSpansWholeCatalog(t *testing.T) {
	// A sell screen over a catalog bigger than one management page must
	// still see every product.
	repo := newFakeProductRepo()
	for i := 0; i < 250; i++ {
		p := testCheckoutProduct(fmt.Sprintf("Item %03d", i), 500, 5)
		repo.products[p.ID] = p
	}

	svc := NewCatalogService(repo)
	result, err := svc.ListSellable(context.Background(), "", "")
	require.NoError(t, err)
	assert.Len(t, result, 250)
}
