package repository

import "github.com/wekesa/tillpoint-api/internal/domain/entity"

// CartStore holds the in-memory sale-in-progress for each POS session.
// Carts live only for the duration of a session; they are never persisted.
type CartStore interface {
	// GetOrCreate returns the session's cart, creating an empty one if needed.
	GetOrCreate(sessionID string) *entity.Cart
	// Get returns the session's cart if one exists.
	Get(sessionID string) (*entity.Cart, bool)
	// Update runs fn against the session's cart under the store's lock,
	// creating an empty cart first if needed. The error from fn is returned
	// unchanged; on error no cart is returned.
	Update(sessionID string, fn func(cart *entity.Cart) error) (*entity.Cart, error)
	// Delete discards the session's cart entirely.
	Delete(sessionID string)
}
