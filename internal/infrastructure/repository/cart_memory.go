package repository

import (
	"sync"
	"time"

	"github.com/wekesa/tillpoint-api/internal/domain/entity"
	domainRepo "github.com/wekesa/tillpoint-api/internal/domain/repository"
)

type memoryCartStore struct {
	mu    sync.Mutex
	carts map[string]*entity.Cart
	ttl   time.Duration
}

// NewMemoryCartStore creates an in-memory cart store. Carts that have not
// been touched within ttl are removed by a background sweep.
func NewMemoryCartStore(ttl time.Duration) domainRepo.CartStore {
	s := &memoryCartStore{
		carts: make(map[string]*entity.Cart),
		ttl:   ttl,
	}

	// Clean up abandoned carts periodically
	go s.cleanup()

	return s
}

func (s *memoryCartStore) GetOrCreate(sessionID string) *entity.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, exists := s.carts[sessionID]
	if !exists {
		cart = entity.NewCart(sessionID)
		s.carts[sessionID] = cart
	}
	return cart
}

func (s *memoryCartStore) Get(sessionID string) (*entity.Cart, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, exists := s.carts[sessionID]
	return cart, exists
}

// Update runs fn against the session's cart while holding the store lock,
// so concurrent requests for the same session cannot interleave line edits.
func (s *memoryCartStore) Update(sessionID string, fn func(cart *entity.Cart) error) (*entity.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, exists := s.carts[sessionID]
	if !exists {
		cart = entity.NewCart(sessionID)
		s.carts[sessionID] = cart
	}

	if err := fn(cart); err != nil {
		return nil, err
	}

	cart.UpdatedAt = time.Now()
	return cart, nil
}

func (s *memoryCartStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, sessionID)
}

func (s *memoryCartStore) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()
		cutoff := time.Now().Add(-s.ttl)
		for sessionID, cart := range s.carts {
			if cart.UpdatedAt.Before(cutoff) {
				delete(s.carts, sessionID)
			}
		}
		s.mu.Unlock()
	}
}
