package store

import (
	"context"
	"sync"

	"github.com/skotchmaster/storefront/internal/models"
)

// MemoryProductStore is an in-memory stand-in for tests.
type MemoryProductStore struct {
	mu       sync.RWMutex
	products []models.Product
}

func NewMemoryProductStore() *MemoryProductStore {
	return &MemoryProductStore{}
}

func (s *MemoryProductStore) Load(ctx context.Context) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

func (s *MemoryProductStore) Save(ctx context.Context, products []models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = make([]models.Product, len(products))
	copy(s.products, products)
	return nil
}

type MemoryUserStore struct {
	mu    sync.RWMutex
	users []models.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{}
}

func (s *MemoryUserStore) Load(ctx context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.User, len(s.users))
	copy(out, s.users)
	return out, nil
}

func (s *MemoryUserStore) Save(ctx context.Context, users []models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = make([]models.User, len(users))
	copy(s.users, users)
	return nil
}
