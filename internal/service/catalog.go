package service

import (
	"context"
	"errors"
	"sync"

	"github.com/skotchmaster/storefront/internal/models"
	"github.com/skotchmaster/storefront/internal/store"
	"github.com/skotchmaster/storefront/internal/transport"
)

var (
	ErrValidation = errors.New("all fields required")
	ErrNotFound   = errors.New("product not found")
)

// CatalogService applies catalog operations against the product
// store. The mutex serializes load-modify-save cycles so concurrent
// mutations cannot lose updates or hand out duplicate ids.
type CatalogService struct {
	mu    sync.Mutex
	Store store.ProductStore
}

func NewCatalogService(s store.ProductStore) *CatalogService {
	return &CatalogService{Store: s}
}

func (s *CatalogService) List(ctx context.Context) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.Store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

func (s *CatalogService) Get(ctx context.Context, id uint) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.Store.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, ErrNotFound
}

func (s *CatalogService) Create(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	if req.Name == "" || req.Price == 0 || req.Image == "" || req.Description == "" {
		return nil, ErrValidation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.Store.Load(ctx)
	if err != nil {
		return nil, err
	}

	// ids grow past the current maximum, deleted ids never come back
	var maxID uint
	for _, p := range products {
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	prod := models.Product{
		ID:          maxID + 1,
		Name:        req.Name,
		Price:       req.Price,
		Image:       req.Image,
		Description: req.Description,
	}

	products = append(products, prod)
	if err := s.Store.Save(ctx, products); err != nil {
		return nil, err
	}
	return &prod, nil
}

func (s *CatalogService) Update(ctx context.Context, id uint, req transport.UpdateProductRequest) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.Store.Load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range products {
		if products[i].ID != id {
			continue
		}
		if req.Name != nil {
			products[i].Name = *req.Name
		}
		if req.Price != nil {
			products[i].Price = *req.Price
		}
		if req.Image != nil {
			products[i].Image = *req.Image
		}
		if req.Description != nil {
			products[i].Description = *req.Description
		}
		if err := s.Store.Save(ctx, products); err != nil {
			return nil, err
		}
		return &products[i], nil
	}
	return nil, ErrNotFound
}

func (s *CatalogService) Delete(ctx context.Context, id uint) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.Store.Load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range products {
		if products[i].ID != id {
			continue
		}
		removed := products[i]
		products = append(products[:i], products[i+1:]...)
		if err := s.Store.Save(ctx, products); err != nil {
			return nil, err
		}
		return &removed, nil
	}
	return nil, ErrNotFound
}
