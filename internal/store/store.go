// Package store persists the catalog and credential collections.
//
// Each store holds one whole collection and rewrites it in full on
// every Save; there are no partial or append writes.
package store

import (
	"context"

	"github.com/skotchmaster/storefront/internal/models"
)

type ProductStore interface {
	Load(ctx context.Context) ([]models.Product, error)
	Save(ctx context.Context, products []models.Product) error
}

type UserStore interface {
	Load(ctx context.Context) ([]models.User, error)
	Save(ctx context.Context, users []models.User) error
}
