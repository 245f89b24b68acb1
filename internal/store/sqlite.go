package store

import (
	"context"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/skotchmaster/storefront/internal/models"
)

// OpenSQLite opens the SQLite database backing the gorm stores and
// migrates the product and user tables.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&models.Product{}, &models.User{}); err != nil {
		return nil, err
	}
	return db, nil
}

// GormProductStore keeps the catalog in a SQLite table while honoring
// the same whole-collection Load/Save contract as the file store.
type GormProductStore struct {
	DB *gorm.DB
}

func (s *GormProductStore) Load(ctx context.Context) ([]models.Product, error) {
	var items []models.Product
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *GormProductStore) Save(ctx context.Context, products []models.Product) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Product{}).Error; err != nil {
			return err
		}
		if len(products) == 0 {
			return nil
		}
		return tx.Create(&products).Error
	})
}

type GormUserStore struct {
	DB *gorm.DB
}

func (s *GormUserStore) Load(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *GormUserStore) Save(ctx context.Context, users []models.User) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.User{}).Error; err != nil {
			return err
		}
		if len(users) == 0 {
			return nil
		}
		return tx.Create(&users).Error
	})
}
