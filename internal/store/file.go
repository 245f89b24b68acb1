package store

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"github.com/skotchmaster/storefront/internal/logging"
	"github.com/skotchmaster/storefront/internal/models"
)

type productDocument struct {
	Products []models.Product `json:"products"`
}

// userRecord is the on-disk shape of a user. The API model hides the
// password hash from JSON, the document must keep it.
type userRecord struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type userDocument struct {
	Users []userRecord `json:"users"`
}

// FileProductStore keeps the catalog in a single JSON document on
// disk. Save rewrites the document in place without an atomic rename,
// so a crash mid-write can corrupt it.
type FileProductStore struct {
	Path string
}

func NewFileProductStore(path string) *FileProductStore {
	return &FileProductStore{Path: path}
}

func (s *FileProductStore) Load(ctx context.Context) ([]models.Product, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var doc productDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		// a malformed document degrades to an empty catalog
		logging.FromContext(ctx).Warn("malformed product document, treating as empty", "path", s.Path, "error", err)
		return nil, nil
	}
	return doc.Products, nil
}

func (s *FileProductStore) Save(ctx context.Context, products []models.Product) error {
	if products == nil {
		products = []models.Product{}
	}
	data, err := json.MarshalIndent(productDocument{Products: products}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path, data, 0o644)
}

// FileUserStore is the credential counterpart of FileProductStore.
type FileUserStore struct {
	Path string
}

func NewFileUserStore(path string) *FileUserStore {
	return &FileUserStore{Path: path}
}

func (s *FileUserStore) Load(ctx context.Context) ([]models.User, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var doc userDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		logging.FromContext(ctx).Warn("malformed user document, treating as empty", "path", s.Path, "error", err)
		return nil, nil
	}

	users := make([]models.User, 0, len(doc.Users))
	for _, r := range doc.Users {
		users = append(users, models.User{ID: r.ID, Username: r.Username, PasswordHash: r.Password})
	}
	return users, nil
}

func (s *FileUserStore) Save(ctx context.Context, users []models.User) error {
	records := make([]userRecord, 0, len(users))
	for _, u := range users {
		records = append(records, userRecord{ID: u.ID, Username: u.Username, Password: u.PasswordHash})
	}
	data, err := json.MarshalIndent(userDocument{Users: records}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path, data, 0o644)
}
