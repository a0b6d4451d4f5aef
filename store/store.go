package store

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lasse00042-cmyk/HandUp/models"
)

// UserStore is the persistence contract consumed by the core: a full-table
// load and a full-table write. Implementations do not guarantee isolation
// between concurrent operations beyond last-writer-wins at the table level.
type UserStore interface {
	LoadAll(ctx context.Context) ([]*models.User, error)
	SaveAll(ctx context.Context, users []*models.User) error
}

// GormStore persists user records through a gorm-managed database.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a store backed by the given database handle.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// LoadAll returns every user record ordered by creation time.
// Records are normalized by the model's AfterFind hook.
func (s *GormStore) LoadAll(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// SaveAll upserts the given records in one transaction.
func (s *GormStore) SaveAll(ctx context.Context, users []*models.User) error {
	if len(users) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range users {
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(u).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
