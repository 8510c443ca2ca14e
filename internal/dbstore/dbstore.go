// Package dbstore is the database-backed store. Unlike the workbook backend
// it appends submissions as single-row inserts, so concurrent submitters
// cannot clobber each other's records; stale remaining-quota snapshots can
// still let a project run past its totals, which the summary view surfaces.
package dbstore

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"ppm-service/internal/model"
	"ppm-service/internal/store"
)

// DBStore is a store.Store backed by GORM.
type DBStore struct {
	db *gorm.DB
}

var _ store.Store = (*DBStore)(nil)

// New wraps an initialized GORM connection.
func New(db *gorm.DB) *DBStore {
	return &DBStore{db: db}
}

// Load reads the reference tables and the full submissions log in insertion
// order.
func (s *DBStore) Load() (*store.Dataset, error) {
	var ds store.Dataset
	if err := s.db.Order("owner, name").Find(&ds.Projects).Error; err != nil {
		return nil, fmt.Errorf("load projects: %w", err)
	}
	if err := s.db.Order("name").Find(&ds.Technicians).Error; err != nil {
		return nil, fmt.Errorf("load technicians: %w", err)
	}
	if err := s.db.Order("id").Find(&ds.Submissions).Error; err != nil {
		return nil, fmt.Errorf("load submissions: %w", err)
	}
	return &ds, nil
}

// AppendSubmission inserts one row into the append-only log.
func (s *DBStore) AppendSubmission(sub model.Submission) error {
	if err := s.db.Create(&sub).Error; err != nil {
		return fmt.Errorf("%w: %v", store.ErrPersist, err)
	}
	return nil
}

// FindUser looks up a phone number in the users table.
func (s *DBStore) FindUser(phone string) (*model.User, error) {
	var user model.User
	err := s.db.Where("phone = ?", phone).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

// CreateUser inserts one registry entry.
func (s *DBStore) CreateUser(user model.User) error {
	if err := s.db.Create(&user).Error; err != nil {
		return fmt.Errorf("%w: %v", store.ErrPersist, err)
	}
	return nil
}

// Seed copies reference data from another store (typically the workbook) into
// empty reference tables. Existing rows are left alone so registry and quota
// edits made directly in the database survive restarts.
func (s *DBStore) Seed(src store.Store) error {
	var count int64
	if err := s.db.Model(&model.Project{}).Count(&count).Error; err != nil {
		return fmt.Errorf("seed check: %w", err)
	}
	if count > 0 {
		return nil
	}

	ds, err := src.Load()
	if err != nil {
		return fmt.Errorf("seed source: %w", err)
	}
	if len(ds.Projects) > 0 {
		if err := s.db.Create(&ds.Projects).Error; err != nil {
			return fmt.Errorf("seed projects: %w", err)
		}
	}
	if len(ds.Technicians) > 0 {
		if err := s.db.Create(&ds.Technicians).Error; err != nil {
			return fmt.Errorf("seed technicians: %w", err)
		}
	}
	if len(ds.Submissions) > 0 {
		if err := s.db.Create(&ds.Submissions).Error; err != nil {
			return fmt.Errorf("seed submissions: %w", err)
		}
	}
	return nil
}
