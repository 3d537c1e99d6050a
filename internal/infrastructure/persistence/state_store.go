package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aaushop/storefront/internal/domain/cart"
	"github.com/aaushop/storefront/internal/domain/session"
	"github.com/aaushop/storefront/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// State record keys. A snapshot and a guest cart are mutually exclusive:
// saving one removes the other.
const (
	keySnapshot  = "session_snapshot"
	keyGuestCart = "guest_cart"
	keyAuthToken = "auth_token"
)

// StateRecord is a single persisted key/value entry. Values are JSON except
// for the raw auth token.
type StateRecord struct {
	Key       string    `gorm:"primaryKey;size:64"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StateRecord) TableName() string {
	return "state_records"
}

// GormStateStore implements session.LocalStore on the local SQLite database
type GormStateStore struct {
	db *gorm.DB
}

// NewGormStateStore creates the store and migrates its schema
func NewGormStateStore(db *gorm.DB) (*GormStateStore, error) {
	if err := db.AutoMigrate(&StateRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate state records: %w", err)
	}
	return &GormStateStore{db: db}, nil
}

// LoadSnapshot loads the persisted authenticated session snapshot
func (s *GormStateStore) LoadSnapshot(ctx context.Context) (*session.Snapshot, error) {
	raw, err := s.load(ctx, keySnapshot)
	if err != nil {
		return nil, err
	}
	var snap session.Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, fmt.Errorf("%w: session snapshot: %v", shared.ErrCorruptRecord, err)
	}
	return &snap, nil
}

// SaveSnapshot persists the authenticated snapshot and removes any guest
// cart in the same transaction.
func (s *GormStateStore) SaveSnapshot(ctx context.Context, snap *session.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode session snapshot: %w", err)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := upsert(tx, keySnapshot, string(data)); err != nil {
			return err
		}
		return tx.Delete(&StateRecord{}, "key = ?", keyGuestCart).Error
	})
}

// DeleteSnapshot removes the persisted snapshot
func (s *GormStateStore) DeleteSnapshot(ctx context.Context) error {
	return s.delete(ctx, keySnapshot)
}

// LoadGuestCart loads the persisted anonymous cart
func (s *GormStateStore) LoadGuestCart(ctx context.Context) (cart.Cart, error) {
	raw, err := s.load(ctx, keyGuestCart)
	if err != nil {
		return nil, err
	}
	var c cart.Cart
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return nil, fmt.Errorf("%w: guest cart: %v", shared.ErrCorruptRecord, err)
	}
	return c, nil
}

// SaveGuestCart persists the anonymous cart
func (s *GormStateStore) SaveGuestCart(ctx context.Context, c cart.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode guest cart: %w", err)
	}
	return upsert(s.db.WithContext(ctx), keyGuestCart, string(data))
}

// LoadToken loads the persisted auth token
func (s *GormStateStore) LoadToken(ctx context.Context) (string, error) {
	return s.load(ctx, keyAuthToken)
}

// SaveToken persists the auth token
func (s *GormStateStore) SaveToken(ctx context.Context, token string) error {
	return upsert(s.db.WithContext(ctx), keyAuthToken, token)
}

// Clear removes all persisted session state
func (s *GormStateStore) Clear(ctx context.Context) error {
	return s.db.WithContext(ctx).
		Delete(&StateRecord{}, "key IN ?", []string{keySnapshot, keyGuestCart, keyAuthToken}).
		Error
}

func (s *GormStateStore) load(ctx context.Context, key string) (string, error) {
	var record StateRecord
	if err := s.db.WithContext(ctx).First(&record, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", shared.ErrNotFound
		}
		return "", err
	}
	return record.Value, nil
}

func (s *GormStateStore) delete(ctx context.Context, key string) error {
	result := s.db.WithContext(ctx).Delete(&StateRecord{}, "key = ?", key)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func upsert(db *gorm.DB, key, value string) error {
	record := StateRecord{Key: key, Value: value, UpdatedAt: time.Now()}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&record).Error
}

// Ensure GormStateStore implements LocalStore
var _ session.LocalStore = (*GormStateStore)(nil)
