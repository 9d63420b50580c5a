package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record is one key-value row in the kv_records table.
type Record struct {
	Key       string `gorm:"primaryKey;size:255"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName overrides GORM's pluralized default.
func (Record) TableName() string { return "kv_records" }

// GormStore implements Store on a relational database table, sharing the
// application's GORM connection.
type GormStore struct {
	db            *gorm.DB
	maxValueBytes int
}

// NewGormStore migrates the kv_records table and returns a GormStore.
func NewGormStore(db *gorm.DB, maxValueBytes int) (*GormStore, error) {
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("kvstore: migrate kv_records: %w", err)
	}
	return &GormStore{
		db:            db,
		maxValueBytes: maxValueBytes,
	}, nil
}

func (s *GormStore) Get(ctx context.Context, key string) (string, bool, error) {
	var record Record
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("kvstore: read %q: %w", key, err)
	}
	return record.Value, true, nil
}

func (s *GormStore) Set(ctx context.Context, key, value string) error {
	if s.maxValueBytes > 0 && len(value) > s.maxValueBytes {
		return ErrQuotaExceeded
	}

	record := &Record{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}

	// Atomic upsert: INSERT ... ON CONFLICT (key) DO UPDATE
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(record).Error
	if err != nil {
		return fmt.Errorf("kvstore: write %q: %w", key, err)
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Delete(&Record{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("kvstore: delete %q: %w", key, err)
	}
	return nil
}
