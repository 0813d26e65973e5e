package session

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Entry struct {
	Origin    string    `gorm:"primaryKey;size:255"`
	Key       string    `gorm:"primaryKey;size:64;column:entry_key"`
	Value     string    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Entry) TableName() string {
	return "session_entries"
}

// GormStore keeps session entries in a sqlite file or a postgres table.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, err
	}
	return &GormStore{DB: db}, nil
}

func (s *GormStore) Get(ctx context.Context, origin, key string) (string, error) {
	var e Entry
	err := s.DB.WithContext(ctx).Where("origin = ? AND entry_key = ?", origin, key).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return e.Value, nil
}

func (s *GormStore) Set(ctx context.Context, origin, key, value string) error {
	e := Entry{Origin: origin, Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	return s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "origin"}, {Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
}

func (s *GormStore) Delete(ctx context.Context, origin, key string) error {
	return s.DB.WithContext(ctx).Where("origin = ? AND entry_key = ?", origin, key).Delete(&Entry{}).Error
}
