package database

import (
	"fmt"
	"time"

	"github.com/vocidicassinoprotonme-hash/turni-lavoro-pwa/pkg/storage"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Slot represents the slots table, one JSON or scalar blob per key
type Slot struct {
	Key       string    `gorm:"primaryKey;size:64" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MasterUser represents the master_users table
type MasterUser struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// Options selects the database. A non-empty DSN means postgres, otherwise sqlite at Path.
type Options struct {
	DSN  string
	Path string
}

// InitDB initializes the database connection and migrates the schema
func InitDB(opts Options) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	if opts.DSN != "" {
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  opts.DSN,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	} else {
		path := opts.Path
		if path == "" {
			path = "turni.db"
		}
		db, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
	}
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := db.AutoMigrate(&Slot{}, &MasterUser{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// KV stores slots in the slots table
type KV struct {
	DB *gorm.DB
}

var _ storage.Batcher = (*KV)(nil)

// Get returns the value of key
func (s *KV) Get(key string) (string, bool, error) {
	var slot Slot
	err := s.DB.Where("key = ?", key).Limit(1).Find(&slot).Error
	if err != nil {
		return "", false, err
	}
	if slot.Key == "" {
		return "", false, nil
	}
	return slot.Value, true, nil
}

// Set writes key with a single-query upsert (supported by both Postgres and SQLite)
func (s *KV) Set(key, value string) error {
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&Slot{Key: key, Value: value}).Error
}

// Batch runs fn in a transaction, so every slot written through the given KV is
// committed together or not at all
func (s *KV) Batch(fn func(storage.KV) error) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return fn(&KV{DB: tx})
	})
}
