package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Blob is a single named JSON document.
type Blob struct {
	Key   string `gorm:"primaryKey;size:191"`
	Value []byte `gorm:"type:longblob;not null"`
}

// NewMySQL returns a connected GORM DB instance.
func NewMySQL(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	return db, nil
}

// Gorm is a Gateway backed by a single blobs table.
type Gorm struct {
	db *gorm.DB
}

// NewGorm creates a database-backed gateway and migrates the blobs table.
func NewGorm(db *gorm.DB) (*Gorm, error) {
	if err := db.AutoMigrate(&Blob{}); err != nil {
		return nil, fmt.Errorf("migrate blobs table: %w", err)
	}
	return &Gorm{db: db}, nil
}

// Load implements Gateway.
func (g *Gorm) Load(ctx context.Context, key string) ([]byte, bool, error) {
	var blob Blob
	err := g.db.WithContext(ctx).Where("`key` = ?", key).First(&blob).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load blob %s: %w", key, err)
	}
	return blob.Value, true, nil
}

// Save implements Gateway.
func (g *Gorm) Save(ctx context.Context, key string, value []byte) error {
	blob := Blob{Key: key, Value: value}
	err := g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&blob).Error
	if err != nil {
		return fmt.Errorf("save blob %s: %w", key, err)
	}
	return nil
}
