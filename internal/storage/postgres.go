package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/dmehra2102/prod-golang-projects/meddesk/internal/config"
)

var _ Store = (*PostgresStore)(nil)

type blob struct {
	Key       string    `gorm:"column:key;type:text;primaryKey"`
	Value     []byte    `gorm:"column:value;type:bytea;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (blob) TableName() string {
	return "meddesk_blobs"
}

// PostgresStore keeps each blob as one row in a keyed table.
type PostgresStore struct {
	db *gorm.DB
}

func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// OpenPostgres connects, configures the pool and migrates the blob table.
func OpenPostgres(cfg config.DatabaseConfig) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: cfg.DSN(),
	}), &gorm.Config{
		Logger:      gormlogger.Default.LogMode(gormlogger.Silent),
		PrepareStmt: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := db.AutoMigrate(&blob{}); err != nil {
		return nil, fmt.Errorf("migrating blob table: %w", err)
	}

	return NewPostgresStore(db), nil
}

func (p *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var b blob
	err := p.db.WithContext(ctx).First(&b, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("loading blob %s: %w", key, err)
	}
	return b.Value, nil
}

func (p *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	err := p.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&blob{Key: key, Value: value}).Error
	if err != nil {
		return fmt.Errorf("storing blob %s: %w", key, err)
	}
	return nil
}
