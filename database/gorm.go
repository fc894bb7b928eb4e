package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"spendbook/models"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormStore keeps expenses in a relational database through gorm.
type GormStore struct {
	db *gorm.DB
}

// gormLogWriter routes gorm's logger into zerolog.
type gormLogWriter struct{}

func (gormLogWriter) Printf(format string, args ...any) {
	log.Warn().Str("component", "gorm").Msgf(format, args...)
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: logger.New(gormLogWriter{}, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// OpenMySQL opens a MySQL store. The DSN needs parseTime=True.
func OpenMySQL(dsn string) (*GormStore, error) {
	db, err := gorm.Open(mysql.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("connecting to mysql: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	return NewGormStore(db)
}

// OpenSQLite opens an SQLite store backed by the pure Go driver.
func OpenSQLite(dsn string) (*GormStore, error) {
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}

	// every connection to :memory: is a separate database
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	return NewGormStore(db)
}

// NewGormStore migrates the schema and wraps db.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&models.Expense{}); err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}
	return &GormStore{db: db}, nil
}

// Create inserts a new expense
func (s *GormStore) Create(ctx context.Context, f models.ExpenseFields) (*models.Expense, error) {
	expense := &models.Expense{}
	expense.Apply(f)

	if err := s.db.WithContext(ctx).Create(expense).Error; err != nil {
		return nil, fmt.Errorf("creating expense: %w", err)
	}
	return expense, nil
}

// List returns all expenses sorted by date descending
func (s *GormStore) List(ctx context.Context) ([]models.Expense, error) {
	expenses := []models.Expense{}
	if err := s.db.WithContext(ctx).Order("date DESC").Order("created_at DESC").Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	return expenses, nil
}

// Get loads one expense
func (s *GormStore) Get(ctx context.Context, id string) (*models.Expense, error) {
	var expense models.Expense
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&expense).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading expense %s: %w", id, err)
	}
	return &expense, nil
}

// Update performs a conditional write matching the loaded version
func (s *GormStore) Update(ctx context.Context, current *models.Expense, f models.ExpenseFields) (*models.Expense, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Expense{}).
		Where("id = ? AND version = ?", current.ID, current.Version).
		Updates(map[string]any{
			"title":      f.Title,
			"amount":     f.Amount,
			"category":   f.Category,
			"date":       f.Date,
			"version":    current.Version + 1,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return nil, fmt.Errorf("updating expense %s: %w", current.ID, res.Error)
	}

	if res.RowsAffected == 0 {
		// either deleted or bumped by another writer
		if _, err := s.Get(ctx, current.ID); err != nil {
			return nil, err
		}
		return nil, ErrConflict
	}

	return s.Get(ctx, current.ID)
}

// Delete removes one expense
func (s *GormStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Expense{})
	if res.Error != nil {
		return fmt.Errorf("deleting expense %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Ping checks the connection
func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool
func (s *GormStore) Close(context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
