package store

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store holds the gorm client and provides access to repositories.
type Store struct {
	db *gorm.DB
}

// Open connects to the Postgres database at dsn and runs auto-migration.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(&User{}, &Session{}, &Turn{}, &OracleRequestLog{}); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	log.Println("database connected and migrated")
	return &Store{db: db}, nil
}

// NewStore wraps an existing gorm handle. Used by tests.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB returns the underlying gorm handle for raw queries.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Sessions returns a SessionRepo backed by this store.
func (s *Store) Sessions() SessionRepo {
	return &sessionRepo{db: s.db}
}

// Users returns a UserRepo backed by this store.
func (s *Store) Users() UserRepo {
	return &userRepo{db: s.db}
}

// OracleLogs returns an OracleLogRepo backed by this store.
func (s *Store) OracleLogs() OracleLogRepo {
	return &oracleLogRepo{db: s.db}
}
