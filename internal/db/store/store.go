// Package store implements the persistence layer on top of gorm.
// It exposes the find/save/delete/count verbs the engines consume, keeping
// gorm out of the engine packages so tests can substitute fakes.
package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a record is absent.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a save violates a uniqueness constraint.
	ErrDuplicate = errors.New("record already exists")

	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Store wraps a gorm connection.
type Store struct {
	db *gorm.DB
}

// New creates a Store on the given connection.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// translate maps gorm errors onto the store sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	// gorm only translates duplicate-key errors for some drivers; the sqlite
	// driver surfaces the raw constraint message instead
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint") ||
		strings.Contains(err.Error(), "Duplicate entry") {
		return ErrDuplicate
	}

	return err
}
