package db

import (
	"context"
	"errors"
	"strings"

	"sketchboard/internal/config"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrDuplicateID marks an insert that collided with an existing sketch id.
var ErrDuplicateID = errors.New("sketch id already exists")

// StorageError wraps any failure reaching or executing against the store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Is(target error) bool {
	return target == ErrDuplicateID && isUniqueViolation(e.Err)
}

// SketchStore lists and appends sketches through GORM.
type SketchStore struct {
	db       *gorm.DB
	strategy config.IDStrategy
}

func NewSketchStore(conn *gorm.DB, strategy config.IDStrategy) *SketchStore {
	return &SketchStore{db: conn, strategy: strategy}
}

// List returns every sketch, newest first by the strategy's ordering column.
func (s *SketchStore) List(ctx context.Context) ([]Sketch, error) {
	sketches := make([]Sketch, 0)
	if err := s.db.WithContext(ctx).
		Select("id", "name", "drawing", "created").
		Order(orderFor(s.strategy)).
		Find(&sketches).Error; err != nil {
		return nil, &StorageError{Op: "list sketches", Err: err}
	}
	return sketches, nil
}

// Insert persists sketch. A zero ID is assigned by the database; any other
// value is written as given.
func (s *SketchStore) Insert(ctx context.Context, sketch *Sketch) error {
	if err := s.db.WithContext(ctx).Create(sketch).Error; err != nil {
		return &StorageError{Op: "insert sketch", Err: err}
	}
	return nil
}

// Ping checks that a pooled connection can reach the database.
func (s *SketchStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return &StorageError{Op: "ping", Err: err}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return &StorageError{Op: "ping", Err: err}
	}
	return nil
}

func orderFor(strategy config.IDStrategy) string {
	if strategy == config.IDTimestamp {
		return "created desc, id desc"
	}
	return "id desc"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
