// filepath: internal/repository/repository.go
package repository

import (
	"context"
	"database/sql"
	"errors"
	"flexnas/internal/config"
	"flexnas/internal/logging"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite" // SQLite driver
)

// Errors returned by the repository layer.
var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicate        = errors.New("duplicate record")
	ErrInvalidReference = errors.New("invalid reference")
)

const defaultBusyTimeoutMs = 5000

// Repository wraps the SQLite handle shared by all table accessors.
type Repository struct {
	DB      *sql.DB
	Builder squirrel.StatementBuilderType // SQL Query Builder

	now func() time.Time
}

// NewRepository opens (or creates) the SQLite database named in cfg.
// The schema is not touched; see EnsureSchemaBootstrapped.
func NewRepository(cfg *config.Config) (*Repository, error) {
	busy := cfg.Database.BusyTimeoutMs
	if busy == 0 {
		busy = defaultBusyTimeoutMs
	}
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)", cfg.Database.Path, busy)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection: transactions are serialized by the pool.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logging.Log.Debugf("Repository: opened database at '%s'", cfg.Database.Path)

	return &Repository{
		DB:      db,
		Builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		now:     time.Now,
	}, nil
}

// Close releases the database handle.
func (s *Repository) Close() error {
	return s.DB.Close()
}

// SetClock overrides the time source used for stored timestamps.
func (s *Repository) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Repository) timestamp() int64 {
	return s.now().Unix()
}

// withTx runs fn inside a transaction and commits when fn returns nil.
func (s *Repository) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// translateError maps SQLite constraint failures onto repository errors.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return fmt.Errorf("%w: %s", ErrDuplicate, uniqueColumn(msg))
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return ErrInvalidReference
	}
	return err
}

// uniqueColumn extracts "users.email" from "UNIQUE constraint failed: users.email".
func uniqueColumn(msg string) string {
	idx := strings.Index(msg, "UNIQUE constraint failed: ")
	if idx < 0 {
		return ""
	}
	col := msg[idx+len("UNIQUE constraint failed: "):]
	if end := strings.IndexAny(col, " ),"); end >= 0 {
		col = col[:end]
	}
	return col
}

func unixToTime(v int64) time.Time {
	return time.Unix(v, 0).UTC()
}

func nullUnixToTime(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := unixToTime(v.Int64)
	return &t
}

// checkAffected converts a zero-row update or delete into ErrNotFound.
func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
