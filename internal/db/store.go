package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Store bundles the generated queries with the connection they run on.
type Store struct {
	*Queries
	db  *sql.DB
	now func() time.Time
}

// NewStore wraps an open connection.
func NewStore(db *sql.DB) *Store {
	return &Store{Queries: New(db), db: db, now: time.Now}
}

// DB returns the underlying connection.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// LoadOption returns the stored value of an option and whether it exists.
func (s *Store) LoadOption(ctx context.Context, name string) (string, bool, error) {
	opt, err := s.GetOption(ctx, name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("db: get option %s: %w", name, err)
	}
	return opt.Value, true, nil
}

// SaveOption creates or replaces an option.
func (s *Store) SaveOption(ctx context.Context, name, value string) error {
	err := s.UpsertOption(ctx, UpsertOptionParams{
		Name:      name,
		Value:     value,
		UpdatedAt: s.now().Unix(),
	})
	if err != nil {
		return fmt.Errorf("db: save option %s: %w", name, err)
	}
	return nil
}

// RemoveOption deletes an option. Deleting a missing option is not an error.
func (s *Store) RemoveOption(ctx context.Context, name string) error {
	if err := s.DeleteOption(ctx, name); err != nil {
		return fmt.Errorf("db: delete option %s: %w", name, err)
	}
	return nil
}

// LoadTransient returns a cached value unless it is missing or expired.
func (s *Store) LoadTransient(ctx context.Context, name string) (string, bool, error) {
	t, err := s.GetTransient(ctx, GetTransientParams{Name: name, Now: s.now().Unix()})
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("db: get transient %s: %w", name, err)
	}
	return t.Value, true, nil
}

// SaveTransient caches a value for ttl.
func (s *Store) SaveTransient(ctx context.Context, name, value string, ttl time.Duration) error {
	err := s.SetTransient(ctx, SetTransientParams{
		Name:      name,
		Value:     value,
		ExpiresAt: s.now().Add(ttl).Unix(),
	})
	if err != nil {
		return fmt.Errorf("db: set transient %s: %w", name, err)
	}
	return nil
}

// RemoveTransient drops a cached value.
func (s *Store) RemoveTransient(ctx context.Context, name string) error {
	if err := s.DeleteTransient(ctx, name); err != nil {
		return fmt.Errorf("db: delete transient %s: %w", name, err)
	}
	return nil
}

// PurgeTransients removes every expired transient and reports how many went.
func (s *Store) PurgeTransients(ctx context.Context) (int64, error) {
	n, err := s.PurgeExpiredTransients(ctx, s.now().Unix())
	if err != nil {
		return 0, fmt.Errorf("db: purge transients: %w", err)
	}
	return n, nil
}
