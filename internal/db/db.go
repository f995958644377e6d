// Package db provides PostgreSQL database access for the fan missions backend.
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Common errors.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")

	// Returned when a referenced parent row is missing.
	ErrUserNotFound    = fmt.Errorf("user %w", ErrNotFound)
	ErrTrackNotFound   = fmt.Errorf("track %w", ErrNotFound)
	ErrMissionNotFound = fmt.Errorf("mission %w", ErrNotFound)
)

// PostgreSQL SQLSTATE codes.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// DB wraps a PostgreSQL connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// New creates a new database connection pool.
func New(ctx context.Context, databaseURL string) (*DB, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing database URL: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the database connection pool.
func (db *DB) Close() {
	db.pool.Close()
}

// Ping checks that the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// Users returns a UserRepository.
func (db *DB) Users() *UserRepository {
	return &UserRepository{pool: db.pool}
}

// Tracks returns a TrackRepository.
func (db *DB) Tracks() *TrackRepository {
	return &TrackRepository{pool: db.pool}
}

// Missions returns a MissionRepository.
func (db *DB) Missions() *MissionRepository {
	return &MissionRepository{pool: db.pool}
}

// Completions returns a CompletionRepository.
func (db *DB) Completions() *CompletionRepository {
	return &CompletionRepository{pool: db.pool}
}

// Leaderboard returns a LeaderboardRepository.
func (db *DB) Leaderboard() *LeaderboardRepository {
	return &LeaderboardRepository{pool: db.pool}
}

// classify maps constraint violations onto ErrConflict and ErrNotFound and
// wraps everything else with the given operation name. A foreign key
// violation means the parent row vanished between the existence check and
// the insert.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return fmt.Errorf("%s: %w (%s)", op, ErrConflict, pgErr.ConstraintName)
		case foreignKeyViolation:
			return fmt.Errorf("%s: %w", op, missingParent(pgErr.ConstraintName))
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func missingParent(constraint string) error {
	switch constraint {
	case "fk_mission_track":
		return ErrTrackNotFound
	case "fk_completion_user":
		return ErrUserNotFound
	case "fk_completion_mission":
		return ErrMissionNotFound
	}
	return ErrNotFound
}
