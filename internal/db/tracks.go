package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TrackRepository handles track database operations.
type TrackRepository struct {
	pool *pgxpool.Pool
}

// Create inserts a new track. Returns ErrConflict if the (title, artist)
// pair already exists.
func (r *TrackRepository) Create(ctx context.Context, title, artistName string) (*Track, error) {
	query := `
		INSERT INTO tracks (title, artist_name)
		VALUES ($1, $2)
		RETURNING id, title, artist_name
	`
	var track Track
	err := r.pool.QueryRow(ctx, query, title, artistName).Scan(
		&track.ID,
		&track.Title,
		&track.ArtistName,
	)
	if err != nil {
		return nil, classify("inserting track", err)
	}
	return &track, nil
}

// List retrieves all tracks.
func (r *TrackRepository) List(ctx context.Context) ([]Track, error) {
	query := `SELECT id, title, artist_name FROM tracks ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying tracks: %w", err)
	}
	defer rows.Close()

	tracks := []Track{}
	for rows.Next() {
		var track Track
		if err := rows.Scan(&track.ID, &track.Title, &track.ArtistName); err != nil {
			return nil, fmt.Errorf("scanning track: %w", err)
		}
		tracks = append(tracks, track)
	}
	return tracks, rows.Err()
}

// Get retrieves a track by ID.
func (r *TrackRepository) Get(ctx context.Context, id int64) (*Track, error) {
	query := `
		SELECT id, title, artist_name
		FROM tracks
		WHERE id = $1
	`
	return scanTrack(r.pool.QueryRow(ctx, query, id))
}

// GetByTitleArtist retrieves a track by its natural key.
func (r *TrackRepository) GetByTitleArtist(ctx context.Context, title, artistName string) (*Track, error) {
	query := `
		SELECT id, title, artist_name
		FROM tracks
		WHERE title = $1 AND artist_name = $2
	`
	return scanTrack(r.pool.QueryRow(ctx, query, title, artistName))
}

// Update applies the non-nil fields of patch and returns the stored track.
func (r *TrackRepository) Update(ctx context.Context, id int64, patch TrackPatch) (*Track, error) {
	query := `
		UPDATE tracks
		SET title = COALESCE($2, title),
			artist_name = COALESCE($3, artist_name)
		WHERE id = $1
		RETURNING id, title, artist_name
	`
	var track Track
	err := r.pool.QueryRow(ctx, query, id, patch.Title, patch.ArtistName).Scan(
		&track.ID,
		&track.Title,
		&track.ArtistName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, classify("updating track", err)
	}
	return &track, nil
}

// Delete removes a track together with its missions and their completions.
func (r *TrackRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM tracks WHERE id = $1`
	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting track: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Exists reports whether a track with the given ID exists.
func (r *TrackRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM tracks WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking track: %w", err)
	}
	return exists, nil
}

func scanTrack(row pgx.Row) (*Track, error) {
	var track Track
	err := row.Scan(&track.ID, &track.Title, &track.ArtistName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying track: %w", err)
	}
	return &track, nil
}
