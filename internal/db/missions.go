package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MissionRepository handles mission database operations.
type MissionRepository struct {
	pool *pgxpool.Pool
}

// Create inserts a new mission under an existing track.
// Returns ErrTrackNotFound if the track does not exist and ErrConflict if
// the track already has a mission with the same title.
func (r *MissionRepository) Create(ctx context.Context, trackID int64, title string, points int) (*Mission, error) {
	exists, err := (&TrackRepository{pool: r.pool}).Exists(ctx, trackID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrTrackNotFound
	}

	query := `
		INSERT INTO missions (track_id, title, points)
		VALUES ($1, $2, $3)
		RETURNING id, track_id, title, points
	`
	var mission Mission
	err = r.pool.QueryRow(ctx, query, trackID, title, points).Scan(
		&mission.ID,
		&mission.TrackID,
		&mission.Title,
		&mission.Points,
	)
	if err != nil {
		return nil, classify("inserting mission", err)
	}
	return &mission, nil
}

// List retrieves all missions.
func (r *MissionRepository) List(ctx context.Context) ([]Mission, error) {
	query := `
		SELECT id, track_id, title, points
		FROM missions
		ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying missions: %w", err)
	}
	return collectMissions(rows)
}

// ListByTrack retrieves the missions of a track.
// Returns ErrTrackNotFound if the track does not exist.
func (r *MissionRepository) ListByTrack(ctx context.Context, trackID int64) ([]Mission, error) {
	exists, err := (&TrackRepository{pool: r.pool}).Exists(ctx, trackID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrTrackNotFound
	}

	query := `
		SELECT id, track_id, title, points
		FROM missions
		WHERE track_id = $1
		ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query, trackID)
	if err != nil {
		return nil, fmt.Errorf("querying track missions: %w", err)
	}
	return collectMissions(rows)
}

// Get retrieves a mission by ID.
func (r *MissionRepository) Get(ctx context.Context, id int64) (*Mission, error) {
	query := `
		SELECT id, track_id, title, points
		FROM missions
		WHERE id = $1
	`
	return scanMission(r.pool.QueryRow(ctx, query, id))
}

// GetByTrackTitle retrieves a mission by its natural key.
func (r *MissionRepository) GetByTrackTitle(ctx context.Context, trackID int64, title string) (*Mission, error) {
	query := `
		SELECT id, track_id, title, points
		FROM missions
		WHERE track_id = $1 AND title = $2
	`
	return scanMission(r.pool.QueryRow(ctx, query, trackID, title))
}

// Update applies the non-nil fields of patch and returns the stored mission.
func (r *MissionRepository) Update(ctx context.Context, id int64, patch MissionPatch) (*Mission, error) {
	query := `
		UPDATE missions
		SET title = COALESCE($2, title),
			points = COALESCE($3, points)
		WHERE id = $1
		RETURNING id, track_id, title, points
	`
	var mission Mission
	err := r.pool.QueryRow(ctx, query, id, patch.Title, patch.Points).Scan(
		&mission.ID,
		&mission.TrackID,
		&mission.Title,
		&mission.Points,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, classify("updating mission", err)
	}
	return &mission, nil
}

// Delete removes a mission and its completions.
func (r *MissionRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM missions WHERE id = $1`
	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting mission: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanMission(row pgx.Row) (*Mission, error) {
	var mission Mission
	err := row.Scan(&mission.ID, &mission.TrackID, &mission.Title, &mission.Points)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying mission: %w", err)
	}
	return &mission, nil
}

func collectMissions(rows pgx.Rows) ([]Mission, error) {
	defer rows.Close()

	missions := []Mission{}
	for rows.Next() {
		var mission Mission
		if err := rows.Scan(
			&mission.ID,
			&mission.TrackID,
			&mission.Title,
			&mission.Points,
		); err != nil {
			return nil, fmt.Errorf("scanning mission: %w", err)
		}
		missions = append(missions, mission)
	}
	return missions, rows.Err()
}
