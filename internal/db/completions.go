package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CompletionRepository handles completed mission database operations.
type CompletionRepository struct {
	pool *pgxpool.Pool
}

// Complete records that a user completed a mission.
// Returns ErrMissionNotFound or ErrUserNotFound when either side is missing,
// and ErrConflict if the user already completed the mission.
func (r *CompletionRepository) Complete(ctx context.Context, userID, missionID int64) (*CompletedMission, error) {
	var missionExists, userExists bool
	err := r.pool.QueryRow(ctx, `
		SELECT
			EXISTS (SELECT 1 FROM missions WHERE id = $1),
			EXISTS (SELECT 1 FROM users WHERE id = $2)
	`, missionID, userID).Scan(&missionExists, &userExists)
	if err != nil {
		return nil, fmt.Errorf("checking completion references: %w", err)
	}
	if !missionExists {
		return nil, ErrMissionNotFound
	}
	if !userExists {
		return nil, ErrUserNotFound
	}

	query := `
		INSERT INTO completed_missions (user_id, mission_id, completed_at)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, mission_id, completed_at
	`
	var completed CompletedMission
	err = r.pool.QueryRow(ctx, query, userID, missionID, time.Now()).Scan(
		&completed.ID,
		&completed.UserID,
		&completed.MissionID,
		&completed.CompletedAt,
	)
	if err != nil {
		return nil, classify("inserting completed mission", err)
	}
	return &completed, nil
}

// List retrieves all completed missions.
func (r *CompletionRepository) List(ctx context.Context) ([]CompletedMission, error) {
	query := `
		SELECT id, user_id, mission_id, completed_at
		FROM completed_missions
		ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying completed missions: %w", err)
	}
	return collectCompletions(rows)
}

// ListByUser retrieves the missions a user completed. Unknown users yield
// an empty list.
func (r *CompletionRepository) ListByUser(ctx context.Context, userID int64) ([]CompletedMission, error) {
	query := `
		SELECT id, user_id, mission_id, completed_at
		FROM completed_missions
		WHERE user_id = $1
		ORDER BY completed_at, id
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying user completed missions: %w", err)
	}
	return collectCompletions(rows)
}

// Get retrieves a completed mission by ID.
func (r *CompletionRepository) Get(ctx context.Context, id int64) (*CompletedMission, error) {
	query := `
		SELECT id, user_id, mission_id, completed_at
		FROM completed_missions
		WHERE id = $1
	`
	var completed CompletedMission
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&completed.ID,
		&completed.UserID,
		&completed.MissionID,
		&completed.CompletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying completed mission: %w", err)
	}
	return &completed, nil
}

// Delete removes a completed mission by ID.
func (r *CompletionRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM completed_missions WHERE id = $1`
	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting completed mission: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func collectCompletions(rows pgx.Rows) ([]CompletedMission, error) {
	defer rows.Close()

	completions := []CompletedMission{}
	for rows.Next() {
		var completed CompletedMission
		if err := rows.Scan(
			&completed.ID,
			&completed.UserID,
			&completed.MissionID,
			&completed.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning completed mission: %w", err)
		}
		completions = append(completions, completed)
	}
	return completions, rows.Err()
}
