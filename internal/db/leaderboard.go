package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// LeaderboardRepository aggregates mission points per user.
type LeaderboardRepository struct {
	pool *pgxpool.Pool
}

// Standings returns every user with at least one completed mission, ranked
// by total points descending. Equal totals are ordered by nickname.
func (r *LeaderboardRepository) Standings(ctx context.Context) ([]Standing, error) {
	query := `
		SELECT u.nickname, SUM(m.points) AS points
		FROM users u
		JOIN completed_missions cm ON cm.user_id = u.id
		JOIN missions m ON m.id = cm.mission_id
		GROUP BY u.id, u.nickname
		ORDER BY points DESC, u.nickname ASC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying leaderboard: %w", err)
	}
	defer rows.Close()

	standings := []Standing{}
	for rows.Next() {
		var s Standing
		if err := rows.Scan(&s.Nickname, &s.Points); err != nil {
			return nil, fmt.Errorf("scanning standing: %w", err)
		}
		standings = append(standings, s)
	}
	return standings, rows.Err()
}

// UserPoints returns the total points a user has earned. Users without
// completions, including unknown IDs, have zero points.
func (r *LeaderboardRepository) UserPoints(ctx context.Context, userID int64) (int64, error) {
	query := `
		SELECT COALESCE(SUM(m.points), 0)
		FROM completed_missions cm
		JOIN missions m ON m.id = cm.mission_id
		WHERE cm.user_id = $1
	`
	var points int64
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&points); err != nil {
		return 0, fmt.Errorf("summing user points: %w", err)
	}
	return points, nil
}
