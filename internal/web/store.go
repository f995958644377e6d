package web

import (
	"context"

	"github.com/justestif/go-fan-missions/internal/db"
)

// UserStore abstracts user persistence for testing.
type UserStore interface {
	Create(ctx context.Context, nickname string) (*db.User, error)
	List(ctx context.Context) ([]db.User, error)
	Get(ctx context.Context, id int64) (*db.User, error)
	GetByNickname(ctx context.Context, nickname string) (*db.User, error)
	Delete(ctx context.Context, id int64) error
}

// TrackStore abstracts track persistence.
type TrackStore interface {
	Create(ctx context.Context, title, artistName string) (*db.Track, error)
	List(ctx context.Context) ([]db.Track, error)
	Get(ctx context.Context, id int64) (*db.Track, error)
	Update(ctx context.Context, id int64, patch db.TrackPatch) (*db.Track, error)
	Delete(ctx context.Context, id int64) error
}

// MissionStore abstracts mission persistence.
type MissionStore interface {
	Create(ctx context.Context, trackID int64, title string, points int) (*db.Mission, error)
	List(ctx context.Context) ([]db.Mission, error)
	ListByTrack(ctx context.Context, trackID int64) ([]db.Mission, error)
	Get(ctx context.Context, id int64) (*db.Mission, error)
	Update(ctx context.Context, id int64, patch db.MissionPatch) (*db.Mission, error)
	Delete(ctx context.Context, id int64) error
}

// CompletionStore abstracts completed mission persistence.
type CompletionStore interface {
	Complete(ctx context.Context, userID, missionID int64) (*db.CompletedMission, error)
	List(ctx context.Context) ([]db.CompletedMission, error)
	ListByUser(ctx context.Context, userID int64) ([]db.CompletedMission, error)
	Get(ctx context.Context, id int64) (*db.CompletedMission, error)
	Delete(ctx context.Context, id int64) error
}

// LeaderboardStore abstracts point aggregation.
type LeaderboardStore interface {
	Standings(ctx context.Context) ([]db.Standing, error)
	UserPoints(ctx context.Context, userID int64) (int64, error)
}

// Pinger reports whether the backing database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Store groups everything the handlers read and write.
type Store struct {
	Users       UserStore
	Tracks      TrackStore
	Missions    MissionStore
	Completions CompletionStore
	Leaderboard LeaderboardStore
	Health      Pinger
}

// NewStore builds a Store backed by PostgreSQL.
func NewStore(database *db.DB) Store {
	return Store{
		Users:       database.Users(),
		Tracks:      database.Tracks(),
		Missions:    database.Missions(),
		Completions: database.Completions(),
		Leaderboard: database.Leaderboard(),
		Health:      database,
	}
}
