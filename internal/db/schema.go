package db

import (
	"context"
	"fmt"
)

// Migrate creates all tables and indexes. Safe to call multiple times.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id BIGSERIAL PRIMARY KEY,
    nickname TEXT NOT NULL,
    CONSTRAINT uq_user_nickname UNIQUE (nickname)
);

CREATE TABLE IF NOT EXISTS tracks (
    id BIGSERIAL PRIMARY KEY,
    title TEXT NOT NULL,
    artist_name TEXT NOT NULL,
    CONSTRAINT uq_track_title_artist UNIQUE (title, artist_name)
);

CREATE TABLE IF NOT EXISTS missions (
    id BIGSERIAL PRIMARY KEY,
    track_id BIGINT NOT NULL,
    title TEXT NOT NULL,
    points INTEGER NOT NULL,
    CONSTRAINT fk_mission_track FOREIGN KEY (track_id) REFERENCES tracks(id) ON DELETE CASCADE,
    CONSTRAINT uq_mission_track_title UNIQUE (track_id, title)
);

CREATE INDEX IF NOT EXISTS idx_missions_track_id ON missions(track_id);

CREATE TABLE IF NOT EXISTS completed_missions (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL,
    mission_id BIGINT NOT NULL,
    completed_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    CONSTRAINT fk_completion_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
    CONSTRAINT fk_completion_mission FOREIGN KEY (mission_id) REFERENCES missions(id) ON DELETE CASCADE,
    CONSTRAINT uq_user_mission UNIQUE (user_id, mission_id)
);

CREATE INDEX IF NOT EXISTS idx_completed_missions_user_id ON completed_missions(user_id);
CREATE INDEX IF NOT EXISTS idx_completed_missions_mission_id ON completed_missions(mission_id);
`
