package db

import "time"

// User is a fan who completes missions.
type User struct {
	ID       int64  `json:"id"`
	Nickname string `json:"nickname"`
}

// Track is a song that missions are attached to.
type Track struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	ArtistName string `json:"artist_name"`
}

// Mission is a task tied to one track, worth a fixed number of points.
type Mission struct {
	ID      int64  `json:"id"`
	TrackID int64  `json:"track_id"`
	Title   string `json:"title"`
	Points  int    `json:"points"`
}

// CompletedMission records that a user performed a mission.
type CompletedMission struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	MissionID   int64     `json:"mission_id"`
	CompletedAt time.Time `json:"completed_at"`
}

// Standing is one leaderboard row.
type Standing struct {
	Nickname string `json:"nickname"`
	Points   int64  `json:"points"`
}

// TrackPatch lists the track fields to change. Nil fields are left untouched.
type TrackPatch struct {
	Title      *string
	ArtistName *string
}

// Empty reports whether the patch changes nothing.
func (p TrackPatch) Empty() bool {
	return p.Title == nil && p.ArtistName == nil
}

// MissionPatch lists the mission fields to change. Nil fields are left untouched.
type MissionPatch struct {
	Title  *string
	Points *int
}

// Empty reports whether the patch changes nothing.
func (p MissionPatch) Empty() bool {
	return p.Title == nil && p.Points == nil
}
