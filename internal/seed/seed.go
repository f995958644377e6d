// Package seed loads the demo users, tracks and missions.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/justestif/go-fan-missions/internal/db"
)

// Dataset is the reference data to ensure.
type Dataset struct {
	Users  []string
	Tracks []Track
}

// Track is a track with the missions attached to it.
type Track struct {
	Title      string
	ArtistName string
	Missions   []Mission
}

// Mission is a mission title and its point value.
type Mission struct {
	Title  string
	Points int
}

// Result counts the rows a run inserted.
type Result struct {
	UsersCreated    int
	TracksCreated   int
	MissionsCreated int
}

// Default is the demo data set.
var Default = Dataset{
	Users: []string{"Alice", "Bob", "Charlie"},
	Tracks: []Track{
		{
			Title:      "Firestarter",
			ArtistName: "Rico Blaze",
			Missions: []Mission{
				{Title: "Metti like alla cover ufficiale", Points: 5},
				{Title: "Registra un mini-video usando il ritornello", Points: 25},
				{Title: "Condividi il ritornello taggando l'artista", Points: 20},
			},
		},
		{
			Title:      "Ocean Drive",
			ArtistName: "Nina Flow",
			Missions: []Mission{
				{Title: "Condividi una foto vibe 'ocean'", Points: 30},
				{Title: "Rispondi alla domanda sul testo", Points: 15},
				{Title: "Aggiungi Ocean Drive alla tua playlist", Points: 10},
			},
		},
		{
			Title:      "Midnight Echoes",
			ArtistName: "Luna Waves",
			Missions: []Mission{
				{Title: "Ascolta Midnight Echoes", Points: 10},
				{Title: "Condividi la cover della traccia su IG", Points: 10},
				{Title: "Scrivi un commento sul mood del ritornello", Points: 15},
			},
		},
	},
}

// Run ensures every row of data exists, looking each one up by its natural
// key and inserting only what is missing. Running it again is a no-op.
func Run(ctx context.Context, database *db.DB, data Dataset, logger *log.Logger) (*Result, error) {
	var result Result

	for _, nickname := range data.Users {
		created, err := ensureUser(ctx, database.Users(), nickname)
		if err != nil {
			return nil, err
		}
		if created {
			result.UsersCreated++
			logger.Debug("seeded user", "nickname", nickname)
		}
	}

	for _, t := range data.Tracks {
		track, created, err := ensureTrack(ctx, database.Tracks(), t.Title, t.ArtistName)
		if err != nil {
			return nil, err
		}
		if created {
			result.TracksCreated++
			logger.Debug("seeded track", "title", t.Title, "artist", t.ArtistName)
		}

		for _, m := range t.Missions {
			created, err := ensureMission(ctx, database.Missions(), track.ID, m)
			if err != nil {
				return nil, err
			}
			if created {
				result.MissionsCreated++
				logger.Debug("seeded mission", "track_id", track.ID, "title", m.Title)
			}
		}
	}

	logger.Info("database seeded",
		"users", result.UsersCreated,
		"tracks", result.TracksCreated,
		"missions", result.MissionsCreated,
	)
	return &result, nil
}

// ensureUser creates the user unless it exists. A concurrent seeder may
// insert the row between the lookup and the insert, so ErrConflict also
// means the row exists.
func ensureUser(ctx context.Context, users *db.UserRepository, nickname string) (bool, error) {
	_, err := users.GetByNickname(ctx, nickname)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return false, fmt.Errorf("looking up user %q: %w", nickname, err)
	}

	_, err = users.Create(ctx, nickname)
	if errors.Is(err, db.ErrConflict) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("creating user %q: %w", nickname, err)
	}
	return true, nil
}

func ensureTrack(ctx context.Context, tracks *db.TrackRepository, title, artist string) (*db.Track, bool, error) {
	track, err := tracks.GetByTitleArtist(ctx, title, artist)
	if err == nil {
		return track, false, nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return nil, false, fmt.Errorf("looking up track %q: %w", title, err)
	}

	track, err = tracks.Create(ctx, title, artist)
	if errors.Is(err, db.ErrConflict) {
		track, err = tracks.GetByTitleArtist(ctx, title, artist)
		if err != nil {
			return nil, false, fmt.Errorf("reloading track %q: %w", title, err)
		}
		return track, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("creating track %q: %w", title, err)
	}
	return track, true, nil
}

func ensureMission(ctx context.Context, missions *db.MissionRepository, trackID int64, m Mission) (bool, error) {
	_, err := missions.GetByTrackTitle(ctx, trackID, m.Title)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return false, fmt.Errorf("looking up mission %q: %w", m.Title, err)
	}

	_, err = missions.Create(ctx, trackID, m.Title, m.Points)
	if errors.Is(err, db.ErrConflict) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("creating mission %q: %w", m.Title, err)
	}
	return true, nil
}
