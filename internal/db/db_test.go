package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// testDB connects to the database named by FAN_MISSIONS_TEST_DATABASE_URL
// and migrates it. Tests are skipped when the variable is unset.
func testDB(t *testing.T) *DB {
	t.Helper()

	url := os.Getenv("FAN_MISSIONS_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("FAN_MISSIONS_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	database, err := New(ctx, url)
	if err != nil {
		t.Fatalf("connecting to test database: %v", err)
	}
	t.Cleanup(database.Close)

	if err := database.Migrate(ctx); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	return database
}

// unique returns name with a random suffix so tests sharing a database do
// not collide on natural keys.
func unique(name string) string {
	return name + "-" + uuid.NewString()[:8]
}

func mustCreateUser(t *testing.T, database *DB, nickname string) *User {
	t.Helper()
	user, err := database.Users().Create(context.Background(), unique(nickname))
	if err != nil {
		t.Fatalf("creating user: %v", err)
	}
	t.Cleanup(func() { _ = database.Users().Delete(context.Background(), user.ID) })
	return user
}

func mustCreateTrack(t *testing.T, database *DB) *Track {
	t.Helper()
	track, err := database.Tracks().Create(context.Background(), unique("Firestarter"), "Rico Blaze")
	if err != nil {
		t.Fatalf("creating track: %v", err)
	}
	t.Cleanup(func() { _ = database.Tracks().Delete(context.Background(), track.ID) })
	return track
}

func mustCreateMission(t *testing.T, database *DB, trackID int64, title string, points int) *Mission {
	t.Helper()
	mission, err := database.Missions().Create(context.Background(), trackID, title, points)
	if err != nil {
		t.Fatalf("creating mission: %v", err)
	}
	return mission
}

func mustComplete(t *testing.T, database *DB, userID, missionID int64) *CompletedMission {
	t.Helper()
	completed, err := database.Completions().Complete(context.Background(), userID, missionID)
	if err != nil {
		t.Fatalf("completing mission: %v", err)
	}
	return completed
}

func TestMigrate_Idempotent(t *testing.T) {
	database := testDB(t)
	if err := database.Migrate(context.Background()); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "unique violation",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: "uq_user_nickname"},
			want: ErrConflict,
		},
		{
			name: "missing track",
			err:  &pgconn.PgError{Code: "23503", ConstraintName: "fk_mission_track"},
			want: ErrTrackNotFound,
		},
		{
			name: "missing user",
			err:  &pgconn.PgError{Code: "23503", ConstraintName: "fk_completion_user"},
			want: ErrUserNotFound,
		},
		{
			name: "missing mission",
			err:  &pgconn.PgError{Code: "23503", ConstraintName: "fk_completion_mission"},
			want: ErrMissionNotFound,
		},
		{
			name: "wrapped unique violation",
			err:  fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23505"}),
			want: ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify("op", tt.err)
			if !errors.Is(got, tt.want) {
				t.Errorf("classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassify_PassesOtherErrors(t *testing.T) {
	cause := errors.New("connection reset")
	got := classify("inserting user", cause)
	if !errors.Is(got, cause) {
		t.Errorf("expected cause to be wrapped, got %v", got)
	}
	if errors.Is(got, ErrConflict) || errors.Is(got, ErrNotFound) {
		t.Errorf("unexpected classification: %v", got)
	}
	if classify("op", nil) != nil {
		t.Error("classify(nil) should be nil")
	}
}

func TestParentErrorsAreNotFound(t *testing.T) {
	for _, err := range []error{ErrUserNotFound, ErrTrackNotFound, ErrMissionNotFound} {
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("%v should match ErrNotFound", err)
		}
	}
}

func TestPatchEmpty(t *testing.T) {
	title := "New title"
	points := 10

	if !(TrackPatch{}).Empty() {
		t.Error("zero TrackPatch should be empty")
	}
	if (TrackPatch{Title: &title}).Empty() {
		t.Error("TrackPatch with title should not be empty")
	}
	if !(MissionPatch{}).Empty() {
		t.Error("zero MissionPatch should be empty")
	}
	if (MissionPatch{Points: &points}).Empty() {
		t.Error("MissionPatch with points should not be empty")
	}
}
