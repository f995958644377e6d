package web

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/justestif/go-fan-missions/internal/db"
)

// memStore is an in-memory implementation of every store interface,
// following the same not-found and conflict rules as the database.
type memStore struct {
	mu          sync.Mutex
	nextID      int64
	users       map[int64]db.User
	tracks      map[int64]db.Track
	missions    map[int64]db.Mission
	completions map[int64]db.CompletedMission

	// failWith makes every call return this error when set.
	failWith error
	// pingErr is returned from Ping.
	pingErr error
}

func newMemStore() *memStore {
	return &memStore{
		users:       make(map[int64]db.User),
		tracks:      make(map[int64]db.Track),
		missions:    make(map[int64]db.Mission),
		completions: make(map[int64]db.CompletedMission),
	}
}

func (m *memStore) store() Store {
	return Store{
		Users:       memUsers{m},
		Tracks:      memTracks{m},
		Missions:    memMissions{m},
		Completions: memCompletions{m},
		Leaderboard: memLeaderboard{m},
		Health:      m,
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) Ping(ctx context.Context) error {
	return m.pingErr
}

func sortedKeys[V any](items map[int64]V) []int64 {
	keys := make([]int64, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

type memUsers struct{ m *memStore }

func (u memUsers) Create(ctx context.Context, nickname string) (*db.User, error) {
	u.m.mu.Lock()
	defer u.m.mu.Unlock()
	if u.m.failWith != nil {
		return nil, u.m.failWith
	}
	for _, existing := range u.m.users {
		if existing.Nickname == nickname {
			return nil, db.ErrConflict
		}
	}
	user := db.User{ID: u.m.id(), Nickname: nickname}
	u.m.users[user.ID] = user
	return &user, nil
}

func (u memUsers) List(ctx context.Context) ([]db.User, error) {
	u.m.mu.Lock()
	defer u.m.mu.Unlock()
	if u.m.failWith != nil {
		return nil, u.m.failWith
	}
	users := []db.User{}
	for _, id := range sortedKeys(u.m.users) {
		users = append(users, u.m.users[id])
	}
	return users, nil
}

func (u memUsers) Get(ctx context.Context, id int64) (*db.User, error) {
	u.m.mu.Lock()
	defer u.m.mu.Unlock()
	if u.m.failWith != nil {
		return nil, u.m.failWith
	}
	user, ok := u.m.users[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &user, nil
}

func (u memUsers) GetByNickname(ctx context.Context, nickname string) (*db.User, error) {
	u.m.mu.Lock()
	defer u.m.mu.Unlock()
	for _, user := range u.m.users {
		if user.Nickname == nickname {
			return &user, nil
		}
	}
	return nil, db.ErrNotFound
}

func (u memUsers) Delete(ctx context.Context, id int64) error {
	u.m.mu.Lock()
	defer u.m.mu.Unlock()
	if _, ok := u.m.users[id]; !ok {
		return db.ErrNotFound
	}
	delete(u.m.users, id)
	for cid, c := range u.m.completions {
		if c.UserID == id {
			delete(u.m.completions, cid)
		}
	}
	return nil
}

type memTracks struct{ m *memStore }

func (t memTracks) Create(ctx context.Context, title, artistName string) (*db.Track, error) {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	for _, existing := range t.m.tracks {
		if existing.Title == title && existing.ArtistName == artistName {
			return nil, db.ErrConflict
		}
	}
	track := db.Track{ID: t.m.id(), Title: title, ArtistName: artistName}
	t.m.tracks[track.ID] = track
	return &track, nil
}

func (t memTracks) List(ctx context.Context) ([]db.Track, error) {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	tracks := []db.Track{}
	for _, id := range sortedKeys(t.m.tracks) {
		tracks = append(tracks, t.m.tracks[id])
	}
	return tracks, nil
}

func (t memTracks) Get(ctx context.Context, id int64) (*db.Track, error) {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	track, ok := t.m.tracks[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &track, nil
}

func (t memTracks) Update(ctx context.Context, id int64, patch db.TrackPatch) (*db.Track, error) {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	track, ok := t.m.tracks[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	if patch.Title != nil {
		track.Title = *patch.Title
	}
	if patch.ArtistName != nil {
		track.ArtistName = *patch.ArtistName
	}
	for otherID, other := range t.m.tracks {
		if otherID != id && other.Title == track.Title && other.ArtistName == track.ArtistName {
			return nil, db.ErrConflict
		}
	}
	t.m.tracks[id] = track
	return &track, nil
}

func (t memTracks) Delete(ctx context.Context, id int64) error {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	if _, ok := t.m.tracks[id]; !ok {
		return db.ErrNotFound
	}
	delete(t.m.tracks, id)
	for mid, mission := range t.m.missions {
		if mission.TrackID == id {
			t.m.deleteMission(mid)
		}
	}
	return nil
}

type memMissions struct{ m *memStore }

func (s memMissions) Create(ctx context.Context, trackID int64, title string, points int) (*db.Mission, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.tracks[trackID]; !ok {
		return nil, db.ErrTrackNotFound
	}
	for _, existing := range s.m.missions {
		if existing.TrackID == trackID && existing.Title == title {
			return nil, db.ErrConflict
		}
	}
	mission := db.Mission{ID: s.m.id(), TrackID: trackID, Title: title, Points: points}
	s.m.missions[mission.ID] = mission
	return &mission, nil
}

func (s memMissions) List(ctx context.Context) ([]db.Mission, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	missions := []db.Mission{}
	for _, id := range sortedKeys(s.m.missions) {
		missions = append(missions, s.m.missions[id])
	}
	return missions, nil
}

func (s memMissions) ListByTrack(ctx context.Context, trackID int64) ([]db.Mission, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.tracks[trackID]; !ok {
		return nil, db.ErrTrackNotFound
	}
	missions := []db.Mission{}
	for _, id := range sortedKeys(s.m.missions) {
		if s.m.missions[id].TrackID == trackID {
			missions = append(missions, s.m.missions[id])
		}
	}
	return missions, nil
}

func (s memMissions) Get(ctx context.Context, id int64) (*db.Mission, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	mission, ok := s.m.missions[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &mission, nil
}

func (s memMissions) Update(ctx context.Context, id int64, patch db.MissionPatch) (*db.Mission, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	mission, ok := s.m.missions[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	if patch.Title != nil {
		mission.Title = *patch.Title
	}
	if patch.Points != nil {
		mission.Points = *patch.Points
	}
	s.m.missions[id] = mission
	return &mission, nil
}

func (s memMissions) Delete(ctx context.Context, id int64) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.missions[id]; !ok {
		return db.ErrNotFound
	}
	s.m.deleteMission(id)
	return nil
}

// deleteMission removes a mission and its completions. Callers hold mu.
func (m *memStore) deleteMission(id int64) {
	delete(m.missions, id)
	for cid, c := range m.completions {
		if c.MissionID == id {
			delete(m.completions, cid)
		}
	}
}

type memCompletions struct{ m *memStore }

func (c memCompletions) Complete(ctx context.Context, userID, missionID int64) (*db.CompletedMission, error) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	if _, ok := c.m.missions[missionID]; !ok {
		return nil, db.ErrMissionNotFound
	}
	if _, ok := c.m.users[userID]; !ok {
		return nil, db.ErrUserNotFound
	}
	for _, existing := range c.m.completions {
		if existing.UserID == userID && existing.MissionID == missionID {
			return nil, db.ErrConflict
		}
	}
	completed := db.CompletedMission{
		ID:          c.m.id(),
		UserID:      userID,
		MissionID:   missionID,
		CompletedAt: time.Now(),
	}
	c.m.completions[completed.ID] = completed
	return &completed, nil
}

func (c memCompletions) List(ctx context.Context) ([]db.CompletedMission, error) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	out := []db.CompletedMission{}
	for _, id := range sortedKeys(c.m.completions) {
		out = append(out, c.m.completions[id])
	}
	return out, nil
}

func (c memCompletions) ListByUser(ctx context.Context, userID int64) ([]db.CompletedMission, error) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	out := []db.CompletedMission{}
	for _, id := range sortedKeys(c.m.completions) {
		if c.m.completions[id].UserID == userID {
			out = append(out, c.m.completions[id])
		}
	}
	return out, nil
}

func (c memCompletions) Get(ctx context.Context, id int64) (*db.CompletedMission, error) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	completed, ok := c.m.completions[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &completed, nil
}

func (c memCompletions) Delete(ctx context.Context, id int64) error {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	if _, ok := c.m.completions[id]; !ok {
		return db.ErrNotFound
	}
	delete(c.m.completions, id)
	return nil
}

type memLeaderboard struct{ m *memStore }

func (l memLeaderboard) points() map[int64]int64 {
	totals := make(map[int64]int64)
	for _, c := range l.m.completions {
		totals[c.UserID] += int64(l.m.missions[c.MissionID].Points)
	}
	return totals
}

func (l memLeaderboard) Standings(ctx context.Context) ([]db.Standing, error) {
	l.m.mu.Lock()
	defer l.m.mu.Unlock()
	standings := []db.Standing{}
	for userID, pts := range l.points() {
		standings = append(standings, db.Standing{Nickname: l.m.users[userID].Nickname, Points: pts})
	}
	sort.Slice(standings, func(i, j int) bool {
		if standings[i].Points != standings[j].Points {
			return standings[i].Points > standings[j].Points
		}
		return standings[i].Nickname < standings[j].Nickname
	})
	return standings, nil
}

func (l memLeaderboard) UserPoints(ctx context.Context, userID int64) (int64, error) {
	l.m.mu.Lock()
	defer l.m.mu.Unlock()
	return l.points()[userID], nil
}

// errBoom stands in for an unexpected database failure.
var errBoom = errors.New("connection reset")

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}
