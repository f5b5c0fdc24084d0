package service

import (
	"context"
	"sync"
	"time"

	dmn "github.com/beka-birhanu/vinom-range/domain"
	"github.com/beka-birhanu/vinom-range/grid"
	"github.com/beka-birhanu/vinom-range/service/i"
	"github.com/google/uuid"
)

type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) Info(msg string)    { l.add("INFO " + msg) }
func (l *recordingLogger) Warning(msg string) { l.add("WARNING " + msg) }
func (l *recordingLogger) Error(msg string)   { l.add("ERROR " + msg) }

func (l *recordingLogger) add(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, line)
}

type memoryHistory struct {
	mu      sync.Mutex
	records map[uuid.UUID][]i.MoveRecord
	fail    error
}

func newMemoryHistory() *memoryHistory {
	return &memoryHistory{records: make(map[uuid.UUID][]i.MoveRecord)}
}

func (h *memoryHistory) Record(_ context.Context, playerID uuid.UUID, to grid.Coordinate, at time.Time) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.fail != nil {
		return h.fail
	}
	h.records[playerID] = append(h.records[playerID], i.MoveRecord{To: to, At: at})
	return nil
}

func (h *memoryHistory) Recent(_ context.Context, playerID uuid.UUID, limit int64) ([]i.MoveRecord, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	all := h.records[playerID]
	out := make([]i.MoveRecord, 0, len(all))
	for j := len(all) - 1; j >= 0 && int64(len(out)) < limit; j-- {
		out = append(out, all[j])
	}
	return out, nil
}

func (h *memoryHistory) Count(_ context.Context, playerID uuid.UUID) (int64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return int64(len(h.records[playerID])), nil
}

type memoryUserRepo struct {
	mu      sync.Mutex
	users   map[uuid.UUID]*dmn.User
	failing error
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[uuid.UUID]*dmn.User)}
}

func (r *memoryUserRepo) Save(user *dmn.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, u := range r.users {
		if u.Username == user.Username && id != user.ID {
			return dmn.ErrUsernameTaken
		}
	}
	r.users[user.ID] = user
	return nil
}

func (r *memoryUserRepo) ByID(id uuid.UUID) (*dmn.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, dmn.ErrUserNotFound
}

func (r *memoryUserRepo) ByUsername(username string) (*dmn.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, dmn.ErrUserNotFound
}

func (r *memoryUserRepo) SaveOrigin(id uuid.UUID, origin grid.Coordinate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing != nil {
		return r.failing
	}
	u, ok := r.users[id]
	if !ok {
		return dmn.ErrUserNotFound
	}
	u.LastOrigin = &origin
	return nil
}

type stubTokenizer struct {
	claims map[string]interface{}
	exp    time.Duration
}

func (s *stubTokenizer) Generate(claims map[string]interface{}, exp time.Duration) (string, error) {
	s.claims = claims
	s.exp = exp
	return "signed-token", nil
}

func (s *stubTokenizer) Decode(string) (map[string]interface{}, error) {
	return s.claims, nil
}
