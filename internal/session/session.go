package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/minutia-ai/minutia/internal/cache"
)

// State is the caller-owned working state of one user session: the current
// transcript, the minutes generated from it, and the settings used. It is
// passed around explicitly; nothing in the service holds it as a global.
type State struct {
	ID         uuid.UUID `json:"id"`
	Transcript string    `json:"transcript,omitempty"`
	Minutes    string    `json:"minutes,omitempty"`
	Settings   Settings  `json:"settings"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Settings are the per-session generation preferences.
type Settings struct {
	Provider      string `json:"provider,omitempty"`
	Model         string `json:"model,omitempty"`
	Language      string `json:"language,omitempty"`
	TemplateName  string `json:"template_name,omitempty"`
	WindowSeconds int    `json:"window_seconds,omitempty"`
}

// Store keeps session state in Redis with a sliding TTL.
type Store struct {
	cache *cache.Cache
	ttl   time.Duration
}

const DefaultTTL = 24 * time.Hour

func NewStore(c *cache.Cache, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{cache: c, ttl: ttl}
}

func key(id uuid.UUID) string {
	return "session:" + id.String()
}

// New creates and persists an empty session.
func (s *Store) New(ctx context.Context) (*State, error) {
	st := &State{ID: uuid.New(), UpdatedAt: time.Now()}
	if err := s.Save(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*State, error) {
	var st State
	if err := s.cache.Get(ctx, key(id), &st); err != nil {
		if err == cache.ErrMiss {
			return nil, fmt.Errorf("session %s not found", id)
		}
		return nil, err
	}
	return &st, nil
}

func (s *Store) Save(ctx context.Context, st *State) error {
	st.UpdatedAt = time.Now()
	return s.cache.Set(ctx, key(st.ID), st, s.ttl)
}

// Clear drops the session entirely.
func (s *Store) Clear(ctx context.Context, id uuid.UUID) error {
	return s.cache.Delete(ctx, key(id))
}
