package theme

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sysu-ecnc-dev/leave-planner/backend/internal/domain"
)

// ClientHintHeader carries the browser's colour scheme when the page asked
// for it with Accept-CH.
const ClientHintHeader = "Sec-CH-Prefers-Color-Scheme"

type Store interface {
	Get(ctx context.Context, id string) (domain.Theme, error)
	Set(ctx context.Context, id string, theme domain.Theme) error
}

func redisKey(id string) string {
	return fmt.Sprintf("theme_%s", id)
}

// RedisStore keeps preferences without expiry so they outlive the planner
// session.
type RedisStore struct {
	client  *redis.Client
	timeout time.Duration
}

func NewRedisStore(client *redis.Client, timeout time.Duration) *RedisStore {
	return &RedisStore{client: client, timeout: timeout}
}

func (s *RedisStore) Get(ctx context.Context, id string) (domain.Theme, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	value, err := s.client.Get(ctx, redisKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.ThemeAuto, nil
		}
		return domain.ThemeAuto, err
	}

	theme, _ := domain.ParseTheme(value)
	return theme, nil
}

func (s *RedisStore) Set(ctx context.Context, id string, theme domain.Theme) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.client.Set(ctx, redisKey(id), string(theme), 0).Err()
}

type MemoryStore struct {
	mu     sync.RWMutex
	themes map[string]domain.Theme
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{themes: make(map[string]domain.Theme)}
}

func (s *MemoryStore) Get(_ context.Context, id string) (domain.Theme, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if theme, ok := s.themes[id]; ok {
		return theme, nil
	}
	return domain.ThemeAuto, nil
}

func (s *MemoryStore) Set(_ context.Context, id string, theme domain.Theme) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.themes[id] = theme
	return nil
}

// Preferences never fails: a broken store reads as auto and writes are
// dropped, the chosen theme then only lasts for the current response.
type Preferences struct {
	store Store
}

func NewPreferences(store Store) *Preferences {
	return &Preferences{store: store}
}

func (p *Preferences) Get(ctx context.Context, id string) domain.Theme {
	theme, err := p.store.Get(ctx, id)
	if err != nil {
		slog.Debug("theme preference unavailable", "id", id, "error", err)
		return domain.ThemeAuto
	}
	return theme
}

// Toggle moves the preference one step along the cycle and returns the new
// value, saved or not.
func (p *Preferences) Toggle(ctx context.Context, id string, systemDark bool) domain.Theme {
	next := Next(p.Get(ctx, id), systemDark)
	if err := p.store.Set(ctx, id, next); err != nil {
		slog.Debug("theme preference not saved", "id", id, "error", err)
	}
	return next
}

// Next cycles auto -> the opposite of the system scheme -> ... -> auto.
func Next(current domain.Theme, systemDark bool) domain.Theme {
	switch current {
	case domain.ThemeLight:
		return domain.ThemeDark
	case domain.ThemeDark:
		return domain.ThemeAuto
	default:
		if systemDark {
			return domain.ThemeLight
		}
		return domain.ThemeDark
	}
}

// SystemDark reads the colour-scheme client hint.
func SystemDark(r *http.Request) bool {
	return r.Header.Get(ClientHintHeader) == "dark"
}
