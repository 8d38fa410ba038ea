package theme

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/leave-planner/backend/internal/domain"
)

type failingStore struct{}

func (failingStore) Get(context.Context, string) (domain.Theme, error) {
	return domain.ThemeDark, errors.New("store down")
}

func (failingStore) Set(context.Context, string, domain.Theme) error {
	return errors.New("store down")
}

func TestNext(t *testing.T) {
	tests := []struct {
		current    domain.Theme
		systemDark bool
		want       domain.Theme
	}{
		{domain.ThemeAuto, false, domain.ThemeDark},
		{domain.ThemeAuto, true, domain.ThemeLight},
		{domain.ThemeLight, false, domain.ThemeDark},
		{domain.ThemeLight, true, domain.ThemeDark},
		{domain.ThemeDark, false, domain.ThemeAuto},
		{domain.ThemeDark, true, domain.ThemeAuto},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Next(tt.current, tt.systemDark), "%s dark=%v", tt.current, tt.systemDark)
	}
}

func TestPreferencesMemory(t *testing.T) {
	ctx := context.Background()
	p := NewPreferences(NewMemoryStore())

	assert.Equal(t, domain.ThemeAuto, p.Get(ctx, "a"))
	assert.Equal(t, domain.ThemeDark, p.Toggle(ctx, "a", false))
	assert.Equal(t, domain.ThemeDark, p.Get(ctx, "a"))
	assert.Equal(t, domain.ThemeAuto, p.Toggle(ctx, "a", false))
	assert.Equal(t, domain.ThemeAuto, p.Get(ctx, "b"))
}

func TestPreferencesSwallowErrors(t *testing.T) {
	ctx := context.Background()
	p := NewPreferences(failingStore{})

	assert.Equal(t, domain.ThemeAuto, p.Get(ctx, "a"))
	assert.Equal(t, domain.ThemeLight, p.Toggle(ctx, "a", true))
}

func TestPreferencesUnreachableRedis(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	defer client.Close()

	p := NewPreferences(NewRedisStore(client, 200*time.Millisecond))
	assert.Equal(t, domain.ThemeAuto, p.Get(context.Background(), "a"))
	assert.Equal(t, domain.ThemeDark, p.Toggle(context.Background(), "a", false))
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	ctx := context.Background()
	store := NewRedisStore(client, 2*time.Second)
	id := uuid.NewString()
	defer client.Del(ctx, redisKey(id))

	theme, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeAuto, theme)

	require.NoError(t, store.Set(ctx, id, domain.ThemeLight))
	theme, err = store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeLight, theme)
}

func TestSystemDark(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	assert.False(t, SystemDark(r))

	r.Header.Set(ClientHintHeader, "dark")
	assert.True(t, SystemDark(r))
}
