package persistence

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/personal-site/internal/domain"
)

func newTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	r := &Redis{Client: goredis.NewClient(&goredis.Options{Addr: mr.Addr()})}
	t.Cleanup(r.Close)
	return r, mr
}

func TestThemeCache(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		r, _ := newTestRedis(t)

		require.NoError(t, r.CacheTheme(ctx, "user_42", domain.ThemeLight))
		theme, ok := r.CachedTheme(ctx, "user_42")
		require.True(t, ok)
		assert.Equal(t, domain.ThemeLight, theme)
	})

	t.Run("absent key is a miss", func(t *testing.T) {
		r, _ := newTestRedis(t)

		_, ok := r.CachedTheme(ctx, "anon_missing")
		assert.False(t, ok)
	})

	t.Run("corrupted value is a miss, not an error", func(t *testing.T) {
		r, mr := newTestRedis(t)
		require.NoError(t, mr.Set("theme:user_42", "purple"))

		_, ok := r.CachedTheme(ctx, "user_42")
		assert.False(t, ok)
	})

	t.Run("unreachable redis degrades to a miss", func(t *testing.T) {
		r, mr := newTestRedis(t)
		mr.Close()

		_, ok := r.CachedTheme(ctx, "user_42")
		assert.False(t, ok)
	})

	t.Run("nil wrapper is a no-op", func(t *testing.T) {
		var r *Redis
		_, ok := r.CachedTheme(ctx, "user_42")
		assert.False(t, ok)
		assert.NoError(t, r.CacheTheme(ctx, "user_42", domain.ThemeDark))
	})
}
