package persistence

import (
	"context"
	"time"

	"github.com/spec-kit/personal-site/internal/domain"
)

const (
	themeCachePrefix = "theme:"
	themeCacheTTL    = time.Hour
)

// CachedTheme returns the cached theme for a preference key. Any cache
// failure reads as a miss; the caller falls through to Postgres.
func (r *Redis) CachedTheme(ctx context.Context, key string) (domain.Theme, bool) {
	if r == nil || r.Client == nil {
		return "", false
	}
	raw, err := r.Client.Get(ctx, themeCachePrefix+key).Result()
	if err != nil {
		return "", false
	}
	theme, err := domain.ParseTheme(raw)
	if err != nil {
		return "", false
	}
	return theme, true
}

// CacheTheme stores a theme under a preference key, best effort.
func (r *Redis) CacheTheme(ctx context.Context, key string, theme domain.Theme) error {
	if r == nil || r.Client == nil {
		return nil
	}
	return r.Client.Set(ctx, themeCachePrefix+key, string(theme), themeCacheTTL).Err()
}
