package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/personal-site/internal/domain"
	"github.com/spec-kit/personal-site/internal/events"
	"github.com/spec-kit/personal-site/internal/persistence"
	"github.com/spec-kit/personal-site/internal/repository"
	"github.com/spec-kit/personal-site/internal/session"
)

// ThemeService coordinates theme reads and writes around the preference
// store and the redis cache.
type ThemeService struct {
	prefs      repository.PreferenceRepository
	cache      *persistence.Redis
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// ThemeDependencies encapsulates requirements for the theme service.
type ThemeDependencies struct {
	PreferenceRepo repository.PreferenceRepository
	Cache          *persistence.Redis
	Dispatcher     events.Dispatcher
	Logger         *zap.Logger
}

// NewThemeService builds the service.
func NewThemeService(deps ThemeDependencies) *ThemeService {
	return &ThemeService{
		prefs:      deps.PreferenceRepo,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// Theme returns the stored theme for the request identity. The read path is
// total: anonymous requests, missing records, and storage failures all
// resolve to the default theme, never an error.
func (s *ThemeService) Theme(ctx context.Context, identity session.Identity) domain.Theme {
	if !identity.Authenticated() {
		return domain.DefaultTheme
	}

	key := identity.Claims.PreferenceKey()
	if theme, ok := s.cache.CachedTheme(ctx, key); ok {
		return theme
	}

	pref, err := s.prefs.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn("theme lookup failed, serving default",
				zap.String("preference_key", key), zap.Error(err))
		}
		return domain.DefaultTheme
	}

	if err := s.cache.CacheTheme(ctx, key, pref.Theme); err != nil {
		s.logger.Debug("theme cache write failed", zap.Error(err))
	}
	return pref.Theme
}

// SetTheme validates and upserts a theme for the given preference key.
// Storage failures surface to the caller as a failed write; the record is
// never created with an out-of-set value.
func (s *ThemeService) SetTheme(ctx context.Context, key string, theme domain.Theme) error {
	if _, err := domain.ParseTheme(string(theme)); err != nil {
		return err
	}

	if err := s.prefs.Upsert(ctx, key, theme); err != nil {
		s.logger.Warn("theme upsert failed",
			zap.String("preference_key", key), zap.Error(err))
		return err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventThemeChanged,
		Timestamp: time.Now(),
		Payload: events.ThemeChangedPayload{
			PreferenceKey: key,
			Theme:         theme,
		},
	})
	return nil
}
