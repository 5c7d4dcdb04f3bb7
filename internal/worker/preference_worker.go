package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/personal-site/internal/events"
	"github.com/spec-kit/personal-site/internal/observability"
	"github.com/spec-kit/personal-site/internal/persistence"
)

// StartPreferenceWorker subscribes cache maintenance to preference events:
// when a theme changes, the redis entry for that key is refreshed so
// subsequent reads skip Postgres, and the change is counted.
func StartPreferenceWorker(dispatcher events.Dispatcher, cache *persistence.Redis, metrics *observability.Metrics, logger *zap.Logger) {
	if dispatcher == nil {
		return
	}
	dispatcher.Subscribe(events.EventThemeChanged, func(ctx context.Context, event events.Event) error {
		payload, ok := event.Payload.(events.ThemeChangedPayload)
		if !ok {
			return nil
		}
		metrics.RecordThemeChange(string(payload.Theme))
		if err := cache.CacheTheme(ctx, payload.PreferenceKey, payload.Theme); err != nil {
			logger.Debug("theme cache refresh failed",
				zap.String("preference_key", payload.PreferenceKey), zap.Error(err))
		}
		return nil
	})
}
