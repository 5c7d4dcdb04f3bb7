package events

import (
	"time"

	"github.com/spec-kit/personal-site/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventThemeChanged EventType = "theme_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ThemeChangedPayload payload.
type ThemeChangedPayload struct {
	PreferenceKey string       `json:"preference_key"`
	Theme         domain.Theme `json:"theme"`
}
