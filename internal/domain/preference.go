package domain

import (
	"fmt"
	"time"
)

// Theme enumerates the site color schemes a visitor can store.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// DefaultTheme is served whenever no stored preference can be read.
const DefaultTheme = ThemeDark

// ParseTheme validates a raw theme value. Values outside the enumerated set
// are rejected before any storage call is made, never coerced.
func ParseTheme(raw string) (Theme, error) {
	switch Theme(raw) {
	case ThemeLight, ThemeDark:
		return Theme(raw), nil
	default:
		return "", fmt.Errorf("unknown theme %q", raw)
	}
}

// Preference is a stored per-subject setting, keyed by the preference key
// derived from session claims rather than by the raw token.
type Preference struct {
	Key       string
	Theme     Theme
	UpdatedAt time.Time
}
