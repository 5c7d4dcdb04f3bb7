package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RefreshWindow is the trailing period before expiry during which a valid
// token is proactively reissued, so visitors are never silently logged out
// between visits.
const RefreshWindow = 7 * 24 * time.Hour

// IsExpired reports whether claims have expired at the given instant.
func (c *Claims) IsExpired(now time.Time) bool {
	if c.ExpiresAt == nil {
		return true
	}
	return !now.Before(c.ExpiresAt.Time)
}

// NeedsRefresh reports whether the remaining lifetime is strictly below the
// refresh window. Exactly RefreshWindow remaining does not trigger a refresh.
func (c *Claims) NeedsRefresh(now time.Time) bool {
	if c.ExpiresAt == nil {
		return true
	}
	return c.ExpiresAt.Time.Sub(now) < RefreshWindow
}

// PreferenceKey derives the durable storage key for the token's subject:
// "user_<id>" for authenticated users, "anon_<id>" for anonymous visitors.
// A claims value with neither subject cannot come out of Parse, but the read
// path stays total: it falls back to a fresh anonymous id instead of failing.
func (c *Claims) PreferenceKey() string {
	if c.UserID != nil {
		return fmt.Sprintf("user_%d", *c.UserID)
	}
	if c.AnonymousID != "" {
		return fmt.Sprintf("anon_%s", c.AnonymousID)
	}
	return fmt.Sprintf("anon_%s", uuid.NewString())
}
