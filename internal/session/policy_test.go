package session

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func claimsExpiringIn(d time.Duration) *Claims {
	now := time.Now()
	return &Claims{
		AnonymousID: "visitor",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
		},
	}
}

func TestClaims_IsExpired(t *testing.T) {
	now := time.Now()

	assert.False(t, claimsExpiringIn(time.Hour).IsExpired(now))
	assert.True(t, claimsExpiringIn(-time.Second).IsExpired(now))

	// exactly at expiry counts as expired
	c := claimsExpiringIn(0)
	assert.True(t, c.IsExpired(c.ExpiresAt.Time))
}

func TestClaims_NeedsRefresh(t *testing.T) {
	tests := []struct {
		name      string
		remaining time.Duration
		want      bool
	}{
		{name: "well before the window", remaining: 200 * 24 * time.Hour, want: false},
		{name: "exactly seven days is not refreshed", remaining: RefreshWindow, want: false},
		{name: "just inside the window", remaining: RefreshWindow - time.Second, want: true},
		{name: "one day left", remaining: 24 * time.Hour, want: true},
		{name: "already expired", remaining: -time.Hour, want: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := claimsExpiringIn(tc.remaining)
			// evaluate against the exact instant used to build the claims
			got := c.NeedsRefresh(c.ExpiresAt.Time.Add(-tc.remaining))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestClaims_PreferenceKey(t *testing.T) {
	t.Run("user subject", func(t *testing.T) {
		c := &Claims{UserID: int64Ptr(42)}
		assert.Equal(t, "user_42", c.PreferenceKey())
	})

	t.Run("anonymous subject", func(t *testing.T) {
		c := &Claims{AnonymousID: "f3b1"}
		assert.Equal(t, "anon_f3b1", c.PreferenceKey())
	})

	t.Run("user id wins when both are somehow present", func(t *testing.T) {
		c := &Claims{UserID: int64Ptr(7), AnonymousID: "f3b1"}
		assert.Equal(t, "user_7", c.PreferenceKey())
	})

	t.Run("stable across calls", func(t *testing.T) {
		c := &Claims{AnonymousID: "f3b1"}
		assert.Equal(t, c.PreferenceKey(), c.PreferenceKey())

		u := &Claims{UserID: int64Ptr(42)}
		assert.Equal(t, u.PreferenceKey(), u.PreferenceKey())
	})

	t.Run("subjectless claims fall back to a fresh anonymous key", func(t *testing.T) {
		c := &Claims{}
		first := c.PreferenceKey()
		second := c.PreferenceKey()
		assert.True(t, len(first) > len("anon_"))
		assert.Contains(t, first, "anon_")
		// the fallback id is generated per call, not remembered
		assert.NotEqual(t, first, second)
	})
}
