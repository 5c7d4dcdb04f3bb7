package session

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type probeResult struct {
	State         string `json:"state"`
	PreferenceKey string `json:"preference_key"`
}

func newProbeApp(tm *TokenManager) *fiber.App {
	issuer := NewIssuer(tm)
	resolver := NewResolver(issuer, zap.NewNop())

	app := fiber.New()
	app.Use(resolver.Handle)
	app.Get("/probe", func(c *fiber.Ctx) error {
		identity := FromContext(c)
		result := probeResult{}
		switch identity.State {
		case StateAuthenticated:
			result.State = "authenticated"
			result.PreferenceKey = identity.Claims.PreferenceKey()
		case StateAnonymous:
			result.State = "anonymous"
		case StateInvalid:
			result.State = "invalid"
		}
		return c.JSON(result)
	})
	app.Post("/write", func(c *fiber.Ctx) error {
		claims, err := issuer.EnsureIdentity(c, FromContext(c))
		if err != nil {
			return err
		}
		return c.JSON(probeResult{State: "ensured", PreferenceKey: claims.PreferenceKey()})
	})
	return app
}

func doProbe(t *testing.T, app *fiber.App, method, path, cookie string) (probeResult, *http.Response) {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: CookieName, Value: cookie})
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var result probeResult
	require.NoError(t, json.Unmarshal(body, &result))
	return result, resp
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	return nil
}

func TestResolver_Classification(t *testing.T) {
	tm := NewTokenManager("test-secret")
	app := newProbeApp(tm)

	t.Run("no cookie resolves anonymous and sets nothing", func(t *testing.T) {
		result, resp := doProbe(t, app, "GET", "/probe", "")
		assert.Equal(t, "anonymous", result.State)
		assert.Nil(t, sessionCookie(resp))
	})

	t.Run("valid cookie resolves authenticated", func(t *testing.T) {
		token, claims, err := tm.GenerateUserToken(42)
		require.NoError(t, err)

		result, resp := doProbe(t, app, "GET", "/probe", token)
		assert.Equal(t, "authenticated", result.State)
		assert.Equal(t, claims.PreferenceKey(), result.PreferenceKey)
		assert.Nil(t, sessionCookie(resp), "fresh token must not be rotated")
	})

	t.Run("expired cookie resolves anonymous, not invalid", func(t *testing.T) {
		token, _, err := tm.sign(expiredClaims("lapsed"))
		require.NoError(t, err)

		result, _ := doProbe(t, app, "GET", "/probe", token)
		assert.Equal(t, "anonymous", result.State)
	})

	t.Run("token signed with another secret resolves invalid", func(t *testing.T) {
		forged, _, err := NewTokenManager("attacker-secret").GenerateAnonymousToken()
		require.NoError(t, err)

		result, _ := doProbe(t, app, "GET", "/probe", forged)
		assert.Equal(t, "invalid", result.State)
	})

	t.Run("malformed cookie resolves invalid", func(t *testing.T) {
		result, _ := doProbe(t, app, "GET", "/probe", "not-a-jwt")
		assert.Equal(t, "invalid", result.State)
	})
}

func TestResolver_RotatesNearExpiryTokens(t *testing.T) {
	tm := NewTokenManager("test-secret")
	app := newProbeApp(tm)

	now := time.Now()
	nearExpiry := &Claims{
		AnonymousID: "long-time-visitor",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now.Add(-360 * 24 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(5 * 24 * time.Hour)),
		},
	}
	token, _, err := tm.sign(nearExpiry)
	require.NoError(t, err)

	result, resp := doProbe(t, app, "GET", "/probe", token)
	assert.Equal(t, "authenticated", result.State)
	assert.Equal(t, "anon_long-time-visitor", result.PreferenceKey)

	issued := sessionCookie(resp)
	require.NotNil(t, issued, "any request on a near-expiry token refreshes the cookie")
	assert.True(t, issued.HttpOnly)
	assert.True(t, issued.Secure)
	assert.Equal(t, http.SameSiteStrictMode, issued.SameSite)
	assert.Equal(t, "/", issued.Path)

	rotated, err := tm.Parse(issued.Value)
	require.NoError(t, err)
	assert.Equal(t, "long-time-visitor", rotated.AnonymousID, "rotation preserves the subject")
	assert.True(t, rotated.ExpiresAt.After(nearExpiry.ExpiresAt.Time))
}

func TestIssuer_EnsureIdentity(t *testing.T) {
	tm := NewTokenManager("test-secret")
	app := newProbeApp(tm)

	t.Run("no identity mints a fresh anonymous token", func(t *testing.T) {
		result, resp := doProbe(t, app, "POST", "/write", "")
		assert.Equal(t, "ensured", result.State)
		assert.Contains(t, result.PreferenceKey, "anon_")

		issued := sessionCookie(resp)
		require.NotNil(t, issued)

		claims, err := tm.Parse(issued.Value)
		require.NoError(t, err)
		assert.Equal(t, result.PreferenceKey, claims.PreferenceKey())
	})

	t.Run("invalid identity gets a brand-new anonymous id", func(t *testing.T) {
		forged, forgedClaims, err := NewTokenManager("attacker-secret").GenerateAnonymousToken()
		require.NoError(t, err)

		result, resp := doProbe(t, app, "POST", "/write", forged)
		assert.Equal(t, "ensured", result.State)
		assert.NotEqual(t, forgedClaims.PreferenceKey(), result.PreferenceKey,
			"a forged identity is abandoned, never adopted")

		issued := sessionCookie(resp)
		require.NotNil(t, issued)
		claims, err := tm.Parse(issued.Value)
		require.NoError(t, err)
		assert.NotEqual(t, forgedClaims.AnonymousID, claims.AnonymousID)
	})

	t.Run("valid identity far from expiry is reused without a cookie", func(t *testing.T) {
		token, _, err := tm.GenerateUserToken(42)
		require.NoError(t, err)

		result, resp := doProbe(t, app, "POST", "/write", token)
		assert.Equal(t, "user_42", result.PreferenceKey)
		assert.Nil(t, sessionCookie(resp))
	})
}
