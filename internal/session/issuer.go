package session

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// CookieMaxAge is how long the browser keeps the session cookie. It is a
// transport lifetime, independent of token expiry: token expiry governs
// trust, cookie presence does not.
const CookieMaxAge = 365 * 24 * time.Hour

// Issuer mints session tokens on demand and writes them back as cookies.
type Issuer struct {
	tokens *TokenManager
}

// NewIssuer builds an issuer over the given token manager.
func NewIssuer(tokens *TokenManager) *Issuer {
	return &Issuer{tokens: tokens}
}

// EnsureIdentity guarantees the request has a usable identity before a
// durable write, minting and setting a cookie when needed:
//
//   - authenticated, refresh not due: reuse claims as-is, no cookie
//   - authenticated, refresh due: rotate, preserving the subject
//   - anonymous or invalid: brand-new anonymous identity; preferences under
//     an expired or forged id are deliberately abandoned
func (i *Issuer) EnsureIdentity(c *fiber.Ctx, identity Identity) (*Claims, error) {
	if identity.Authenticated() {
		if !identity.Claims.NeedsRefresh(time.Now()) {
			return identity.Claims, nil
		}
		return i.Rotate(c, identity.Claims)
	}

	token, claims, err := i.tokens.GenerateAnonymousToken()
	if err != nil {
		return nil, err
	}
	setAuthCookie(c, token)
	return claims, nil
}

// Rotate reissues a token for the same subject with fresh timestamps and
// schedules the cookie write. The derived preference key is unchanged.
func (i *Issuer) Rotate(c *fiber.Ctx, claims *Claims) (*Claims, error) {
	token, rotated, err := i.tokens.RotateToken(claims)
	if err != nil {
		return nil, err
	}
	setAuthCookie(c, token)
	return rotated, nil
}

func setAuthCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(CookieMaxAge.Seconds()),
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}
