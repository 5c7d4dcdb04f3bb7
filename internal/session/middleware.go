package session

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CookieName is the fixed name of the session cookie.
const CookieName = "auth_token"

const identityKey = "session_identity"

// Resolver classifies the session cookie on every request and stores the
// resulting Identity in the request locals before any handler runs. When a
// valid token is inside its refresh window the resolver also rotates it, so
// any request on a near-expiry token refreshes the cookie.
type Resolver struct {
	issuer *Issuer
	logger *zap.Logger
}

// NewResolver constructs the middleware.
func NewResolver(issuer *Issuer, logger *zap.Logger) *Resolver {
	return &Resolver{issuer: issuer, logger: logger}
}

// Handle resolves the request identity.
func (r *Resolver) Handle(c *fiber.Ctx) error {
	identity := r.resolve(c)

	if identity.Authenticated() && identity.Claims.NeedsRefresh(time.Now()) {
		rotated, err := r.issuer.Rotate(c, identity.Claims)
		if err != nil {
			// keep serving on the old claims; they are still valid
			r.logger.Warn("token rotation failed", zap.Error(err))
		} else {
			identity.Claims = rotated
		}
	}

	c.Locals(identityKey, identity)
	return c.Next()
}

func (r *Resolver) resolve(c *fiber.Ctx) Identity {
	cookie := c.Cookies(CookieName)
	if cookie == "" {
		return Identity{State: StateAnonymous}
	}

	claims, err := r.issuer.tokens.Parse(cookie)
	switch {
	case err == nil:
		return Identity{State: StateAuthenticated, Claims: claims}
	case errors.Is(err, ErrExpiredToken):
		return Identity{State: StateAnonymous}
	default:
		r.logger.Debug("invalid session cookie",
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		return Identity{State: StateInvalid}
	}
}

// FromContext retrieves the identity resolved for the current request.
// Requests that never passed through the resolver read as anonymous.
func FromContext(c *fiber.Ctx) Identity {
	val := c.Locals(identityKey)
	if val == nil {
		return Identity{State: StateAnonymous}
	}
	identity, ok := val.(Identity)
	if !ok {
		return Identity{State: StateAnonymous}
	}
	return identity
}
