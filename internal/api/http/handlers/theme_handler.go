package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/personal-site/internal/api/dto"
	"github.com/spec-kit/personal-site/internal/domain"
	"github.com/spec-kit/personal-site/internal/service"
	"github.com/spec-kit/personal-site/internal/session"
)

// ThemeHandler serves theme preference reads and writes. Neither endpoint
// ever returns a 5xx: failures degrade to the default theme plus
// success:false so the client may resubmit.
type ThemeHandler struct {
	themes *service.ThemeService
	issuer *session.Issuer
	logger *zap.Logger
}

// NewThemeHandler constructs handler.
func NewThemeHandler(themes *service.ThemeService, issuer *session.Issuer, logger *zap.Logger) *ThemeHandler {
	return &ThemeHandler{themes: themes, issuer: issuer, logger: logger}
}

// Get handles GET /api/theme. Reads never mint a token: with no identity
// there is nothing to rotate, so an empty cookie jar stays empty.
func (h *ThemeHandler) Get(c *fiber.Ctx) error {
	identity := session.FromContext(c)
	theme := h.themes.Theme(c.UserContext(), identity)

	return c.JSON(dto.ThemeResponse{Theme: string(theme), Success: true})
}

// Set handles POST /api/theme.
func (h *ThemeHandler) Set(c *fiber.Ctx) error {
	var req dto.ThemeRequest
	if err := c.BodyParser(&req); err != nil {
		return failedWrite(c)
	}

	// Validate before touching storage or minting a token: an invalid
	// value must leave both the store and the cookie jar untouched.
	theme, err := domain.ParseTheme(req.Theme)
	if err != nil {
		return failedWrite(c)
	}

	identity := session.FromContext(c)
	claims, err := h.issuer.EnsureIdentity(c, identity)
	if err != nil {
		h.logger.Error("session issuance failed", zap.Error(err))
		return failedWrite(c)
	}

	if err := h.themes.SetTheme(c.UserContext(), claims.PreferenceKey(), theme); err != nil {
		return failedWrite(c)
	}

	return c.JSON(dto.ThemeResponse{Theme: string(theme), Success: true})
}

func failedWrite(c *fiber.Ctx) error {
	return c.JSON(dto.ThemeResponse{Theme: string(domain.DefaultTheme), Success: false})
}
