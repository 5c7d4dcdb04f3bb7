package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/personal-site/internal/service"
	"github.com/spec-kit/personal-site/internal/session"
)

// PagesHandler renders the HTML pages with the visitor's theme applied so
// there is no flash of the wrong color scheme before scripts run.
type PagesHandler struct {
	themes *service.ThemeService
}

// NewPagesHandler constructs handler.
func NewPagesHandler(themes *service.ThemeService) *PagesHandler {
	return &PagesHandler{themes: themes}
}

// Index handles GET /.
func (h *PagesHandler) Index(c *fiber.Ctx) error {
	theme := h.themes.Theme(c.UserContext(), session.FromContext(c))
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(renderPage(string(theme), "home", "welcome"))
}

// NotFound is the fallback for unmatched routes.
func (h *PagesHandler) NotFound(c *fiber.Ctx) error {
	theme := h.themes.Theme(c.UserContext(), session.FromContext(c))
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(fiber.StatusNotFound).SendString(renderPage(string(theme), "not found", "page not found"))
}

func renderPage(theme, title, body string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html class=%q lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<link rel="stylesheet" href="/static/css/site.css">
</head>
<body>
<main>%s</main>
<script src="/static/js/theme.js" defer></script>
</body>
</html>
`, theme, title, body)
}
