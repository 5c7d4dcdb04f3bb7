package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Inline lucide icons used by the theme toggle.
var icons = map[string]string{
	"sun":  `<svg xmlns="http://www.w3.org/2000/svg" width="24" height="24" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" class="lucide lucide-sun-icon lucide-sun"><circle cx="12" cy="12" r="4"/><path d="M12 2v2"/><path d="M12 20v2"/><path d="m4.93 4.93 1.41 1.41"/><path d="m17.66 17.66 1.41 1.41"/><path d="M2 12h2"/><path d="M20 12h2"/><path d="m6.34 17.66-1.41 1.41"/><path d="m19.07 4.93-1.41 1.41"/></svg>`,
	"moon": `<svg xmlns="http://www.w3.org/2000/svg" width="24" height="24" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" class="lucide lucide-moon"><path d="M12 3a6 6 0 0 0 9 9 9 9 0 1 1-9-9Z"/></svg>`,
}

// IconsHandler serves inline SVG icons with optional injected CSS classes.
type IconsHandler struct{}

// NewIconsHandler constructs handler.
func NewIconsHandler() *IconsHandler {
	return &IconsHandler{}
}

// Get handles GET /api/icon/:name.
func (h *IconsHandler) Get(c *fiber.Ctx) error {
	svg, ok := icons[c.Params("name")]
	if !ok {
		return c.Status(fiber.StatusNotFound).SendString("icon not found")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(addClasses(svg, c.Query("classes")))
}

func addClasses(svg, classes string) string {
	if classes == "" {
		return svg
	}

	if start := strings.Index(svg, `class="`); start >= 0 {
		// append to the existing class list
		end := strings.Index(svg[start+7:], `"`)
		if end >= 0 {
			at := start + 7 + end
			return svg[:at] + " " + classes + svg[at:]
		}
	}
	if end := strings.Index(svg, ">"); end >= 0 {
		return svg[:end] + ` class="` + classes + `"` + svg[end:]
	}
	return svg
}
