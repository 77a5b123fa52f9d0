package handlers

import (
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
)

// ViewHandler serves the single-page client for gated UI areas.
type ViewHandler struct {
	staticDir string
}

// NewViewHandler constructs handler.
func NewViewHandler(staticDir string) *ViewHandler {
	return &ViewHandler{staticDir: staticDir}
}

// Index sends index.html; the client router takes over from there.
func (h *ViewHandler) Index(c *fiber.Ctx) error {
	if h.staticDir == "" {
		return c.Type("html").SendString(placeholderPage)
	}
	index := filepath.Join(h.staticDir, "index.html")
	if _, err := os.Stat(index); err != nil {
		return c.Type("html").SendString(placeholderPage)
	}
	return c.SendFile(index)
}

const placeholderPage = `<!doctype html><html><head><meta charset="utf-8"><title>Employee Management</title></head><body><div id="root"></div></body></html>`
