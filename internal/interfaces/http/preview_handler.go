package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/factuurr/internal/application/editor"
	"github.com/jhoicas/factuurr/internal/application/render"
)

// PreviewHandler página HTML con la vista previa del documento activo.
type PreviewHandler struct {
	editor  *editor.Controller
	preview PreviewRenderer
}

// NewPreviewHandler construye el handler.
func NewPreviewHandler(e *editor.Controller, p PreviewRenderer) *PreviewHandler {
	return &PreviewHandler{editor: e, preview: p}
}

// Page godoc
// @Summary      Vista previa HTML
// @Tags         preview
// @Produce      html
// @Success      200  {string}  string
// @Router       / [get]
// @Router       /preview [get]
func (h *PreviewHandler) Page(c *fiber.Ctx) error {
	page, err := h.preview.Render(render.Render(h.editor.Active()))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(page)
}
