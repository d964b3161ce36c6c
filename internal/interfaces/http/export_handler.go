package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/factuurr/internal/application/editor"
	"github.com/jhoicas/factuurr/internal/application/export"
)

// ExportHandler descarga del PDF.
type ExportHandler struct {
	editor *editor.Controller
	uc     *export.PDFUseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(e *editor.Controller, uc *export.PDFUseCase) *ExportHandler {
	return &ExportHandler{editor: e, uc: uc}
}

// PDF exporta el documento activo. 409 si ya hay una exportación en curso.
// @Summary      Exportar PDF
// @Tags         export
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/export/pdf [get]
func (h *ExportHandler) PDF(c *fiber.Ctx) error {
	pdf, name, err := h.uc.Export(c.UserContext(), h.editor.Active())
	if err != nil {
		return respondError(c, err)
	}
	return attachment(c, "application/pdf", name, pdf)
}
