package http

import (
	"bytes"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/factuurr/internal/application/settings"
)

// SettingsHandler exportación/importación del emisor.
type SettingsHandler struct {
	uc *settings.UseCase
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(uc *settings.UseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// Export godoc
// @Summary      Exportar configuración del emisor
// @Tags         settings
// @Produce      json
// @Success      200  {file}    binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/settings/export [get]
func (h *SettingsHandler) Export(c *fiber.Ctx) error {
	data, name, err := h.uc.Export()
	if err != nil {
		return respondError(c, err)
	}
	return attachment(c, fiber.MIMEApplicationJSONCharsetUTF8, name, data)
}

// Import acepta el archivo en el campo multipart "file" o el JSON como cuerpo.
// @Summary      Importar configuración del emisor
// @Tags         settings
// @Accept       json,multipart/form-data
// @Produce      json
// @Param        file  formData  file  false  "Archivo exportado"
// @Success      200   {object}  entity.Party
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/settings/import [post]
func (h *SettingsHandler) Import(c *fiber.Ctx) error {
	var r io.Reader = bytes.NewReader(c.Body())
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return respondError(c, err)
		}
		defer f.Close()
		r = f
	}

	sender, err := h.uc.Import(r)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sender)
}
