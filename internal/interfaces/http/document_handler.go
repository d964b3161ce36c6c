package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/factuurr/internal/application/dto"
	"github.com/jhoicas/factuurr/internal/application/editor"
	"github.com/jhoicas/factuurr/internal/application/render"
	"github.com/jhoicas/factuurr/internal/application/settings"
)

// DocumentHandler edición de cabecera, partes, exención y logo del documento activo.
type DocumentHandler struct {
	editor *editor.Controller
	logo   *settings.LogoUseCase
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(e *editor.Controller, logo *settings.LogoUseCase) *DocumentHandler {
	return &DocumentHandler{editor: e, logo: logo}
}

// UpdateFields aplica número, fechas, notas y términos de la variante.
// @Summary      Actualizar cabecera del documento
// @Tags         document
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FieldsPatch  true  "Campos a cambiar"
// @Success      200   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/document [patch]
func (h *DocumentHandler) UpdateFields(c *fiber.Ctx) error {
	var in dto.FieldsPatch
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.editor.UpdateFields(in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(sessionResponse(h.editor.Active()))
}

// SetVATExempt activa o desactiva la exención de BTW.
// @Summary      Exención de BTW
// @Tags         document
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetVATExemptRequest  true  "enabled"
// @Success      200   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/document/vat-exempt [put]
func (h *DocumentHandler) SetVATExempt(c *fiber.Ctx) error {
	var in dto.SetVATExemptRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	h.editor.SetVATExempt(in.Enabled)
	return c.JSON(sessionResponse(h.editor.Active()))
}

// UpdateSender godoc
// @Summary      Actualizar emisor
// @Tags         document
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PartyPatch  true  "Campos del emisor"
// @Success      200   {object}  entity.Party
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/document/sender [patch]
func (h *DocumentHandler) UpdateSender(c *fiber.Ctx) error {
	var in dto.PartyPatch
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	h.editor.UpdateSender(in)
	return c.JSON(h.editor.Active().Sender)
}

// UpdateClient godoc
// @Summary      Actualizar cliente
// @Tags         document
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PartyPatch  true  "Campos del cliente"
// @Success      200   {object}  entity.Party
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/document/client [patch]
func (h *DocumentHandler) UpdateClient(c *fiber.Ctx) error {
	var in dto.PartyPatch
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	h.editor.UpdateClient(in)
	return c.JSON(h.editor.Active().Client)
}

// Layout devuelve la representación visual del documento activo.
// @Summary      Layout del documento activo
// @Tags         document
// @Produce      json
// @Success      200  {object}  render.Layout
// @Router       /api/document/layout [get]
func (h *DocumentHandler) Layout(c *fiber.Ctx) error {
	return c.JSON(render.Render(h.editor.Active()))
}

// UploadLogo recibe la imagen en el campo multipart "file".
// @Summary      Subir logo del emisor
// @Tags         document
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "PNG, JPEG, GIF o WebP"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/document/logo [post]
func (h *DocumentHandler) UploadLogo(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return invalidBody(c)
	}
	f, err := fh.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer f.Close()

	url, err := h.logo.Upload(f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"logoUrl": url})
}
