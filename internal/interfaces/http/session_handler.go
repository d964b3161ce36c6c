package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/factuurr/internal/application/dto"
	"github.com/jhoicas/factuurr/internal/application/editor"
	"github.com/jhoicas/factuurr/internal/domain/entity"
	"github.com/jhoicas/factuurr/internal/domain/money"
)

// SessionHandler estado de la sesión de edición.
type SessionHandler struct {
	editor *editor.Controller
}

// NewSessionHandler construye el handler.
func NewSessionHandler(e *editor.Controller) *SessionHandler {
	return &SessionHandler{editor: e}
}

// Get devuelve la variante activa, el documento y sus totales.
// @Summary      Estado de la sesión
// @Tags         session
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Router       /api/session [get]
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	return c.JSON(sessionResponse(h.editor.Active()))
}

// SetVariant cambia la variante activa.
// @Summary      Cambiar variante activa
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetVariantRequest  true  "invoice o quotation"
// @Success      200   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/session/variant [put]
func (h *SessionHandler) SetVariant(c *fiber.Ctx) error {
	var in dto.SetVariantRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	v, err := entity.ParseVariant(in.Variant)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.editor.SetActiveVariant(v); err != nil {
		return respondError(c, err)
	}
	return c.JSON(sessionResponse(h.editor.Active()))
}

func sessionResponse(doc entity.Document) dto.SessionResponse {
	return dto.SessionResponse{
		ActiveVariant: doc.Variant(),
		Document:      doc,
		Totals:        totalsResponse(money.Compute(doc.Items)),
	}
}

func totalsResponse(t money.Totals) dto.TotalsResponse {
	vat := make([]dto.VATLineResponse, 0, len(t.VAT))
	for _, rate := range t.VAT.Rates() {
		vat = append(vat, dto.VATLineResponse{Rate: rate, Amount: t.VAT[rate]})
	}
	return dto.TotalsResponse{Subtotal: t.Subtotal, VAT: vat, Total: t.Total}
}
