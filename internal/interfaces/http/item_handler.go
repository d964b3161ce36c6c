package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/factuurr/internal/application/dto"
	"github.com/jhoicas/factuurr/internal/application/editor"
)

// ItemHandler líneas del documento activo.
type ItemHandler struct {
	editor *editor.Controller
}

// NewItemHandler construye el handler.
func NewItemHandler(e *editor.Controller) *ItemHandler {
	return &ItemHandler{editor: e}
}

// Add añade una línea vacía.
// @Summary      Añadir línea
// @Tags         items
// @Produce      json
// @Success      201  {object}  entity.LineItem
// @Router       /api/document/items [post]
func (h *ItemHandler) Add(c *fiber.Ctx) error {
	return c.Status(fiber.StatusCreated).JSON(h.editor.AddItem())
}

// Update aplica un parche a la línea :id. Un id desconocido no cambia nada.
// @Summary      Actualizar línea
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id    path  string         true  "ID de la línea"
// @Param        body  body  dto.ItemPatch  true  "Campos a cambiar"
// @Success      200   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/document/items/{id} [patch]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.ItemPatch
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.editor.UpdateItem(c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(sessionResponse(h.editor.Active()))
}

// Remove elimina la línea :id salvo que sea la última.
// @Summary      Eliminar línea
// @Tags         items
// @Produce      json
// @Param        id   path  string  true  "ID de la línea"
// @Success      200  {object}  dto.RemoveItemResponse
// @Router       /api/document/items/{id} [delete]
func (h *ItemHandler) Remove(c *fiber.Ctx) error {
	return c.JSON(dto.RemoveItemResponse{Removed: h.editor.RemoveItem(c.Params("id"))})
}
