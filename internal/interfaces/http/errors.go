package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/factuurr/internal/application/dto"
	"github.com/jhoicas/factuurr/internal/domain"
)

// respondError traduce errores de dominio a status HTTP y dto.ErrorResponse.
func respondError(c *fiber.Ctx, err error) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidDocument):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrInvalidVariant):
		status, code = fiber.StatusBadRequest, "INVALID_VARIANT"
	case errors.Is(err, domain.ErrVariantMismatch):
		status, code = fiber.StatusUnprocessableEntity, "VARIANT_MISMATCH"
	case errors.Is(err, domain.ErrInvalidSettings):
		status, code = fiber.StatusBadRequest, "INVALID_SETTINGS"
	case errors.Is(err, domain.ErrUnsupportedImage):
		status, code = fiber.StatusBadRequest, "UNSUPPORTED_IMAGE"
	case errors.Is(err, domain.ErrExportInProgress):
		status, code = fiber.StatusConflict, "EXPORT_IN_PROGRESS"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// attachment prepara la respuesta como descarga.
func attachment(c *fiber.Ctx, contentType, name string, body []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(body)
}
