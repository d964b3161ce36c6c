package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/factuurr/internal/domain/entity"
)

// ItemPatch cambios parciales sobre una línea (PATCH /api/document/items/:id).
// Solo se aplican los campos presentes.
type ItemPatch struct {
	Name        *string      `json:"name,omitempty"`
	Description *string      `json:"description,omitempty"`
	Quantity    *NumericText `json:"quantity,omitempty"`
	UnitPrice   *NumericText `json:"unitPrice,omitempty"`
	VATRate     *int         `json:"vatRate,omitempty"`
}

// PartyPatch cambios parciales sobre emisor o cliente.
type PartyPatch struct {
	Name      *string `json:"name,omitempty"`
	Address   *string `json:"address,omitempty"`
	Zip       *string `json:"zip,omitempty"`
	City      *string `json:"city,omitempty"`
	Country   *string `json:"country,omitempty"`
	VATNumber *string `json:"vatNumber,omitempty"`
	Email     *string `json:"email,omitempty"`
}

// FieldsPatch campos de cabecera. DueDate, PaymentConditions, BankAccount y BIC
// solo valen para facturas; ValidUntil solo para offertes.
type FieldsPatch struct {
	Number            *string `json:"number,omitempty"`
	Date              *string `json:"date,omitempty"`
	Notes             *string `json:"notes,omitempty"`
	DueDate           *string `json:"dueDate,omitempty"`
	ValidUntil        *string `json:"validUntil,omitempty"`
	PaymentConditions *string `json:"paymentConditions,omitempty"`
	BankAccount       *string `json:"bankAccount,omitempty"`
	BIC               *string `json:"bic,omitempty"`
}

// SetVariantRequest body para PUT /api/session/variant.
type SetVariantRequest struct {
	Variant string `json:"variant"`
}

// SetVATExemptRequest body para PUT /api/document/vat-exempt.
type SetVATExemptRequest struct {
	Enabled bool `json:"enabled"`
}

// RemoveItemResponse resultado de DELETE /api/document/items/:id.
type RemoveItemResponse struct {
	Removed bool `json:"removed"`
}

// VATLineResponse importe de BTW para un tipo.
type VATLineResponse struct {
	Rate   int             `json:"rate"`
	Amount decimal.Decimal `json:"amount" swaggertype:"string"`
}

// TotalsResponse totales calculados (sin redondear) del documento activo.
type TotalsResponse struct {
	Subtotal decimal.Decimal   `json:"subtotal" swaggertype:"string"`
	VAT      []VATLineResponse `json:"vat"`
	Total    decimal.Decimal   `json:"total" swaggertype:"string"`
}

// SessionResponse estado completo de GET /api/session.
type SessionResponse struct {
	ActiveVariant entity.Variant  `json:"activeVariant"`
	Document      entity.Document `json:"document"`
	Totals        TotalsResponse  `json:"totals"`
}
