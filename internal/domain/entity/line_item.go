package entity

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Tipos de BTW permitidos por documento (porcentaje).
var AllowedVATRates = []int{21, 12, 6, 0}

// DefaultVATRate tipo asignado a las líneas nuevas de documentos no exentos.
const DefaultVATRate = 21

// LineItem representa una línea de detalle de una factura u offerte.
// Quantity y UnitPrice ya llegan saneados (>= 0) desde el editor.
type LineItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity" swaggertype:"string"`
	UnitPrice   decimal.Decimal `json:"unitPrice" swaggertype:"string"`
	VATRate     int             `json:"vatRate"`
}

// IsAllowedVATRate indica si rate pertenece al conjunto fijo de tipos.
func IsAllowedVATRate(rate int) bool {
	return slices.Contains(AllowedVATRates, rate)
}
