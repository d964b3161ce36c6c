package entity

import (
	"fmt"

	"github.com/jhoicas/factuurr/internal/domain"
)

// Variant identifica el tipo de documento.
type Variant string

const (
	VariantInvoice   Variant = "invoice"
	VariantQuotation Variant = "quotation"
)

// ParseVariant valida un valor recibido desde fuera (HTTP, CLI).
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case VariantInvoice, VariantQuotation:
		return Variant(s), nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidVariant, s)
	}
}

// InvoiceTerms campos exclusivos de una factura.
type InvoiceTerms struct {
	DueDate           string `json:"dueDate"`
	PaymentConditions string `json:"paymentConditions,omitempty"`
	BankAccount       string `json:"bankAccount,omitempty"`
	BIC               string `json:"bic,omitempty"`
}

// QuotationTerms campos exclusivos de una offerte.
type QuotationTerms struct {
	ValidUntil string `json:"validUntil"`
}

// Document es la cabecera común de factura y offerte. Exactamente uno de
// Invoice / Quotation está presente y determina la variante.
// Los totales no se guardan aquí: se calculan siempre desde Items (ver money.Compute).
type Document struct {
	ID        string          `json:"id"`
	Number    string          `json:"number"`
	Date      string          `json:"date"` // YYYY-MM-DD
	Sender    Party           `json:"sender"`
	Client    Party           `json:"client"`
	Items     []LineItem      `json:"items"`
	VATExempt bool            `json:"isVatExempt"`
	Notes     string          `json:"notes,omitempty"`
	Invoice   *InvoiceTerms   `json:"invoice,omitempty"`
	Quotation *QuotationTerms `json:"quotation,omitempty"`
}

// Variant deriva la variante a partir del registro de extensión presente.
func (d *Document) Variant() Variant {
	if d.Quotation != nil {
		return VariantQuotation
	}
	return VariantInvoice
}

// Deadline devuelve la fecha límite propia de la variante (vervaldatum o geldig tot).
func (d *Document) Deadline() string {
	switch {
	case d.Invoice != nil:
		return d.Invoice.DueDate
	case d.Quotation != nil:
		return d.Quotation.ValidUntil
	}
	return ""
}

// Validate comprueba las invariantes del modelo.
func (d *Document) Validate() error {
	if (d.Invoice == nil) == (d.Quotation == nil) {
		return fmt.Errorf("%w: se requiere exactamente una de invoice/quotation", domain.ErrInvalidDocument)
	}
	if len(d.Items) == 0 {
		return fmt.Errorf("%w: el documento debe tener al menos una línea", domain.ErrInvalidDocument)
	}
	for _, it := range d.Items {
		if !IsAllowedVATRate(it.VATRate) {
			return fmt.Errorf("%w: tipo de BTW %d no permitido (línea %s)", domain.ErrInvalidDocument, it.VATRate, it.ID)
		}
		if d.VATExempt && it.VATRate != 0 {
			return fmt.Errorf("%w: documento exento con BTW %d%% en la línea %s", domain.ErrInvalidDocument, it.VATRate, it.ID)
		}
		if it.Quantity.IsNegative() || it.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: cantidad o precio negativo en la línea %s", domain.ErrInvalidDocument, it.ID)
		}
	}
	return nil
}

// Clone devuelve una copia profunda (líneas y registro de extensión).
func (d *Document) Clone() Document {
	out := *d
	out.Items = append([]LineItem(nil), d.Items...)
	if d.Invoice != nil {
		terms := *d.Invoice
		out.Invoice = &terms
	}
	if d.Quotation != nil {
		terms := *d.Quotation
		out.Quotation = &terms
	}
	return out
}
