package render

import "github.com/jhoicas/factuurr/internal/domain/entity"

// Layout representación visual determinista de un documento. Todo es texto ya
// formateado: quien la pinta (HTML, PDF) no hace aritmética.
type Layout struct {
	Variant         entity.Variant `json:"variant"`
	Header          Header         `json:"header"`
	Sender          PartyBlock     `json:"sender"`
	Client          PartyBlock     `json:"client"`
	Table           ItemTable      `json:"table"`
	Totals          TotalsBlock    `json:"totals"`
	ExemptionNotice string         `json:"exemptionNotice,omitempty"`
	Footer          *Footer        `json:"footer,omitempty"`
}

// Header tipo de documento, número y fechas.
type Header struct {
	Title   string         `json:"title"`
	Number  string         `json:"number"`
	Dates   []LabeledValue `json:"dates"`
	LogoURL string         `json:"logoUrl,omitempty"`
}

// LabeledValue par etiqueta/valor ("Datum", "2024-03-01").
type LabeledValue struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// PartyBlock bloque de emisor o cliente.
type PartyBlock struct {
	Heading string   `json:"heading,omitempty"`
	Name    string   `json:"name"`
	Lines   []string `json:"lines"`
}

// ItemTable tabla de líneas en el orden almacenado.
type ItemTable struct {
	Columns []string  `json:"columns"`
	Rows    []ItemRow `json:"rows"`
}

// ItemRow una fila por LineItem.
type ItemRow struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unitPrice"`
	VATRate     string `json:"vatRate"`
	LineTotal   string `json:"lineTotal"`
}

// TotalsBlock subtotal, una línea por tipo de BTW (ascendente) y total.
type TotalsBlock struct {
	SubtotalLabel string    `json:"subtotalLabel"`
	Subtotal      string    `json:"subtotal"`
	VAT           []VATLine `json:"vat"`
	TotalLabel    string    `json:"totalLabel"`
	Total         string    `json:"total"`
}

// VATLine importe de BTW de un tipo.
type VATLine struct {
	Rate   int    `json:"rate"`
	Label  string `json:"label"`
	Amount string `json:"amount"`
}

// Footer notas y, en facturas, condiciones e instrucciones de pago. Cada
// etiqueta solo se rellena si su texto aparece.
type Footer struct {
	NotesLabel              string `json:"notesLabel,omitempty"`
	Notes                   string `json:"notes,omitempty"`
	PaymentConditionsLabel  string `json:"paymentConditionsLabel,omitempty"`
	PaymentConditions       string `json:"paymentConditions,omitempty"`
	PaymentInstructionLabel string `json:"paymentInstructionLabel,omitempty"`
	PaymentInstruction      string `json:"paymentInstruction,omitempty"`
	BankAccount             string `json:"bankAccount,omitempty"`
	BIC                     string `json:"bic,omitempty"`
}
