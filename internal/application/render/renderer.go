// Package render proyecta un Document (y sus totales calculados) a un Layout
// listo para pintar en la vista previa o capturar en la exportación.
package render

import (
	"fmt"
	"strings"

	"github.com/jhoicas/factuurr/internal/domain/entity"
	"github.com/jhoicas/factuurr/internal/domain/money"
)

// Textos del documento (nl-BE).
const (
	TitleInvoice        = "FACTUUR"
	TitleQuotation      = "OFFERTE"
	LabelDate           = "Datum"
	LabelDueDate        = "Vervaldatum"
	LabelValidUntil     = "Geldig tot"
	ClientHeading       = "Factureren aan:"
	UnnamedItem         = "Geen naam"
	LabelSubtotal       = "Subtotaal:"
	LabelTotal          = "Totaal:"
	ExemptionNotice     = "Bijzondere vrijstellingsregeling kleine ondernemingen - Vrijgesteld van btw."
	PlaceholderIBAN     = "BE XX XXXX XXXX XXXX"
	paymentInstructions = "Gelieve het totaalbedrag over te maken naar "
)

// Etiquetas del pie.
const (
	LabelNotes              = "Opmerkingen:"
	LabelPaymentConditions  = "Betalingsvoorwaarden:"
	LabelPaymentInstruction = "Betaalinstructies:"
)

// Columns cabecera de la tabla de líneas.
var Columns = []string{"Beschrijving", "Aantal", "Stukprijs", "BTW", "Totaal"}

// Render construye el Layout. Es una función pura: el mismo documento produce
// siempre el mismo Layout.
func Render(doc entity.Document) Layout {
	totals := money.Compute(doc.Items)

	return Layout{
		Variant:         doc.Variant(),
		Header:          header(doc),
		Sender:          senderBlock(doc.Sender),
		Client:          clientBlock(doc.Client),
		Table:           itemTable(doc.Items),
		Totals:          totalsBlock(totals),
		ExemptionNotice: exemptionNotice(doc.VATExempt),
		Footer:          footer(doc),
	}
}

func header(doc entity.Document) Header {
	h := Header{
		Title:   TitleInvoice,
		Number:  doc.Number,
		Dates:   []LabeledValue{{Label: LabelDate, Value: doc.Date}},
		LogoURL: doc.Sender.LogoURL,
	}
	if doc.Variant() == entity.VariantQuotation {
		h.Title = TitleQuotation
		h.Dates = append(h.Dates, LabeledValue{Label: LabelValidUntil, Value: doc.Deadline()})
	} else {
		h.Dates = append(h.Dates, LabeledValue{Label: LabelDueDate, Value: doc.Deadline()})
	}
	return h
}

func senderBlock(p entity.Party) PartyBlock {
	return PartyBlock{
		Name: p.Name,
		Lines: []string{
			p.Address,
			zipCity(p),
			p.Country,
			p.VATNumber,
			"Email: " + p.Email,
		},
	}
}

func clientBlock(p entity.Party) PartyBlock {
	lines := []string{p.Address, zipCity(p), p.Country}
	if p.VATNumber != "" {
		lines = append(lines, "BTW: "+p.VATNumber)
	}
	return PartyBlock{Heading: ClientHeading, Name: p.Name, Lines: lines}
}

func zipCity(p entity.Party) string {
	return strings.TrimSpace(p.Zip + " " + p.City)
}

func itemTable(items []entity.LineItem) ItemTable {
	rows := make([]ItemRow, 0, len(items))
	for _, it := range items {
		name := it.Name
		if name == "" {
			name = UnnamedItem
		}
		rows = append(rows, ItemRow{
			ID:          it.ID,
			Name:        name,
			Description: it.Description,
			Quantity:    money.FormatQuantity(it.Quantity),
			UnitPrice:   money.FormatCurrency(it.UnitPrice),
			VATRate:     fmt.Sprintf("%d%%", it.VATRate),
			LineTotal:   money.FormatCurrency(money.LineTotal(it)),
		})
	}
	return ItemTable{Columns: Columns, Rows: rows}
}

func totalsBlock(t money.Totals) TotalsBlock {
	vat := make([]VATLine, 0, len(t.VAT))
	for _, rate := range t.VAT.Rates() {
		vat = append(vat, VATLine{
			Rate:   rate,
			Label:  fmt.Sprintf("BTW (%d%%):", rate),
			Amount: money.FormatCurrency(t.VAT[rate]),
		})
	}
	return TotalsBlock{
		SubtotalLabel: LabelSubtotal,
		Subtotal:      money.FormatCurrency(t.Subtotal),
		VAT:           vat,
		TotalLabel:    LabelTotal,
		Total:         money.FormatCurrency(t.Total),
	}
}

func exemptionNotice(exempt bool) string {
	if exempt {
		return ExemptionNotice
	}
	return ""
}

// footer se muestra si hay notas o, en facturas, condiciones de pago o IBAN.
// Las instrucciones de pago aparecen siempre en una factura con pie.
func footer(doc entity.Document) *Footer {
	inv := doc.Invoice
	if doc.Notes == "" && (inv == nil || (inv.PaymentConditions == "" && inv.BankAccount == "")) {
		return nil
	}
	f := &Footer{Notes: doc.Notes}
	if doc.Notes != "" {
		f.NotesLabel = LabelNotes
	}
	if inv != nil {
		account := inv.BankAccount
		if account == "" {
			account = PlaceholderIBAN
		}
		if inv.PaymentConditions != "" {
			f.PaymentConditionsLabel = LabelPaymentConditions
			f.PaymentConditions = inv.PaymentConditions
		}
		f.BankAccount = account
		f.PaymentInstructionLabel = LabelPaymentInstruction
		f.PaymentInstruction = paymentInstructions + account
		f.BIC = inv.BIC
	}
	return f
}
