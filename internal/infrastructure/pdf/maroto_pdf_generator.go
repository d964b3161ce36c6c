// Package pdf genera el PDF de una factura u offerte a partir de su Layout.
//
// Layout de la página A4 (modo vectorial):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  LOGO + EMISOR               │  FACTUUR / OFFERTE + N°      │
//	│                              │  Datum / Vervaldatum         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Factureren aan: CLIENTE                                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Beschrijving | Aantal | Stukprijs | BTW | Totaal    │
//	│  ─────────────────────────────────────────────────────────  │
//	│                     Subtotaal / BTW (x%) / Totaal           │
//	│  Vrijstelling (si aplica)                                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: notas + condiciones e instrucción de pago          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/factuurr/internal/application/render"
	"github.com/jhoicas/factuurr/internal/infrastructure/logo"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

const lineHeight = 4.5

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa export.PDFGenerator dibujando el Layout con Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GeneratePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GeneratePDF(_ context.Context, l render.Layout) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(l.Header.Title+" "+l.Header.Number, true).
		WithAuthor(l.Sender.Name, true).
		Build()

	m := maroto.New(cfg)

	if r, ok := logoRow(l.Header.LogoURL); ok {
		m.AddRows(r)
	}
	m.AddRows(headerRow(l))
	m.AddRows(line.NewRow(4, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partyRow(l.Client, true))
	m.AddRows(line.NewRow(4, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow(l.Table.Columns))
	m.AddRows(tableRows(l.Table.Rows)...)

	m.AddRows(line.NewRow(4, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(l.Totals))

	if l.ExemptionNotice != "" {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New(l.ExemptionNotice, props.Text{Size: 8, Style: fontstyle.Italic, Color: colorGray, Top: 2}),
		)))
	}

	if l.Footer != nil {
		m.AddRows(line.NewRow(6, props.Line{Color: colorGray, Thickness: 0.3}))
		m.AddRows(footerRows(l.Footer)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// logoRow embebe el logo solo si es un data URL PNG o JPEG.
func logoRow(url string) (core.Row, bool) {
	d, ok := logo.ParseDataURL(url)
	if !ok {
		return nil, false
	}
	var ext extension.Type
	switch d.MediaType {
	case "image/png":
		ext = extension.Png
	case "image/jpeg", "image/jpg":
		ext = extension.Jpg
	default:
		return nil, false
	}
	return row.New(20).Add(
		col.New(4).Add(image.NewFromBytes(d.Data, ext, props.Rect{Percent: 100})),
		col.New(8),
	), true
}

// headerRow: emisor (izq) y título + número + fechas (der).
func headerRow(l render.Layout) core.Row {
	sender := partyComponents(l.Sender, false)

	right := []core.Component{
		text.New(l.Header.Title, props.Text{
			Style: fontstyle.Bold, Size: 18, Align: align.Right, Color: colorPrimary,
		}),
		text.New(l.Header.Number, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 9,
		}),
	}
	top := 15.0
	for _, d := range l.Header.Dates {
		right = append(right, text.New(d.Label+": "+d.Value, props.Text{
			Size: 8, Align: align.Right, Top: top, Color: colorGray,
		}))
		top += lineHeight
	}

	height := max(partyHeight(l.Sender, false), top+2)
	return row.New(height).Add(
		col.New(7).Add(sender...),
		col.New(5).Add(right...),
	)
}

// partyRow: bloque de cliente a lo ancho de la página.
func partyRow(p render.PartyBlock, withHeading bool) core.Row {
	return row.New(partyHeight(p, withHeading)).Add(
		col.New(12).Add(partyComponents(p, withHeading)...),
	)
}

func partyComponents(p render.PartyBlock, withHeading bool) []core.Component {
	var out []core.Component
	top := 0.0
	if withHeading && p.Heading != "" {
		out = append(out, text.New(p.Heading, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary,
		}))
		top += 5
	}
	out = append(out, text.New(p.Name, props.Text{
		Style: fontstyle.Bold, Size: 11, Top: top,
	}))
	top += 6
	for _, ln := range p.Lines {
		out = append(out, text.New(ln, props.Text{Size: 8, Top: top, Color: colorGray}))
		top += lineHeight
	}
	return out
}

func partyHeight(p render.PartyBlock, withHeading bool) float64 {
	h := 6 + lineHeight*float64(len(p.Lines)) + 2
	if withHeading && p.Heading != "" {
		h += 5
	}
	return h
}

// Anchos de columna de la tabla (suman 12).
var columnSizes = []int{6, 1, 2, 1, 2}

// tableHeaderRow: cabecera de la tabla con fondo de color.
func tableHeaderRow(columns []string) core.Row {
	aligns := []align.Type{align.Left, align.Right, align.Right, align.Right, align.Right}
	cols := make([]core.Col, 0, len(columns))
	for i, label := range columns {
		cols = append(cols, col.New(columnSizes[i]).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: aligns[i],
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableRows: una fila por línea, la descripción debajo del nombre.
func tableRows(rows []render.ItemRow) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		height := 7.0
		name := []core.Component{
			text.New(r.Name, props.Text{Size: 8, Style: fontstyle.Bold, Top: 1, Left: 1}),
		}
		if r.Description != "" {
			name = append(name, text.New(r.Description, props.Text{Size: 7, Top: 5, Left: 1, Color: colorGray}))
			height = 11
		}
		cell := func(s string) core.Component {
			return text.New(s, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})
		}
		result = append(result, row.New(height).Add(
			col.New(columnSizes[0]).Add(name...),
			col.New(columnSizes[1]).Add(cell(r.Quantity)),
			col.New(columnSizes[2]).Add(cell(r.UnitPrice)),
			col.New(columnSizes[3]).Add(cell(r.VATRate)),
			col.New(columnSizes[4]).Add(cell(r.LineTotal)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(t render.TotalsBlock) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}

	labels := []core.Component{label(t.SubtotalLabel, 0)}
	values := []core.Component{value(t.Subtotal, 0)}
	top := 5.0
	for _, v := range t.VAT {
		labels = append(labels, label(v.Label, top))
		values = append(values, value(v.Amount, top))
		top += 5
	}
	top += 1
	labels = append(labels, text.New(t.TotalLabel, props.Text{
		Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Right: 2, Top: top,
	}))
	values = append(values, text.New(t.Total, props.Text{
		Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Right: 1, Top: top,
	}))

	return row.New(top+8).Add(
		col.New(6), // espacio izquierdo
		col.New(3).Add(labels...),
		col.New(3).Add(values...),
	)
}

// footerLine texto del pie ya precedido de su etiqueta.
type footerLine struct {
	text  string
	style fontstyle.Type
}

// footerLines: notas e información de pago, con las mismas etiquetas que la vista previa.
func footerLines(f *render.Footer) []footerLine {
	var lines []footerLine
	add := func(label, s string, style fontstyle.Type) {
		if s == "" {
			return
		}
		if label != "" {
			s = label + " " + s
		}
		lines = append(lines, footerLine{text: s, style: style})
	}
	add(f.NotesLabel, f.Notes, fontstyle.Normal)
	add(f.PaymentConditionsLabel, f.PaymentConditions, fontstyle.Normal)
	add(f.PaymentInstructionLabel, f.PaymentInstruction, fontstyle.Bold)
	add("BIC:", f.BIC, fontstyle.Normal)
	return lines
}

func footerRows(f *render.Footer) []core.Row {
	lines := footerLines(f)
	rows := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New(l.text, props.Text{Size: 8, Style: l.style, Color: colorGray, Top: 1}),
		)))
	}
	return rows
}
