package pdf

import (
	"bytes"
	"context"
	"fmt"
	stdimage "image"

	"github.com/disintegration/imaging"
	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/factuurr/internal/application/render"
)

// Área útil de una página A4 con márgenes de 10 mm, en mm. El alto deja
// margen para que maroto no abra una página extra por redondeo.
const (
	rasterMargin        = 10.0
	rasterContentWidth  = 210 - 2*rasterMargin
	rasterContentHeight = 275.0
)

// HTMLRenderer pinta el Layout como documento HTML autocontenido.
type HTMLRenderer interface {
	Render(l render.Layout) ([]byte, error)
}

// Capturer convierte un documento HTML en una captura PNG.
type Capturer interface {
	Capture(ctx context.Context, html []byte) ([]byte, error)
}

// RasterPDFGenerator exporta la vista previa capturada como imagen, paginada en A4.
type RasterPDFGenerator struct {
	html     HTMLRenderer
	capturer Capturer
}

// NewRasterPDFGenerator construye el generador raster.
func NewRasterPDFGenerator(html HTMLRenderer, capturer Capturer) *RasterPDFGenerator {
	return &RasterPDFGenerator{html: html, capturer: capturer}
}

// GeneratePDF captura la vista previa y la reparte en páginas A4.
func (g *RasterPDFGenerator) GeneratePDF(ctx context.Context, l render.Layout) ([]byte, error) {
	doc, err := g.html.Render(l)
	if err != nil {
		return nil, fmt.Errorf("pdf: renderizar html: %w", err)
	}
	shot, err := g.capturer.Capture(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("pdf: capturar vista previa: %w", err)
	}
	img, err := imaging.Decode(bytes.NewReader(shot))
	if err != nil {
		return nil, fmt.Errorf("pdf: decodificar captura: %w", err)
	}
	return ImagePDF(img, l.Header.Title+" "+l.Header.Number)
}

// ImagePDF corta la imagen en porciones proporcionales a A4 y genera una página por porción.
func ImagePDF(img stdimage.Image, title string) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(rasterMargin).WithRightMargin(rasterMargin).
		WithTopMargin(rasterMargin).WithBottomMargin(rasterMargin).
		WithTitle(title, true).
		Build()
	m := maroto.New(cfg)

	for _, slice := range SlicePages(img, rasterContentHeight/rasterContentWidth) {
		var buf bytes.Buffer
		if err := imaging.Encode(&buf, slice, imaging.PNG); err != nil {
			return nil, fmt.Errorf("pdf: codificar página: %w", err)
		}
		b := slice.Bounds()
		height := rasterContentWidth * float64(b.Dy()) / float64(b.Dx())
		m.AddPages(page.New().Add(
			image.NewFromBytesRow(height, buf.Bytes(), extension.Png, props.Rect{Percent: 100}),
		))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// SlicePages corta img de arriba abajo en porciones de ancho completo y alto
// ancho×ratio. La última porción conserva el resto.
func SlicePages(img stdimage.Image, ratio float64) []stdimage.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil
	}
	sliceHeight := max(int(float64(w)*ratio), 1)

	var pages []stdimage.Image
	for y := 0; y < h; y += sliceHeight {
		bottom := min(y+sliceHeight, h)
		pages = append(pages, imaging.Crop(img, stdimage.Rect(b.Min.X, b.Min.Y+y, b.Max.X, b.Min.Y+bottom)))
	}
	return pages
}
