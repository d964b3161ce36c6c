// Package html pinta el Layout como página HTML: vista previa en vivo y fuente de
// la captura raster.
package html

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/jhoicas/factuurr/internal/application/render"
)

//go:embed templates/preview.html
var templatesFS embed.FS

// PreviewRenderer ejecuta la plantilla de vista previa.
type PreviewRenderer struct {
	tmpl *template.Template
}

// NewPreviewRenderer parsea la plantilla embebida.
func NewPreviewRenderer() (*PreviewRenderer, error) {
	tmpl, err := template.New("preview.html").
		Funcs(template.FuncMap{"safeURL": safeURL}).
		ParseFS(templatesFS, "templates/preview.html")
	if err != nil {
		return nil, fmt.Errorf("html: parsear plantilla: %w", err)
	}
	return &PreviewRenderer{tmpl: tmpl}, nil
}

// Render devuelve el documento HTML completo.
func (r *PreviewRenderer) Render(l render.Layout) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, l); err != nil {
		return nil, fmt.Errorf("html: ejecutar plantilla: %w", err)
	}
	return buf.Bytes(), nil
}

// safeURL acepta data URLs de imagen, que html/template filtraría; el resto pasa
// por el escapado normal.
func safeURL(s string) any {
	if strings.HasPrefix(s, "data:image/") {
		return template.URL(s)
	}
	return s
}
