package export

import (
	"context"

	"github.com/jhoicas/factuurr/internal/application/render"
)

// PDFGenerator convierte un Layout ya renderizado en los bytes de un PDF.
// No conoce las reglas de cálculo: solo pinta lo que recibe.
type PDFGenerator interface {
	GeneratePDF(ctx context.Context, layout render.Layout) ([]byte, error)
}
