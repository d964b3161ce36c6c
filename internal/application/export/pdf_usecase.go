package export

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/jhoicas/factuurr/internal/application/render"
	"github.com/jhoicas/factuurr/internal/domain"
	"github.com/jhoicas/factuurr/internal/domain/entity"
	"github.com/jhoicas/factuurr/pkg/filename"
	"github.com/jhoicas/factuurr/pkg/logger"
)

// PDFUseCase exporta el documento a PDF. Solo admite una exportación a la vez:
// una segunda petición mientras otra está en curso se rechaza con ErrExportInProgress.
type PDFUseCase struct {
	generator PDFGenerator
	inflight  *semaphore.Weighted
	log       *logger.Logger
}

// NewPDFUseCase construye el caso de uso inyectando el generador.
func NewPDFUseCase(generator PDFGenerator, log *logger.Logger) *PDFUseCase {
	return &PDFUseCase{
		generator: generator,
		inflight:  semaphore.NewWeighted(1),
		log:       log,
	}
}

// Export renderiza y genera el PDF del documento.
//
// Retorna:
//   - (pdfBytes, filename, nil)   si todo sale bien.
//   - domain.ErrExportInProgress  si ya hay otra exportación en curso.
//   - error envuelto              si falla la generación (no se devuelven bytes parciales).
func (uc *PDFUseCase) Export(ctx context.Context, doc entity.Document) (pdfBytes []byte, name string, err error) {
	if !uc.inflight.TryAcquire(1) {
		uc.log.Warn().Str("number", doc.Number).Msg("exportación rechazada: otra en curso")
		return nil, "", domain.ErrExportInProgress
	}
	defer uc.inflight.Release(1)

	start := time.Now()
	layout := render.Render(doc)

	pdfBytes, err = uc.generator.GeneratePDF(ctx, layout)
	if err != nil {
		uc.log.Error().Err(err).Str("number", doc.Number).Msg("exportación PDF fallida")
		return nil, "", fmt.Errorf("export: generación fallida: %w", err)
	}
	if len(pdfBytes) == 0 {
		return nil, "", errors.New("export: el generador devolvió un PDF vacío")
	}

	name = FileName(doc)
	uc.log.Info().
		Str("file", name).
		Int("bytes", len(pdfBytes)).
		Dur("took", time.Since(start)).
		Msg("PDF exportado")
	return pdfBytes, name, nil
}

// FileName nombre de descarga: "factuur_<número>.pdf" u "offerte_<número>.pdf".
func FileName(doc entity.Document) string {
	base := "Factuur"
	if doc.Variant() == entity.VariantQuotation {
		base = "Offerte"
	}
	return fmt.Sprintf("%s_%s.pdf", filename.Sanitize(base), filename.Sanitize(doc.Number))
}
