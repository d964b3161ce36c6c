package cli

import (
	"github.com/jhoicas/factuurr/internal/application/export"
	"github.com/jhoicas/factuurr/internal/infrastructure/capture"
	"github.com/jhoicas/factuurr/internal/infrastructure/html"
	infrapdf "github.com/jhoicas/factuurr/internal/infrastructure/pdf"
	"github.com/jhoicas/factuurr/pkg/config"
	"github.com/jhoicas/factuurr/pkg/logger"
)

// newGenerator elige el generador PDF según EXPORT_MODE.
func newGenerator(cfg config.ExportConfig, preview *html.PreviewRenderer, log *logger.Logger) export.PDFGenerator {
	if cfg.Mode == config.ExportModeRaster {
		capturer := capture.NewChromeCapturer(capture.Config{
			ChromePath: cfg.ChromePath,
			Scale:      cfg.Scale,
			Timeout:    cfg.Timeout,
		}, log.Component("capture"))
		return infrapdf.NewRasterPDFGenerator(preview, capturer)
	}
	return infrapdf.NewMarotoPDFGenerator()
}
