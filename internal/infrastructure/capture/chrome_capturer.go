// Package capture toma capturas PNG de documentos HTML con Chrome headless.
package capture

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"github.com/jhoicas/factuurr/pkg/logger"
)

// Selector elemento que se captura; coincide con la plantilla de vista previa.
const Selector = ".invoice-preview"

// Viewport del navegador en px CSS. El ancho coincide con el de la vista previa.
const (
	viewportWidth  = 800
	viewportHeight = 1100
)

// ErrChromeNotFound no hay ejecutable de Chrome/Chromium disponible.
var ErrChromeNotFound = errors.New("capture: chrome/chromium no encontrado (configure CHROME_PATH)")

// Config parámetros de la captura.
type Config struct {
	ChromePath string        // vacío: autodetección
	Scale      float64       // factor de escala del dispositivo (nitidez)
	Timeout    time.Duration // límite por captura
}

// ChromeCapturer implementa pdf.Capturer con chromedp.
type ChromeCapturer struct {
	cfg Config
	log *logger.Logger
}

// NewChromeCapturer construye el capturer. Scale <= 0 usa 3 y Timeout <= 0 usa 30s.
func NewChromeCapturer(cfg Config, log *logger.Logger) *ChromeCapturer {
	if cfg.Scale <= 0 {
		cfg.Scale = 3
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &ChromeCapturer{cfg: cfg, log: log}
}

// Capture carga el HTML en una pestaña nueva y devuelve el PNG del elemento Selector.
func (c *ChromeCapturer) Capture(ctx context.Context, html []byte) ([]byte, error) {
	chromePath := DetectChromePath(c.cfg.ChromePath)
	if chromePath == "" {
		return nil, ErrChromeNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.ExecPath(chromePath),
		chromedp.NoSandbox,
		chromedp.DisableGPU,
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	start := time.Now()
	var shot []byte
	err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(viewportWidth, viewportHeight),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, string(html)).Do(ctx)
		}),
		chromedp.WaitReady(Selector, chromedp.ByQuery),
		// Espera a que carguen las imágenes (logo) antes de capturar.
		chromedp.Evaluate(`Promise.all(Array.from(document.images).map(img =>
			img.complete ? null : new Promise(resolve => { img.onload = img.onerror = resolve; })))`,
			nil,
			func(p *runtime.EvaluateParams) *runtime.EvaluateParams { return p.WithAwaitPromise(true) },
		),
		chromedp.ScreenshotScale(Selector, c.cfg.Scale, &shot, chromedp.NodeVisible, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("capture: chromedp: %w", err)
	}

	c.log.Debug().
		Str("chrome", chromePath).
		Float64("scale", c.cfg.Scale).
		Int("bytes", len(shot)).
		Dur("took", time.Since(start)).
		Msg("vista previa capturada")
	return shot, nil
}

// chromeCandidates rutas habituales de Chrome/Chromium.
var chromeCandidates = []string{
	"/usr/bin/chromium",
	"/usr/bin/chromium-browser",
	"/usr/bin/google-chrome",
	"/usr/bin/google-chrome-stable",
	"/snap/bin/chromium",
	"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
}

// DetectChromePath devuelve configured si existe; si no, la primera ruta conocida
// que exista. "" cuando no hay ninguna.
func DetectChromePath(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
	}
	for _, p := range chromeCandidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
