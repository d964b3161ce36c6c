package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/factuurr/internal/application/editor"
	"github.com/jhoicas/factuurr/internal/application/export"
	"github.com/jhoicas/factuurr/internal/application/render"
	"github.com/jhoicas/factuurr/internal/application/settings"
	"github.com/jhoicas/factuurr/pkg/logger"
)

// PreviewRenderer pinta el Layout como HTML.
type PreviewRenderer interface {
	Render(l render.Layout) ([]byte, error)
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Editor   *editor.Controller
	Export   *export.PDFUseCase
	Settings *settings.UseCase
	Logo     *settings.LogoUseCase
	Preview  PreviewRenderer
	Log      *logger.Logger
	AppName  string
}

// Router registra las rutas de la aplicación.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(RequestLogger(deps.Log))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	// Vista previa
	previewHandler := NewPreviewHandler(deps.Editor, deps.Preview)
	app.Get("/", previewHandler.Page)
	app.Get("/preview", previewHandler.Page)

	api := app.Group("/api")

	// Sesión
	sessionHandler := NewSessionHandler(deps.Editor)
	api.Get("/session", sessionHandler.Get)
	api.Put("/session/variant", sessionHandler.SetVariant)

	// Documento activo
	documentHandler := NewDocumentHandler(deps.Editor, deps.Logo)
	api.Patch("/document", documentHandler.UpdateFields)
	document := api.Group("/document")
	document.Put("/vat-exempt", documentHandler.SetVATExempt)
	document.Patch("/sender", documentHandler.UpdateSender)
	document.Patch("/client", documentHandler.UpdateClient)
	document.Get("/layout", documentHandler.Layout)
	document.Post("/logo", documentHandler.UploadLogo)

	// Líneas
	itemHandler := NewItemHandler(deps.Editor)
	document.Post("/items", itemHandler.Add)
	document.Patch("/items/:id", itemHandler.Update)
	document.Delete("/items/:id", itemHandler.Remove)

	// Exportación PDF
	exportHandler := NewExportHandler(deps.Editor, deps.Export)
	api.Get("/export/pdf", exportHandler.PDF)

	// Configuración del emisor
	settingsHandler := NewSettingsHandler(deps.Settings)
	api.Get("/settings/export", settingsHandler.Export)
	api.Post("/settings/import", settingsHandler.Import)
}
