package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"

	"github.com/jhoicas/factuurr/internal/application/editor"
	"github.com/jhoicas/factuurr/internal/application/export"
	"github.com/jhoicas/factuurr/internal/application/settings"
	"github.com/jhoicas/factuurr/internal/infrastructure/html"
	"github.com/jhoicas/factuurr/internal/infrastructure/logo"
	httpRouter "github.com/jhoicas/factuurr/internal/interfaces/http"
)

func newServeCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Arranca el servidor local (vista previa + API)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(e)
		},
	}
}

func runServe(e *env) error {
	cfg, log := e.cfg, e.log
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("export_mode", cfg.Export.Mode).
		Msg("iniciando aplicación")

	preview, err := html.NewPreviewRenderer()
	if err != nil {
		return err
	}

	session := editor.New(editor.Options{
		DueDays:   cfg.Document.DueDays,
		ValidDays: cfg.Document.ValidDays,
	})
	generator := newGenerator(cfg.Export, preview, log)
	exportUC := export.NewPDFUseCase(generator, log.Component("export"))
	settingsUC := settings.NewUseCase(session, log.Component("settings"))
	logoUC := settings.NewLogoUseCase(
		session,
		logo.NewEncoder(cfg.Logo.MaxWidth, cfg.Logo.MaxHeight),
		cfg.Logo.MaxBytes,
		log.Component("logo"),
	)

	// La exportación raster puede tardar lo que permita EXPORT_TIMEOUT_SECONDS.
	writeTimeout := max(cfg.Export.Timeout+5*time.Second, 10*time.Second)
	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		ReadTimeout:           time.Second * 10,
		WriteTimeout:          writeTimeout,
		IdleTimeout:           time.Second * 60,
		BodyLimit:             int(cfg.Logo.MaxBytes) + 1<<20,
		DisableStartupMessage: true,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(httpRouter.SwaggerConfig()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Editor:   session,
		Export:   exportUC,
		Settings: settingsUC,
		Logo:     logoUC,
		Preview:  preview,
		Log:      log.Component("http"),
		AppName:  cfg.App.Name,
	})

	listenErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", fmt.Sprintf("http://%s", cfg.HTTP.Addr())).Msg("servidor HTTP escuchando")
		listenErr <- app.Listen(cfg.HTTP.Addr())
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-listenErr:
		return fmt.Errorf("servidor HTTP: %w", err)
	case <-quit:
	}

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
	return nil
}
