// Package cli define los comandos de factuurr (cobra).
package cli

import (
	"github.com/spf13/cobra"

	"github.com/jhoicas/factuurr/pkg/config"
	"github.com/jhoicas/factuurr/pkg/logger"
)

var version = "dev"

// env estado compartido por los subcomandos, cargado en PersistentPreRunE.
type env struct {
	cfg *config.Config
	log *logger.Logger
}

// NewRootCmd construye el árbol de comandos.
func NewRootCmd() *cobra.Command {
	e := &env{}
	var logLevel string

	root := &cobra.Command{
		Use:   "factuurr",
		Short: "Generador local de facturas y offertes",
		Long: `factuurr edita facturas (factuur) y presupuestos (offerte) para pequeñas
empresas belgas, calcula subtotales y BTW, y exporta el documento a PDF.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.App.LogLevel = logLevel
			}
			e.cfg = cfg
			e.log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
			return nil
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "nivel de log (trace, debug, info, warn, error)")

	root.AddCommand(newServeCmd(e), newRenderCmd(e), newPreviewCmd(e), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Muestra la versión",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("factuurr version %s\n", version)
		},
	}
}
