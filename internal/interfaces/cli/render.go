package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/factuurr/internal/application/export"
	"github.com/jhoicas/factuurr/internal/application/render"
	"github.com/jhoicas/factuurr/internal/domain/entity"
	"github.com/jhoicas/factuurr/internal/infrastructure/html"
	"github.com/jhoicas/factuurr/pkg/config"
)

func newRenderCmd(e *env) *cobra.Command {
	var input, output, mode string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Exporta un documento JSON a PDF",
		Example: `  factuurr render -i factuur.json
  factuurr render -i offerte.json -o offerte.pdf --mode raster`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := readDocument(input)
			if err != nil {
				return err
			}

			exportCfg := e.cfg.Export
			if mode != "" {
				if mode != config.ExportModeVector && mode != config.ExportModeRaster {
					return fmt.Errorf("render: modo desconocido %q (vector|raster)", mode)
				}
				exportCfg.Mode = mode
			}
			preview, err := html.NewPreviewRenderer()
			if err != nil {
				return err
			}

			uc := export.NewPDFUseCase(newGenerator(exportCfg, preview, e.log), e.log.Component("export"))
			pdf, name, err := uc.Export(cmd.Context(), doc)
			if err != nil {
				return err
			}
			if output == "" {
				output = name
			}
			if err := os.WriteFile(output, pdf, 0o644); err != nil {
				return fmt.Errorf("render: escribir %s: %w", output, err)
			}
			cmd.Printf("PDF escrito en %s (%d bytes)\n", output, len(pdf))
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "documento JSON de entrada")
	cmd.Flags().StringVarP(&output, "output", "o", "", "PDF de salida (por defecto factuur_<número>.pdf)")
	cmd.Flags().StringVar(&mode, "mode", "", "vector | raster (por defecto EXPORT_MODE)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func newPreviewCmd(_ *env) *cobra.Command {
	var input, output string
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Escribe la vista previa HTML de un documento JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := readDocument(input)
			if err != nil {
				return err
			}
			preview, err := html.NewPreviewRenderer()
			if err != nil {
				return err
			}
			page, err := preview.Render(render.Render(doc))
			if err != nil {
				return err
			}
			if output == "" {
				_, err = cmd.OutOrStdout().Write(page)
				return err
			}
			if err := os.WriteFile(output, page, 0o644); err != nil {
				return fmt.Errorf("preview: escribir %s: %w", output, err)
			}
			cmd.Printf("vista previa escrita en %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "documento JSON de entrada")
	cmd.Flags().StringVarP(&output, "output", "o", "", "HTML de salida (por defecto stdout)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

// readDocument lee y valida un documento JSON.
func readDocument(path string) (entity.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return entity.Document{}, fmt.Errorf("leer %s: %w", path, err)
	}
	var doc entity.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return entity.Document{}, fmt.Errorf("decodificar %s: %w", path, err)
	}
	if err := doc.Validate(); err != nil {
		return entity.Document{}, err
	}
	return doc, nil
}
