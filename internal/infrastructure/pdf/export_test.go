package pdf

import "github.com/jhoicas/factuurr/internal/application/render"

// FooterTexts expone los textos del pie para los tests externos.
func FooterTexts(f *render.Footer) []string {
	var out []string
	for _, l := range footerLines(f) {
		out = append(out, l.text)
	}
	return out
}
