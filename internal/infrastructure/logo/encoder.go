// Package logo normaliza el logo del emisor y lo convierte en un data URL PNG.
package logo

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // registra el decodificador webp

	"github.com/jhoicas/factuurr/internal/domain"
)

// PNGPrefix prefijo de los data URL que produce el encoder.
const PNGPrefix = "data:image/png;base64,"

// Encoder redimensiona (sin ampliar) el logo dentro de MaxWidth×MaxHeight.
type Encoder struct {
	MaxWidth  int
	MaxHeight int
}

// NewEncoder construye el encoder con los límites dados.
func NewEncoder(maxWidth, maxHeight int) *Encoder {
	return &Encoder{MaxWidth: maxWidth, MaxHeight: maxHeight}
}

// Encode decodifica png/jpeg/gif/bmp/tiff/webp y devuelve un data URL PNG.
func (e *Encoder) Encode(data []byte) (string, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUnsupportedImage, err)
	}

	b := img.Bounds()
	if e.MaxWidth > 0 && e.MaxHeight > 0 && (b.Dx() > e.MaxWidth || b.Dy() > e.MaxHeight) {
		img = imaging.Fit(img, e.MaxWidth, e.MaxHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return "", fmt.Errorf("logo: codificar png: %w", err)
	}
	return PNGPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// ── Data URL ──────────────────────────────────────────────────────────────────

// DataURL contenido decodificado de un data URL base64.
type DataURL struct {
	MediaType string
	Data      []byte
}

// ParseDataURL decodifica "data:<media>;base64,<datos>". Otros handles (URLs
// remotas, rutas) devuelven false.
func ParseDataURL(s string) (DataURL, bool) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return DataURL{}, false
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return DataURL{}, false
	}
	media, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return DataURL{}, false
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return DataURL{}, false
	}
	return DataURL{MediaType: strings.ToLower(media), Data: raw}, true
}
