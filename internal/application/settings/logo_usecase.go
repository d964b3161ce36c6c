package settings

import (
	"fmt"
	"io"

	"github.com/jhoicas/factuurr/internal/domain"
	"github.com/jhoicas/factuurr/pkg/logger"
)

// LogoUseCase sube el logo del emisor activo.
type LogoUseCase struct {
	store    SenderStore
	encoder  LogoEncoder
	maxBytes int64
	log      *logger.Logger
}

// NewLogoUseCase construye el caso de uso. maxBytes limita el tamaño de la imagen original.
func NewLogoUseCase(store SenderStore, encoder LogoEncoder, maxBytes int64, log *logger.Logger) *LogoUseCase {
	return &LogoUseCase{store: store, encoder: encoder, maxBytes: maxBytes, log: log}
}

// Upload codifica la imagen y la guarda como logo. Si la imagen no se puede
// decodificar o supera el límite, la sesión no cambia.
func (uc *LogoUseCase) Upload(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, uc.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("logo: leer imagen: %w", err)
	}
	if int64(len(data)) > uc.maxBytes {
		return "", fmt.Errorf("%w: la imagen supera %d bytes", domain.ErrUnsupportedImage, uc.maxBytes)
	}
	url, err := uc.encoder.Encode(data)
	if err != nil {
		uc.log.Warn().Err(err).Msg("logo rechazado")
		return "", err
	}
	uc.store.SetLogo(url)
	return url, nil
}
