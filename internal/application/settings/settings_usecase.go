// Package settings exporta e importa los datos del emisor y gestiona el logo.
package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/jhoicas/factuurr/internal/domain"
	"github.com/jhoicas/factuurr/internal/domain/entity"
	"github.com/jhoicas/factuurr/pkg/filename"
	"github.com/jhoicas/factuurr/pkg/logger"
)

// maxSettingsBytes límite de tamaño de un archivo de configuración (el logo va embebido).
const maxSettingsBytes = 8 << 20

// UseCase exportación/importación del emisor del documento activo.
type UseCase struct {
	store SenderStore
	log   *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(store SenderStore, log *logger.Logger) *UseCase {
	return &UseCase{store: store, log: log}
}

// Export devuelve el JSON (indentado con dos espacios) del emisor activo y el nombre
// de archivo "factuurr_instellingen_<empresa>.json".
func (uc *UseCase) Export() (data []byte, name string, err error) {
	sender := uc.store.Active().Sender
	data, err = json.MarshalIndent(sender, "", "  ")
	if err != nil {
		return nil, "", fmt.Errorf("settings: serializar emisor: %w", err)
	}
	return data, FileName(sender), nil
}

// FileName nombre del archivo de configuración para un emisor.
func FileName(sender entity.Party) string {
	company := sender.Name
	if company == "" {
		company = "bedrijf"
	}
	return "factuurr_instellingen_" + filename.Sanitize(company) + ".json"
}

// Import sustituye el emisor activo por el contenido del archivo. Si el archivo no
// es un objeto JSON válido devuelve ErrInvalidSettings y la sesión no cambia.
func (uc *UseCase) Import(r io.Reader) (entity.Party, error) {
	raw, err := io.ReadAll(io.LimitReader(r, maxSettingsBytes+1))
	if err != nil {
		return entity.Party{}, fmt.Errorf("settings: leer archivo: %w", err)
	}
	sender, err := ParseSender(raw)
	if err != nil {
		uc.log.Warn().Err(err).Msg("importación de configuración rechazada")
		return entity.Party{}, err
	}
	uc.store.ReplaceSender(sender)
	uc.log.Info().Str("sender", sender.Name).Msg("configuración importada")
	return sender, nil
}

// ParseSender decodifica un emisor. No valida campos individualmente.
func ParseSender(raw []byte) (entity.Party, error) {
	if len(raw) > maxSettingsBytes {
		return entity.Party{}, fmt.Errorf("%w: archivo demasiado grande", domain.ErrInvalidSettings)
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return entity.Party{}, fmt.Errorf("%w: se esperaba un objeto JSON", domain.ErrInvalidSettings)
	}
	var sender entity.Party
	if err := json.Unmarshal(trimmed, &sender); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return entity.Party{}, fmt.Errorf("%w: JSON mal formado en el byte %d", domain.ErrInvalidSettings, syntaxErr.Offset)
		}
		return entity.Party{}, fmt.Errorf("%w: %v", domain.ErrInvalidSettings, err)
	}
	return sender, nil
}
