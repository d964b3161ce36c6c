package settings

import "github.com/jhoicas/factuurr/internal/domain/entity"

// SenderStore parte del editor que usan los casos de uso de configuración.
type SenderStore interface {
	Active() entity.Document
	ReplaceSender(sender entity.Party)
	SetLogo(url string)
}

// LogoEncoder convierte una imagen subida en un handle embebible (data URL).
type LogoEncoder interface {
	Encode(data []byte) (string, error)
}
