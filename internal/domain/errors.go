package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrInvalidVariant   = errors.New("variante de documento desconocida")
	ErrVariantMismatch  = errors.New("campo no disponible para la variante activa")
	ErrInvalidDocument  = errors.New("documento inválido")
	ErrInvalidSettings  = errors.New("archivo de configuración inválido")
	ErrUnsupportedImage = errors.New("imagen no soportada")
	ErrExportInProgress = errors.New("ya hay una exportación en curso")
)
