// Package filename normaliza nombres de archivo de descarga.
package filename

import (
	"regexp"
	"strings"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9]`)

// Sanitize sustituye todo carácter fuera de [a-zA-Z0-9] por "_" y pasa a minúsculas.
// Ej: "OFF-2024/001" → "off_2024_001".
func Sanitize(name string) string {
	return strings.ToLower(unsafeChars.ReplaceAllString(name, "_"))
}
