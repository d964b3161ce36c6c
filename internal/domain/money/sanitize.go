package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Límites de lo que acepta ParseAmount: parte entera por debajo de 1e15 y
// como mucho 20 decimales (el resto se trunca).
const (
	maxIntegerDigits  = 15
	maxFractionDigits = 20
)

// ParseAmount convierte el texto introducido por el usuario en una cantidad o
// precio válido. Nunca falla: vacío, texto no numérico, notación exponencial,
// NaN/Inf, valores negativos o de 1e15 en adelante se sustituyen por 0.
//
// Acepta coma como separador decimal. Si aparecen los dos separadores, el
// último es el decimal y el otro agrupa miles ("1.234,56" y "1,234.56").
func ParseAmount(text string) decimal.Decimal {
	intPart, frac, ok := splitAmount(normalizeSeparators(strings.TrimSpace(text)))
	if !ok {
		return decimal.Zero
	}
	intPart = strings.TrimLeft(intPart, "0")
	if len(intPart) > maxIntegerDigits {
		return decimal.Zero
	}
	if len(frac) > maxFractionDigits {
		frac = frac[:maxFractionDigits]
	}
	if intPart == "" {
		intPart = "0"
	}
	s := intPart
	if frac != "" {
		s += "." + frac
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// normalizeSeparators deja un único punto decimal.
func normalizeSeparators(s string) string {
	comma, dot := strings.LastIndexByte(s, ','), strings.LastIndexByte(s, '.')
	switch {
	case comma > dot:
		s = strings.ReplaceAll(s, ".", "")
		return strings.Replace(s, ",", ".", 1)
	case comma >= 0:
		return strings.ReplaceAll(s, ",", "")
	}
	return s
}

// splitAmount separa parte entera y decimales. Solo admite dígitos y un punto.
func splitAmount(s string) (intPart, frac string, ok bool) {
	intPart = s
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i+1:]
	}
	if intPart == "" && frac == "" {
		return "", "", false
	}
	if !onlyDigits(intPart) || !onlyDigits(frac) {
		return "", "", false
	}
	return intPart, frac, true
}

func onlyDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
