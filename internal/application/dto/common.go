package dto

import (
	"encoding/json"
	"strings"
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NumericText texto numérico tal como lo escribió el usuario. Acepta en JSON
// tanto una cadena ("12,5") como un número (12.5); el saneado lo hace money.ParseAmount.
type NumericText string

// UnmarshalJSON implementa json.Unmarshaler.
func (n *NumericText) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = NumericText(s)
		return nil
	}
	*n = NumericText(strings.TrimSpace(string(b)))
	return nil
}
