// Package docs especificación OpenAPI (swag) de la API HTTP.
package docs

import (
	_ "embed"

	"github.com/swaggo/swag"
)

// SwaggerJSON documento servido en /docs/swagger.json.
//
//go:embed swagger.json
var SwaggerJSON []byte

// SwaggerInfo metadatos registrados en swag.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "factuurr API",
	Description:      "Editor local de facturas y offertes belgas: vista previa, líneas, BTW y exportación PDF.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  string(SwaggerJSON),
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
