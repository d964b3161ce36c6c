package http

import (
	"github.com/gofiber/contrib/swagger"

	"github.com/jhoicas/factuurr/docs"
)

// SwaggerConfig Swagger UI en /docs con la especificación embebida.
func SwaggerConfig() swagger.Config {
	return swagger.Config{
		BasePath:    "/",
		FilePath:    "./docs/swagger.json",
		FileContent: docs.SwaggerJSON,
		Path:        "docs",
		Title:       "factuurr API",
	}
}
