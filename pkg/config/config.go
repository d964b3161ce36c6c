package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Modos de exportación PDF.
const (
	ExportModeVector = "vector"
	ExportModeRaster = "raster"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Export   ExportConfig
	Logo     LogoConfig
	Document DocumentConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP local.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ExportConfig configuración de la exportación PDF.
type ExportConfig struct {
	Mode       string  // vector | raster
	Scale      float64 // factor de escala de la captura raster
	Timeout    time.Duration
	ChromePath string // vacío = autodetección
}

// LogoConfig límites del logo subido.
type LogoConfig struct {
	MaxWidth  int
	MaxHeight int
	MaxBytes  int64
}

// DocumentConfig plazos por defecto de los documentos nuevos, en días.
type DocumentConfig struct {
	DueDays   int
	ValidDays int
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, EXPORT_MODE, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	// También intenta config.env
	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "factuurr"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "127.0.0.1"),
			Port: getInt(v, "HTTP_PORT", 3000),
		},
		Export: ExportConfig{
			Mode:       strings.ToLower(getString(v, "EXPORT_MODE", ExportModeVector)),
			Scale:      getFloat(v, "EXPORT_SCALE", 3),
			Timeout:    time.Duration(getInt(v, "EXPORT_TIMEOUT_SECONDS", 30)) * time.Second,
			ChromePath: getString(v, "CHROME_PATH", ""),
		},
		Logo: LogoConfig{
			MaxWidth:  getInt(v, "LOGO_MAX_WIDTH", 480),
			MaxHeight: getInt(v, "LOGO_MAX_HEIGHT", 240),
			MaxBytes:  int64(getInt(v, "LOGO_MAX_BYTES", 5<<20)),
		},
		Document: DocumentConfig{
			DueDays:   getInt(v, "DOC_DUE_DAYS", 14),
			ValidDays: getInt(v, "DOC_VALID_DAYS", 30),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Export.Mode {
	case ExportModeVector, ExportModeRaster:
	default:
		return fmt.Errorf("config: EXPORT_MODE inválido %q (vector|raster)", c.Export.Mode)
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("config: HTTP_PORT inválido %d", c.HTTP.Port)
	}
	if c.Export.Scale <= 0 {
		return fmt.Errorf("config: EXPORT_SCALE debe ser > 0")
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getFloat(v *viper.Viper, key string, def float64) float64 {
	if v.IsSet(key) {
		f, err := strconv.ParseFloat(strings.TrimSpace(v.GetString(key)), 64)
		if err != nil {
			return def
		}
		return f
	}
	return def
}
