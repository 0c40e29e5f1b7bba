package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración del cliente (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	Platform PlatformConfig
	Store    StoreConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// PlatformConfig configuración del API REST de la plataforma de comercio.
type PlatformConfig struct {
	BaseURL string        // ej. https://tienda.example.com
	Timeout time.Duration // timeout de red por petición
}

// Validate comprueba que la URL base sea absoluta con esquema http/https.
func (c PlatformConfig) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("PLATFORM_BASE_URL inválida: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("PLATFORM_BASE_URL debe ser absoluta con host, recibido: %q", c.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("PLATFORM_BASE_URL debe usar http o https, recibido: %q", u.Scheme)
	}
	return nil
}

// StoreConfig configuración de la persistencia local de credenciales.
type StoreConfig struct {
	CredentialsPath string // ruta del archivo de credenciales; vacío = valor por defecto en el home
}

// Path devuelve la ruta efectiva del archivo de credenciales.
func (c StoreConfig) Path() string {
	if c.CredentialsPath != "" {
		return c.CredentialsPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tienda-backoffice.json"
	}
	return filepath.Join(home, ".tienda-backoffice", "credentials.json")
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, PLATFORM_BASE_URL, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "tienda-backoffice"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		Platform: PlatformConfig{
			BaseURL: getString(v, "PLATFORM_BASE_URL", "http://localhost:8080"),
			Timeout: time.Duration(getInt(v, "PLATFORM_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		Store: StoreConfig{
			CredentialsPath: getString(v, "CREDENTIALS_PATH", ""),
		},
	}

	if err := cfg.Platform.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
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
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
