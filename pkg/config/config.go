package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config groups the application configuration (read via Viper from env
// vars and optionally from a file).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Storage StorageConfig
	Render  RenderConfig
}

// AppConfig general application settings.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig settings of the HTTP server.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr returns the listen address (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StorageConfig locations of the persisted files.
type StorageConfig struct {
	DataDir   string // directory of the aggregate snapshot (account.data)
	PrefPath  string // preferences file (pref.json)
	OutputDir string // default output root for per-house documents
}

// RenderConfig knobs of the page-render pipeline.
type RenderConfig struct {
	Workers        int    // bounded concurrency for page rendering
	TimeoutSeconds int    // per-page render timeout
	FontPath       string // optional UTF-8 TTF for Cyrillic receipt text
}

// Timeout returns the per-page render timeout as a duration.
func (c RenderConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Load reads the configuration from environment variables (and optionally
// from a .env/config.env file). Env vars take precedence. Expected names:
// APP_ENV, HTTP_PORT, DATA_DIR, OUTPUT_DIR, RENDER_WORKERS, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Optional config file (.env or config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // missing file is fine

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // missing file is fine

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "bills-api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "127.0.0.1"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Storage: StorageConfig{
			DataDir:   getString(v, "DATA_DIR", "./data"),
			PrefPath:  getString(v, "PREF_PATH", "./pref/pref.json"),
			OutputDir: getString(v, "OUTPUT_DIR", "./out"),
		},
		Render: RenderConfig{
			Workers:        getInt(v, "RENDER_WORKERS", 4),
			TimeoutSeconds: getInt(v, "RENDER_TIMEOUT_SECONDS", 30),
			FontPath:       getString(v, "RENDER_FONT_PATH", ""),
		},
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
