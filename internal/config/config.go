// Package config provides centralized configuration management for the dashboard.
// Settings come from environment variables with defaults and are validated on
// startup so a misconfigured deployment fails before it serves a page.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Dataset  DatasetConfig
	Chart    ChartConfig
	Cache    CacheConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"15s"`

	// Title is the page title and sidebar header (default: Painel Bibliotecas - Atricon)
	Title string `env:"DASHBOARD_TITLE" default:"Painel Bibliotecas - Atricon"`

	// RequestTimeout bounds a single dashboard recompute (default: 30s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"30s"`
}

// DatasetConfig describes the spreadsheet the dashboard is built from.
type DatasetConfig struct {
	// Path is the xlsx file loaded once at startup (default: Base_Painel.xlsx)
	Path string `env:"DATASET_PATH" envAlt:"PAINEL_DATASET" default:"Base_Painel.xlsx"`

	// Sheet is the worksheet to read; empty means the first sheet.
	Sheet string `env:"DATASET_SHEET"`

	// Blocks is the ordered list offered by the block selector. Dataset
	// blocks missing from it are appended; when none of it occurs in the
	// dataset, the dataset's own blocks are offered instead.
	// The first entry is the default selection.
	Blocks []string `env:"DATASET_BLOCKS" default:"By Education Stage,By Network Type,By Region,By State"`
}

// ChartConfig holds chart presentation settings.
type ChartConfig struct {
	// Height is the fixed height of each interactive chart in pixels (default: 500)
	Height int `env:"CHART_HEIGHT" default:"500"`

	// AccentColor is the facet header color (default: #0071BC)
	AccentColor string `env:"CHART_ACCENT_COLOR" default:"#0071BC"`

	// PNGWidth and PNGHeight size the static rendering, in points.
	PNGWidth  int `env:"CHART_PNG_WIDTH" default:"1200"`
	PNGHeight int `env:"CHART_PNG_HEIGHT" default:"500"`

	// MaxConcurrentRenders bounds parallel PNG renders (default: 4)
	MaxConcurrentRenders int `env:"CHART_MAX_CONCURRENT_RENDERS" default:"4"`

	// RenderWait is how long a PNG request waits for a render slot (default: 10s)
	RenderWait time.Duration `env:"CHART_RENDER_WAIT" default:"10s"`
}

// CacheConfig holds settings for memoized renders.
type CacheConfig struct {
	// RenderTTL is how long a rendered PNG is reused for the same selection (default: 10m)
	RenderTTL time.Duration `env:"CACHE_RENDER_TTL" default:"10m"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the limit per client IP (default: 120)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"120"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`

	// AllowedOrigins enables CORS on /api for the listed origins.
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
