package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Title != "Painel Bibliotecas - Atricon" {
		t.Errorf("Server.Title = %q", cfg.Server.Title)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.Dataset.Path != "Base_Painel.xlsx" {
		t.Errorf("Dataset.Path = %q, want %q", cfg.Dataset.Path, "Base_Painel.xlsx")
	}
	if cfg.Chart.Height != 500 {
		t.Errorf("Chart.Height = %d, want %d", cfg.Chart.Height, 500)
	}
	if cfg.Chart.AccentColor != "#0071BC" {
		t.Errorf("Chart.AccentColor = %q, want %q", cfg.Chart.AccentColor, "#0071BC")
	}
	if cfg.Rate.RequestsPerMinute != 120 {
		t.Errorf("Rate.RequestsPerMinute = %d, want %d", cfg.Rate.RequestsPerMinute, 120)
	}

	wantBlocks := []string{"By Education Stage", "By Network Type", "By Region", "By State"}
	if len(cfg.Dataset.Blocks) != len(wantBlocks) {
		t.Fatalf("Dataset.Blocks length = %d, want %d", len(cfg.Dataset.Blocks), len(wantBlocks))
	}
	for i, b := range wantBlocks {
		if cfg.Dataset.Blocks[i] != b {
			t.Errorf("Dataset.Blocks[%d] = %q, want %q", i, cfg.Dataset.Blocks[i], b)
		}
	}
}

func TestLoad_OverrideDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATASET_PATH", "/data/base.xlsx")
	t.Setenv("CHART_HEIGHT", "640")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Dataset.Path != "/data/base.xlsx" {
		t.Errorf("Dataset.Path = %q, want %q", cfg.Dataset.Path, "/data/base.xlsx")
	}
	if cfg.Chart.Height != 640 {
		t.Errorf("Chart.Height = %d, want %d", cfg.Chart.Height, 640)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_AltEnvVar(t *testing.T) {
	t.Setenv("DATASET_PATH", "")
	t.Setenv("PAINEL_DATASET", "alt.xlsx")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Dataset.Path != "alt.xlsx" {
		t.Errorf("Dataset.Path = %q, want %q", cfg.Dataset.Path, "alt.xlsx")
	}
}

func TestLoad_Duration(t *testing.T) {
	t.Setenv("SERVER_READ_TIMEOUT", "45s")
	t.Setenv("CACHE_RENDER_TTL", "1m30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.ReadTimeout != 45*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want %v", cfg.Server.ReadTimeout, 45*time.Second)
	}
	if cfg.Cache.RenderTTL != 90*time.Second {
		t.Errorf("Cache.RenderTTL = %v, want %v", cfg.Cache.RenderTTL, 90*time.Second)
	}
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("SERVER_PORT", "eighty")

	if _, err := Load(); err == nil {
		t.Fatal("Load() expected error for non-numeric SERVER_PORT")
	}
}

func TestLoad_CommaSeparatedSlice(t *testing.T) {
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 172.16.0.0/12 , 192.168.0.0/16")
	t.Setenv("DATASET_BLOCKS", "Por Região, Por Estado")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	expected := []string{"10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"}
	if len(cfg.Security.TrustedProxies) != len(expected) {
		t.Fatalf("TrustedProxies length = %d, want %d", len(cfg.Security.TrustedProxies), len(expected))
	}
	for i, v := range expected {
		if cfg.Security.TrustedProxies[i] != v {
			t.Errorf("TrustedProxies[%d] = %q, want %q", i, cfg.Security.TrustedProxies[i], v)
		}
	}

	if len(cfg.Dataset.Blocks) != 2 || cfg.Dataset.Blocks[0] != "Por Região" || cfg.Dataset.Blocks[1] != "Por Estado" {
		t.Errorf("Dataset.Blocks = %v, want [Por Região Por Estado]", cfg.Dataset.Blocks)
	}
}

func validConfig() *Config {
	return &Config{
		Server:  ServerConfig{Port: 8080, ShutdownTimeout: time.Second, RequestTimeout: time.Second},
		Dataset: DatasetConfig{Path: "base.xlsx", Blocks: []string{"By Region"}},
		Chart:   ChartConfig{Height: 500, AccentColor: "#0071BC", PNGWidth: 800, PNGHeight: 400, MaxConcurrentRenders: 2, RenderWait: time.Second},
		Rate:    RateLimitConfig{Enabled: true, RequestsPerMinute: 100},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid config",
			mutate: func(*Config) {},
		},
		{
			name:    "invalid port",
			mutate:  func(c *Config) { c.Server.Port = 99999 },
			wantErr: "SERVER_PORT",
		},
		{
			name:    "empty dataset path",
			mutate:  func(c *Config) { c.Dataset.Path = "  " },
			wantErr: "DATASET_PATH",
		},
		{
			name:    "no blocks",
			mutate:  func(c *Config) { c.Dataset.Blocks = nil },
			wantErr: "DATASET_BLOCKS",
		},
		{
			name:    "no render slots",
			mutate:  func(c *Config) { c.Chart.MaxConcurrentRenders = 0 },
			wantErr: "CHART_MAX_CONCURRENT_RENDERS",
		},
		{
			name:    "bad accent color",
			mutate:  func(c *Config) { c.Chart.AccentColor = "blue" },
			wantErr: "CHART_ACCENT_COLOR",
		},
		{
			name:    "zero chart height",
			mutate:  func(c *Config) { c.Chart.Height = 0 },
			wantErr: "CHART_HEIGHT",
		},
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "LOG_LEVEL",
		},
		{
			name:    "rate limit enabled without budget",
			mutate:  func(c *Config) { c.Rate.RequestsPerMinute = 0 },
			wantErr: "RATE_LIMIT_REQUESTS_PER_MINUTE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error mentioning %s", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error should mention %s: %v", tt.wantErr, err)
			}
		})
	}
}

func TestServerAddr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"", 8080, ":8080"},
		{"0.0.0.0", 8080, "0.0.0.0:8080"},
		{"127.0.0.1", 3000, "127.0.0.1:3000"},
	}

	for _, tt := range tests {
		cfg := &ServerConfig{Host: tt.host, Port: tt.port}
		if got := cfg.Addr(); got != tt.want {
			t.Errorf("Addr() with host=%q, port=%d = %q, want %q", tt.host, tt.port, got, tt.want)
		}
	}
}

func TestConfigString(t *testing.T) {
	str := validConfig().String()
	if !strings.Contains(str, `Path: "base.xlsx"`) {
		t.Errorf("String() = %s, want dataset path", str)
	}
}
