package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported quote providers.
const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
	ProviderNone      = "none"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Market    MarketConfig
	Gemini    GeminiConfig
	Anthropic AnthropicConfig
	Probe     ProbeConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// LogConfig holds logger options.
type LogConfig struct {
	Level string
}

// MarketConfig selects the live quote provider.
type MarketConfig struct {
	Provider    string
	HTTPTimeout time.Duration
}

// GeminiConfig contains credentials for the Gemini API.
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// AnthropicConfig contains credentials for the Anthropic Messages API.
type AnthropicConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// ProbeConfig holds the market probe schedule.
type ProbeConfig struct {
	CronSchedule string
	Timezone     string
	Watchlist    []WatchItem
}

// WatchItem is one species/region pair polled by the market probe.
type WatchItem struct {
	Species string
	Region  string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are fine when configuration comes from the environment.
		_ = godotenv.Load()
	}

	timeout, err := time.ParseDuration(getenvWithDefault("QUOTE_HTTP_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("QUOTE_HTTP_TIMEOUT: %w", err)
	}

	watchlist, err := ParseWatchlist(getenvWithDefault("PROBE_WATCHLIST", "cattle:SP,swine:SC,poultry:PR"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Log: LogConfig{
			Level: getenvWithDefault("LOG_LEVEL", "info"),
		},
		Market: MarketConfig{
			Provider:    strings.ToLower(getenvWithDefault("QUOTE_PROVIDER", ProviderGemini)),
			HTTPTimeout: timeout,
		},
		Gemini: GeminiConfig{
			APIKey:  os.Getenv("GEMINI_API_KEY"),
			Model:   getenvWithDefault("GEMINI_MODEL", "gemini-2.0-flash"),
			BaseURL: os.Getenv("GEMINI_BASE_URL"),
		},
		Anthropic: AnthropicConfig{
			APIKey:  os.Getenv("ANTHROPIC_API_KEY"),
			Model:   getenvWithDefault("ANTHROPIC_MODEL", "claude-3-haiku-20240307"),
			BaseURL: getenvWithDefault("ANTHROPIC_BASE_URL", "https://api.anthropic.com"),
		},
		Probe: ProbeConfig{
			CronSchedule: getenvWithDefault("PROBE_CRON_SCHEDULE", "0 7 * * 1-5"),
			Timezone:     getenvWithDefault("TIMEZONE", "America/Sao_Paulo"),
			Watchlist:    watchlist,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch c.Market.Provider {
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return errors.New("GEMINI_API_KEY must be provided when QUOTE_PROVIDER=gemini")
		}
		if c.Gemini.Model == "" {
			return errors.New("GEMINI_MODEL must not be empty")
		}
	case ProviderAnthropic:
		if c.Anthropic.APIKey == "" {
			return errors.New("ANTHROPIC_API_KEY must be provided when QUOTE_PROVIDER=anthropic")
		}
		if c.Anthropic.BaseURL == "" {
			return errors.New("ANTHROPIC_BASE_URL must not be empty")
		}
	case ProviderNone:
	default:
		return fmt.Errorf("unsupported QUOTE_PROVIDER %q", c.Market.Provider)
	}

	if c.Market.HTTPTimeout <= 0 {
		return errors.New("QUOTE_HTTP_TIMEOUT must be positive")
	}

	if c.Probe.CronSchedule != "" && c.Probe.Timezone == "" {
		return errors.New("TIMEZONE must be provided when the market probe is enabled")
	}

	return nil
}

// ParseWatchlist reads a comma separated list of species:region pairs.
func ParseWatchlist(raw string) ([]WatchItem, error) {
	var items []WatchItem
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		species, region, ok := strings.Cut(entry, ":")
		if !ok || strings.TrimSpace(species) == "" || strings.TrimSpace(region) == "" {
			return nil, fmt.Errorf("PROBE_WATCHLIST: invalid entry %q, want species:region", entry)
		}
		items = append(items, WatchItem{
			Species: strings.ToLower(strings.TrimSpace(species)),
			Region:  strings.ToUpper(strings.TrimSpace(region)),
		})
	}
	return items, nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
