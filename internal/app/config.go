package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the complete front-server configuration, loadable from
// environment variables (BISTRO_ prefix), flags, or YAML config files.
type Config struct {
	Addr            string        `default:"0.0.0.0:8080" usage:"Front server listen address"`
	UpstreamURL     string        `usage:"Base URL of the restaurant API (BISTRO_UPSTREAM_URL or UPSTREAM_URL)" flag:"upstream-url"`
	UpstreamTimeout time.Duration `default:"10s" usage:"Per-request timeout for upstream API calls" flag:"upstream-timeout"`
	PollInterval    time.Duration `default:"30s" usage:"Kitchen board auto-refresh interval" flag:"poll-interval"`
	RateLimit       RateLimitConfig
	CORS            CORSConfig
	Graceful        GracefulConfig
}

// RateLimitConfig controls the per-client rate limiter.
type RateLimitConfig struct {
	Max    int           `default:"100" usage:"Max requests per window"`
	Window time.Duration `default:"1m"  usage:"Rate limit window duration"`
}

// CORSConfig controls Cross-Origin Resource Sharing headers.
type CORSConfig struct {
	Origins []string `default:"*" usage:"Allowed CORS origins"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// LoadConfig loads configuration from environment variables, YAML config
// files, and applies platform-specific defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "BISTRO",
		Files:     []string{"config.yaml", "/etc/bistro/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	if cfg.UpstreamURL == "" {
		return nil, errors.New("upstream URL is required: set BISTRO_UPSTREAM_URL or UPSTREAM_URL")
	}

	return &cfg, nil
}

// applyPlatformDefaults maps platform-provided environment variables that
// use standard names like UPSTREAM_URL and PORT to the application's
// BISTRO_-prefixed configuration.
func (c *Config) applyPlatformDefaults() {
	if c.UpstreamURL == "" {
		if v := os.Getenv("UPSTREAM_URL"); v != "" {
			c.UpstreamURL = v
		}
	}
	if port := os.Getenv("PORT"); port != "" && c.Addr == "0.0.0.0:8080" {
		c.Addr = "0.0.0.0:" + port
	}
}
