package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Server configuration defaults (overridable via environment)
const (
	DefaultRowLimit    = 10
	DefaultHTTPTimeout = 30 * time.Second
)

// Config holds everything the server needs from the environment. The
// service-role key is an opaque credential: it is stored here only long
// enough to hand to the client at startup.
type Config struct {
	ProjectURL  string
	ServiceKey  string
	RowLimit    int
	HTTPTimeout time.Duration
}

// LoadConfig reads configuration from the environment, with an optional .env
// file in the working directory taken into account first.
func LoadConfig() (*Config, error) {
	// Missing .env is fine; explicit environment always wins.
	_ = godotenv.Load()

	cfg := &Config{
		ProjectURL:  os.Getenv("SUPABASE_URL"),
		ServiceKey:  os.Getenv("SUPABASE_SERVICE_ROLE_KEY"),
		RowLimit:    DefaultRowLimit,
		HTTPTimeout: DefaultHTTPTimeout,
	}

	var missing []string
	if cfg.ProjectURL == "" {
		missing = append(missing, "SUPABASE_URL")
	}
	if cfg.ServiceKey == "" {
		missing = append(missing, "SUPABASE_SERVICE_ROLE_KEY")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %v", missing)
	}

	if raw := os.Getenv("MCP_DEFAULT_ROW_LIMIT"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return nil, fmt.Errorf("invalid MCP_DEFAULT_ROW_LIMIT: %q", raw)
		}
		cfg.RowLimit = limit
	}

	if raw := os.Getenv("MCP_HTTP_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil || timeout <= 0 {
			return nil, fmt.Errorf("invalid MCP_HTTP_TIMEOUT: %q", raw)
		}
		cfg.HTTPTimeout = timeout
	}

	return cfg, nil
}
