package main

import (
	"strings"
	"testing"
	"time"
)

func TestLoadConfig_MissingCredentials(t *testing.T) {
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_SERVICE_ROLE_KEY", "")

	_, err := LoadConfig()
	if err == nil {
		t.Fatal("Expected an error when credentials are missing")
	}
	for _, name := range []string{"SUPABASE_URL", "SUPABASE_SERVICE_ROLE_KEY"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("Expected error to mention %s, got: %v", name, err)
		}
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://example.supabase.co")
	t.Setenv("SUPABASE_SERVICE_ROLE_KEY", "service-key")
	t.Setenv("MCP_DEFAULT_ROW_LIMIT", "")
	t.Setenv("MCP_HTTP_TIMEOUT", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("Expected config to load, got: %v", err)
	}
	if cfg.RowLimit != DefaultRowLimit {
		t.Errorf("Expected default row limit %d, got %d", DefaultRowLimit, cfg.RowLimit)
	}
	if cfg.HTTPTimeout != DefaultHTTPTimeout {
		t.Errorf("Expected default timeout %v, got %v", DefaultHTTPTimeout, cfg.HTTPTimeout)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://example.supabase.co")
	t.Setenv("SUPABASE_SERVICE_ROLE_KEY", "service-key")
	t.Setenv("MCP_DEFAULT_ROW_LIMIT", "50")
	t.Setenv("MCP_HTTP_TIMEOUT", "5s")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("Expected config to load, got: %v", err)
	}
	if cfg.RowLimit != 50 {
		t.Errorf("Expected row limit 50, got %d", cfg.RowLimit)
	}
	if cfg.HTTPTimeout != 5*time.Second {
		t.Errorf("Expected timeout 5s, got %v", cfg.HTTPTimeout)
	}
}

func TestLoadConfig_InvalidOverrides(t *testing.T) {
	cases := []struct {
		key   string
		value string
	}{
		{"MCP_DEFAULT_ROW_LIMIT", "zero"},
		{"MCP_DEFAULT_ROW_LIMIT", "-1"},
		{"MCP_HTTP_TIMEOUT", "soon"},
		{"MCP_HTTP_TIMEOUT", "-2s"},
	}

	for _, tc := range cases {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			t.Setenv("SUPABASE_URL", "https://example.supabase.co")
			t.Setenv("SUPABASE_SERVICE_ROLE_KEY", "service-key")
			t.Setenv("MCP_DEFAULT_ROW_LIMIT", "")
			t.Setenv("MCP_HTTP_TIMEOUT", "")
			t.Setenv(tc.key, tc.value)

			if _, err := LoadConfig(); err == nil {
				t.Errorf("Expected %s=%q to be rejected", tc.key, tc.value)
			}
		})
	}
}
