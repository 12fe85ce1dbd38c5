package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kv.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig(\"\") error: %v", err)
	}
	if cfg.ServiceName != DefaultServiceName {
		t.Errorf("ServiceName = %q, want %q", cfg.ServiceName, DefaultServiceName)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
	if cfg.CallTimeout != DefaultCallTimeout {
		t.Errorf("CallTimeout = %v, want %v", cfg.CallTimeout, DefaultCallTimeout)
	}
	if cfg.HTTPAddr != "" {
		t.Errorf("HTTPAddr = %q, want empty", cfg.HTTPAddr)
	}
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfig(t, `
service_name: Capitals
advertise_addr: kv.internal:1099
http_addr: ":8080"
log_level: debug
call_timeout: 250ms
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.ServiceName != "Capitals" {
		t.Errorf("ServiceName = %q, want Capitals", cfg.ServiceName)
	}
	if cfg.AdvertiseAddr != "kv.internal:1099" {
		t.Errorf("AdvertiseAddr = %q", cfg.AdvertiseAddr)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.CallTimeout != 250*time.Millisecond {
		t.Errorf("CallTimeout = %v, want 250ms", cfg.CallTimeout)
	}
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "service_name: FromFile\nlog_level: info\n")
	t.Setenv("KV_SERVICE_NAME", "FromEnv")
	t.Setenv("KV_CALL_TIMEOUT", "2s")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.ServiceName != "FromEnv" {
		t.Errorf("ServiceName = %q, want FromEnv", cfg.ServiceName)
	}
	if cfg.CallTimeout != 2*time.Second {
		t.Errorf("CallTimeout = %v, want 2s", cfg.CallTimeout)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	cases := []struct {
		name string
		path func(t *testing.T) string
		env  map[string]string
	}{
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.yaml") }, nil},
		{"bad yaml", func(t *testing.T) string { return writeConfig(t, "service_name: [") }, nil},
		{"bad timeout env", func(*testing.T) string { return "" }, map[string]string{"KV_CALL_TIMEOUT": "soon"}},
		{"negative timeout", func(t *testing.T) string { return writeConfig(t, "call_timeout: -1s\n") }, nil},
		{"unknown level", func(*testing.T) string { return "" }, map[string]string{"KV_LOG_LEVEL": "loud"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			for k, v := range c.env {
				t.Setenv(k, v)
			}
			if _, err := LoadConfig(c.path(t)); err == nil {
				t.Errorf("LoadConfig expected error, got nil")
			}
		})
	}
}
