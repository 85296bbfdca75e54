package config

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultsWhenEmpty(t *testing.T) {
	cfg, err := LoadFromReader(strings.NewReader(""))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if cfg.General.RefreshRate.Duration != 30*time.Second {
		t.Errorf("refresh rate = %v, want 30s", cfg.General.RefreshRate.Duration)
	}
	if !cfg.Realtime.Enabled {
		t.Error("realtime should default to enabled")
	}
	if cfg.HasAPIKey() {
		t.Error("no key configured, HasAPIKey should be false")
	}
}

func TestLoadFromTOML(t *testing.T) {
	doc := `
[general]
refresh_rate = "10s"
log_level = "debug"

[api]
key = "abc.def.ghi"

[realtime]
enabled = false
reconnect = "2s"

[physics]
switch_profile = "MX Blue"
metric_units = true
`
	cfg, err := LoadFromReader(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if cfg.General.RefreshRate.Duration != 10*time.Second {
		t.Errorf("refresh rate = %v", cfg.General.RefreshRate.Duration)
	}
	if cfg.General.LogLevel != "debug" {
		t.Errorf("log level = %q", cfg.General.LogLevel)
	}
	if !cfg.HasAPIKey() {
		t.Error("HasAPIKey should be true")
	}
	if cfg.Realtime.Enabled {
		t.Error("realtime should be disabled")
	}
	if cfg.Realtime.Reconnect.Duration != 2*time.Second {
		t.Errorf("reconnect = %v", cfg.Realtime.Reconnect.Duration)
	}
	if cfg.Physics.SwitchProfile != "MX Blue" {
		t.Errorf("profile = %q", cfg.Physics.SwitchProfile)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("KEYPULSE_API_KEY", "env-key")
	t.Setenv("KEYPULSE_REFRESH_RATE", "5s")

	cfg, err := LoadFromReader(strings.NewReader(`[api]
key = "file-key"`))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if cfg.API.Key != "env-key" {
		t.Errorf("key = %q, env should win", cfg.API.Key)
	}
	if cfg.General.RefreshRate.Duration != 5*time.Second {
		t.Errorf("refresh rate = %v, want 5s", cfg.General.RefreshRate.Duration)
	}
}

func TestInvalidDurationRejected(t *testing.T) {
	_, err := LoadFromReader(strings.NewReader(`[general]
refresh_rate = "soon"`))
	if err == nil {
		t.Fatal("expected error for bad duration")
	}
}

func TestNegativeDurationRejected(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("-5s")); err == nil {
		t.Fatal("expected error for negative duration")
	}
}
