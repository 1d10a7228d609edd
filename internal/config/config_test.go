package config

import "testing"

func validConfig() Config {
	return Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Addrs: []string{"localhost:6379"}},
		Profiles: ProfilesConfig{URI: "mongodb://localhost:27017"},
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	for _, port := range []int{0, -1, 70000} {
		cfg := validConfig()
		cfg.HTTP.Port = port
		if err := cfg.Validate(); err == nil {
			t.Errorf("expected error for port %d", port)
		}
	}
}

func TestValidate_MissingRedisAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Addrs = nil
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing redis addrs")
	}
}

func TestValidate_MissingProfilesURI(t *testing.T) {
	cfg := validConfig()
	cfg.Profiles.URI = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing profiles uri")
	}
}

func TestValidate_InvalidResyncHour(t *testing.T) {
	cfg := validConfig()
	cfg.Resync.HourUTC = 24
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for resync hour 24")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Profiles.Database != "panditseva" {
		t.Errorf("expected Profiles.Database='panditseva', got %q", cfg.Profiles.Database)
	}
	if cfg.Search.DefaultPageSize != 20 {
		t.Errorf("expected DefaultPageSize=20, got %d", cfg.Search.DefaultPageSize)
	}
	if cfg.Search.MaxPageSize != 100 {
		t.Errorf("expected MaxPageSize=100, got %d", cfg.Search.MaxPageSize)
	}
	if cfg.Resync.HourUTC != 2 {
		t.Errorf("expected HourUTC=2, got %d", cfg.Resync.HourUTC)
	}
	if cfg.Resync.RecordDelayMs != 100 {
		t.Errorf("expected RecordDelayMs=100, got %d", cfg.Resync.RecordDelayMs)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Database: DatabaseConfig{ReadinessTimeout: 15},
		Profiles: ProfilesConfig{Database: "custom"},
		Search:   SearchConfig{DefaultPageSize: 50, MaxPageSize: 500},
		Resync:   ResyncConfig{HourUTC: 4, RecordDelayMs: 250},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Profiles.Database != "custom" {
		t.Errorf("expected Profiles.Database='custom', got %q", cfg.Profiles.Database)
	}
	if cfg.Search.DefaultPageSize != 50 {
		t.Errorf("expected DefaultPageSize=50, got %d", cfg.Search.DefaultPageSize)
	}
	if cfg.Resync.HourUTC != 4 {
		t.Errorf("expected HourUTC=4, got %d", cfg.Resync.HourUTC)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("PANDITSEVA_TEST_VAR", "redis.internal:6379")

	in := []byte("addr: ${PANDITSEVA_TEST_VAR}\nuri: ${PANDITSEVA_TEST_UNSET:-mongodb://localhost:27017}\nempty: ${PANDITSEVA_TEST_UNSET}")
	out := string(expandEnvVars(in))

	want := "addr: redis.internal:6379\nuri: mongodb://localhost:27017\nempty: "
	if out != want {
		t.Errorf("unexpected expansion:\ngot:  %q\nwant: %q", out, want)
	}
}
