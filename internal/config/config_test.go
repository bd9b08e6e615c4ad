package config

import (
	"testing"
	"time"

	"github.com/kailas-cloud/crudex/internal/db"
	"github.com/kailas-cloud/crudex/internal/domain/page"
)

func validConfig() Config {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Driver: db.DriverSQLite, DSN: "file:test.db"},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_OK(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"port zero", func(c *Config) { c.HTTP.Port = 0 }},
		{"port too large", func(c *Config) { c.HTTP.Port = 70000 }},
		{"relative base path", func(c *Config) { c.HTTP.BasePath = "api" }},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }},
		{"missing dsn", func(c *Config) { c.Database.DSN = "" }},
		{"default above max", func(c *Config) { c.Paging.DefaultLimit = 300 }},
		{"default below one", func(c *Config) { c.Paging.DefaultLimit = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestValidate_AllDrivers(t *testing.T) {
	for _, driver := range []string{db.DriverSQLite, db.DriverPostgres, db.DriverPgx} {
		cfg := validConfig()
		cfg.Database.Driver = driver
		if err := cfg.Validate(); err != nil {
			t.Errorf("driver %q: unexpected error: %v", driver, err)
		}
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{HTTP: HTTPConfig{BasePath: "/api/v1/"}}
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
	if cfg.HTTP.BasePath != "/api/v1" {
		t.Errorf("expected trailing slash trimmed, got %q", cfg.HTTP.BasePath)
	}
	if cfg.Database.Driver != db.DriverSQLite {
		t.Errorf("expected Driver=sqlite, got %q", cfg.Database.Driver)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Database.MaxOpenConns != 1 {
		t.Errorf("expected MaxOpenConns=1 for sqlite, got %d", cfg.Database.MaxOpenConns)
	}
	if cfg.Paging.DefaultLimit != page.DefaultLimit {
		t.Errorf("expected DefaultLimit=%d, got %d", page.DefaultLimit, cfg.Paging.DefaultLimit)
	}
	if cfg.Paging.MaxLimit != page.MaxLimit {
		t.Errorf("expected MaxLimit=%d, got %d", page.MaxLimit, cfg.Paging.MaxLimit)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Database: DatabaseConfig{Driver: db.DriverPgx, ReadinessTimeout: 15},
		Paging:   PagingConfig{DefaultLimit: 10, MaxLimit: 40},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Database.Driver != db.DriverPgx {
		t.Errorf("expected Driver=pgx, got %q", cfg.Database.Driver)
	}
	if cfg.Database.MaxOpenConns != 0 {
		t.Errorf("expected MaxOpenConns unset for pgx, got %d", cfg.Database.MaxOpenConns)
	}
	if got := cfg.Paging.Limits(); got != (page.Limits{Default: 10, Max: 40}) {
		t.Errorf("expected limits 10/40, got %+v", got)
	}
}

func TestConversions(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{ReadTimeoutSec: 3, WriteTimeoutSec: 4, ShutdownSec: 5},
		Database: DatabaseConfig{
			Driver: db.DriverPostgres, DSN: "postgres://x", MaxOpenConns: 7, MaxIdleConns: 2, ConnMaxLifetimeSec: 60,
		},
	}

	if cfg.HTTP.ReadTimeout() != 3*time.Second || cfg.HTTP.WriteTimeout() != 4*time.Second || cfg.HTTP.ShutdownTimeout() != 5*time.Second {
		t.Errorf("unexpected timeouts: %v %v %v", cfg.HTTP.ReadTimeout(), cfg.HTTP.WriteTimeout(), cfg.HTTP.ShutdownTimeout())
	}

	want := db.Config{Driver: db.DriverPostgres, DSN: "postgres://x", MaxOpenConns: 7, MaxIdleConns: 2, ConnMaxLifetime: time.Minute}
	if got := cfg.Database.Pool(); got != want {
		t.Errorf("Pool() = %+v, want %+v", got, want)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("CRUDEX_TEST_PORT", "9090")

	in := []byte("port: ${CRUDEX_TEST_PORT}\ndsn: ${CRUDEX_TEST_UNSET:-file:x.db}\nempty: ${CRUDEX_TEST_UNSET}")
	got := string(expandEnvVars(in))
	want := "port: 9090\ndsn: file:x.db\nempty: "
	if got != want {
		t.Errorf("expandEnvVars() = %q, want %q", got, want)
	}
}

func TestLoad_TestEnv(t *testing.T) {
	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("Load(test): %v", err)
	}
	if cfg.HTTP.Port != 18080 {
		t.Errorf("expected port 18080, got %d", cfg.HTTP.Port)
	}
	if cfg.HTTP.BasePath != "/api" {
		t.Errorf("expected base path /api, got %q", cfg.HTTP.BasePath)
	}
	if cfg.Paging.DefaultLimit != 20 || cfg.Paging.MaxLimit != 100 {
		t.Errorf("unexpected paging: %+v", cfg.Paging)
	}
	if !cfg.Database.EnsureSchema {
		t.Error("expected ensure_schema true")
	}
}

func TestLoad_MissingEnv(t *testing.T) {
	if _, err := Load("does-not-exist"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if got := GetEnv(); got != "local" {
		t.Errorf("GetEnv() = %q, want local", got)
	}
	t.Setenv("ENV", "prod")
	if got := GetEnv(); got != "prod" {
		t.Errorf("GetEnv() = %q, want prod", got)
	}
}
