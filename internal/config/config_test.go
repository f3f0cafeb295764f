package config

import (
	"testing"
)

func validConfig() Config {
	return Config{
		HTTP: HTTPConfig{Port: 8080},
		Source: SourceConfig{
			Driver: "ishare",
			IShare: IShareConfig{BaseURL: "http://localhost:3000"},
		},
	}
}

func TestValidate_OK(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Source.Driver = "mysql"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}

	expected := `source.driver must be "ishare" or "postgres", got "mysql"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_PostgresRequiresDSN(t *testing.T) {
	cfg := validConfig()
	cfg.Source.Driver = "postgres"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing dsn")
	}

	cfg.Source.Postgres.DSN = "postgres://localhost/listmatch"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_NegativeWeights(t *testing.T) {
	cfg := validConfig()
	neg := -1.0
	cfg.Engine.FieldWeight = &neg

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative weight")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{HTTP: HTTPConfig{Port: 8080}}
	cfg.ApplyDefaults()

	if cfg.Source.Driver != "ishare" {
		t.Errorf("expected ishare driver by default, got %q", cfg.Source.Driver)
	}
	if cfg.Source.IShare.BaseURL != "http://localhost:3000" {
		t.Errorf("unexpected default base url %q", cfg.Source.IShare.BaseURL)
	}
	if cfg.Cache.TTLSec != 60 {
		t.Errorf("expected default cache TTL 60, got %d", cfg.Cache.TTLSec)
	}
	if cfg.Cache.KeyPrefix != "listmatch:" {
		t.Errorf("unexpected default key prefix %q", cfg.Cache.KeyPrefix)
	}
	if cfg.Engine.AvailableStatus != "ACTIVE" {
		t.Errorf("unexpected default status %q", cfg.Engine.AvailableStatus)
	}
	if cfg.HTTP.ReadTimeoutSec != 10 || cfg.HTTP.WriteTimeoutSec != 10 {
		t.Error("expected default HTTP timeouts")
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := Config{
		HTTP:   HTTPConfig{Port: 8080, ReadTimeoutSec: 30},
		Source: SourceConfig{Driver: "postgres"},
		Cache:  CacheConfig{TTLSec: 300},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Error("explicit read timeout overwritten")
	}
	if cfg.Source.Driver != "postgres" {
		t.Error("explicit driver overwritten")
	}
	if cfg.Cache.TTLSec != 300 {
		t.Error("explicit TTL overwritten")
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("LISTMATCH_TEST_DSN", "postgres://db/listings")

	in := []byte("dsn: ${LISTMATCH_TEST_DSN}\nurl: ${LISTMATCH_UNSET:-http://fallback}")
	out := string(expandEnvVars(in))

	if out != "dsn: postgres://db/listings\nurl: http://fallback" {
		t.Errorf("unexpected expansion: %q", out)
	}
}

func TestLoad_LocalConfig(t *testing.T) {
	cfg, err := Load("local")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 8080 {
		t.Errorf("unexpected port %d", cfg.HTTP.Port)
	}
	if cfg.Source.Driver != "ishare" {
		t.Errorf("unexpected driver %q", cfg.Source.Driver)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("no-such-env"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if got := GetEnv(); got != "local" {
		t.Errorf("expected local default, got %q", got)
	}

	t.Setenv("ENV", "prod")
	if got := GetEnv(); got != "prod" {
		t.Errorf("expected prod, got %q", got)
	}
}
