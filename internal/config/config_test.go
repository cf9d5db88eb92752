package config

import (
	"strings"
	"testing"
)

func validConfig() Config {
	cfg := Config{HTTP: HTTPConfig{Port: 8080}}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_Defaults(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database.Enabled() {
		t.Error("database without addrs must be disabled")
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_InvalidDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Driver = "memcached"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid driver")
	}
	expected := `database.driver must be "valkey" or "redis", got "memcached"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_RecordFormats(t *testing.T) {
	for _, format := range []string{"string", "json"} {
		t.Run("format="+format, func(t *testing.T) {
			cfg := validConfig()
			cfg.Storage.RecordFormat = format
			if err := cfg.Validate(); err != nil {
				t.Fatalf("unexpected error for valid format %q: %v", format, err)
			}
		})
	}

	cfg := validConfig()
	cfg.Storage.RecordFormat = "hash"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid record format")
	}
}

func TestValidate_NegativeWorkers(t *testing.T) {
	cfg := validConfig()
	cfg.Search.Workers = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative workers")
	}
}

func TestValidate_EmptyAPIKey(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.APIKeys = []string{"secret", " "}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for blank api key")
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
	if cfg.HTTP.MaxBodyBytes != 8<<20 {
		t.Errorf("expected MaxBodyBytes=8MiB, got %d", cfg.HTTP.MaxBodyBytes)
	}
	if cfg.Database.Driver != "valkey" {
		t.Errorf("expected Driver=valkey, got %q", cfg.Database.Driver)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Storage.KeyPrefix != "lasr:" {
		t.Errorf("expected KeyPrefix='lasr:', got %q", cfg.Storage.KeyPrefix)
	}
	if cfg.Storage.RecordFormat != "string" {
		t.Errorf("expected RecordFormat=string, got %q", cfg.Storage.RecordFormat)
	}
	if cfg.Search.DefaultLimit != 10 {
		t.Errorf("expected DefaultLimit=10, got %d", cfg.Search.DefaultLimit)
	}
	if cfg.Search.MaxItems != 10000 {
		t.Errorf("expected MaxItems=10000, got %d", cfg.Search.MaxItems)
	}
	if cfg.Search.ParallelThreshold != 2048 {
		t.Errorf("expected ParallelThreshold=2048, got %d", cfg.Search.ParallelThreshold)
	}
	if cfg.Search.Workers != 0 {
		t.Errorf("expected Workers=0, got %d", cfg.Search.Workers)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Database: DatabaseConfig{Driver: "redis", ReadinessTimeout: 15},
		Storage:  StorageConfig{KeyPrefix: "custom:", RecordFormat: "json"},
		Search:   SearchConfig{DefaultLimit: 5, MaxItems: 50, Workers: 2, ParallelThreshold: 100},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Database.Driver != "redis" {
		t.Errorf("expected Driver=redis, got %q", cfg.Database.Driver)
	}
	if cfg.Storage.KeyPrefix != "custom:" || cfg.Storage.RecordFormat != "json" {
		t.Errorf("storage overridden: %+v", cfg.Storage)
	}
	if cfg.Search != (SearchConfig{DefaultLimit: 5, MaxItems: 50, Workers: 2, ParallelThreshold: 100}) {
		t.Errorf("search overridden: %+v", cfg.Search)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("LASR_TEST_PORT", "9090")

	got := string(expandEnvVars([]byte("port: ${LASR_TEST_PORT}\nhost: ${LASR_TEST_UNSET:-localhost}\nkey: ${LASR_TEST_UNSET}")))
	want := "port: 9090\nhost: localhost\nkey: "
	if got != want {
		t.Errorf("expandEnvVars:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestParse(t *testing.T) {
	t.Setenv("LASR_TEST_ADDR", "valkey:6379")

	cfg, err := Parse([]byte(`
http:
  port: 8081
database:
  driver: redis
  addrs: ["${LASR_TEST_ADDR}"]
storage:
  record_format: json
search:
  max_items: 20
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 8081 {
		t.Errorf("port = %d", cfg.HTTP.Port)
	}
	if !cfg.Database.Enabled() || cfg.Database.Addrs[0] != "valkey:6379" {
		t.Errorf("addrs = %v", cfg.Database.Addrs)
	}
	if cfg.Storage.RecordFormat != "json" || cfg.Storage.KeyPrefix != "lasr:" {
		t.Errorf("storage = %+v", cfg.Storage)
	}
	if cfg.Search.MaxItems != 20 || cfg.Search.DefaultLimit != 10 {
		t.Errorf("search = %+v", cfg.Search)
	}
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("http:\n  port: 0\n"))
	if err == nil || !strings.Contains(err.Error(), "invalid config") {
		t.Fatalf("expected invalid config error, got %v", err)
	}

	if _, err := Parse([]byte("http: [")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoad_TestEnv(t *testing.T) {
	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 18080 {
		t.Errorf("port = %d, want 18080", cfg.HTTP.Port)
	}
	if cfg.Database.Enabled() {
		t.Error("test config must not configure a database")
	}
	if cfg.Search.MaxItems != 100 {
		t.Errorf("max_items = %d, want 100", cfg.Search.MaxItems)
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
		t.Errorf("GetEnv() = %q, want local", got)
	}
	t.Setenv("ENV", "prod")
	if got := GetEnv(); got != "prod" {
		t.Errorf("GetEnv() = %q, want prod", got)
	}
}
