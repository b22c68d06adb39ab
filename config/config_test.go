package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/spf13/viper"
)

type telemetry struct {
	Enabled    bool    `mapstructure:"enabled"`
	SampleRate float64 `mapstructure:"sample_rate"`
}

type testConfig struct {
	Name      string            `mapstructure:"name"`
	Timeout   time.Duration     `mapstructure:"timeout"`
	Headers   map[string]string `mapstructure:"headers"`
	Telemetry telemetry         `mapstructure:"telemetry"`

	defaulted bool
	invalid   bool
}

func (c *testConfig) ApplyDefaults() {
	c.defaulted = true
	if c.Timeout == 0 {
		c.Timeout = 10 * time.Second
	}
}

func (c *testConfig) Validate() error {
	if c.invalid || c.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return path
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "svc.yml", `
name: billing
timeout: 3s
headers:
  x-client: wirekit
telemetry:
  enabled: true
  sample_rate: 0.5
`)

	var cfg testConfig
	if err := Load("svc", &cfg, WithConfigFile(path), WithEnvPrefix("WKTEST_NONE")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Name != "billing" || cfg.Timeout != 3*time.Second {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.Headers["x-client"] != "wirekit" {
		t.Errorf("unexpected headers %v", cfg.Headers)
	}
	if !cfg.Telemetry.Enabled || cfg.Telemetry.SampleRate != 0.5 {
		t.Errorf("unexpected telemetry %+v", cfg.Telemetry)
	}
	if !cfg.defaulted {
		t.Error("expected ApplyDefaults to be called")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "svc.yml", "name: from-file\n")
	t.Setenv("WKTEST_NAME", "from-env")
	t.Setenv("WKTEST_TELEMETRY_SAMPLE_RATE", "0.25")

	var cfg testConfig
	if err := Load("svc", &cfg, WithConfigFile(path), WithEnvPrefix("WKTEST")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Name != "from-env" {
		t.Errorf("expected from-env, got %q", cfg.Name)
	}
	if cfg.Telemetry.SampleRate != 0.25 {
		t.Errorf("expected 0.25, got %v", cfg.Telemetry.SampleRate)
	}
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, ".env", "WKTESTENV_NAME=dotenv\n")
	t.Cleanup(func() { _ = os.Unsetenv("WKTESTENV_NAME") })

	var cfg testConfig
	err := Load("svc", &cfg,
		WithFileSystem(OSFileSystem{}),
		WithConfigFile(""),
		WithEnvFile(envPath),
		WithEnvPrefix("WKTESTENV"),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Name != "dotenv" {
		t.Errorf("expected dotenv, got %q", cfg.Name)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	var cfg testConfig
	err := Load("svc", &cfg, WithConfigFile(filepath.Join(t.TempDir(), "missing.yml")))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoad_ValidationError(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "svc.yml", "timeout: 1s\n")

	var cfg testConfig
	if err := Load("svc", &cfg, WithConfigFile(path), WithEnvPrefix("WKTEST_NONE")); err == nil {
		t.Fatal("expected validation error")
	}
}

type fakeFS struct {
	files map[string]bool
}

func (f fakeFS) Exists(path string) bool   { return f.files[path] }
func (f fakeFS) LoadEnv(path string) error { return nil }

func TestFindFirst(t *testing.T) {
	fs := fakeFS{files: map[string]bool{"config/svc.yaml": true, "config.yml": true}}
	if got := findFirst(fs, configCandidates("svc")); got != "config/svc.yaml" {
		t.Errorf("expected config/svc.yaml, got %q", got)
	}
	if got := findFirst(fs, envCandidates("svc")); got != "" {
		t.Errorf("expected no env file, got %q", got)
	}
}

func TestEnvKeyVariants(t *testing.T) {
	got := envKeyVariants("TELEMETRY_SAMPLE_RATE")
	want := []string{
		"telemetry_sample_rate",
		"telemetry.sample.rate",
		"telemetry.sample_rate",
		"telemetry_sample.rate",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if got := envKeyVariants("NAME"); !reflect.DeepEqual(got, []string{"name"}) {
		t.Errorf("unexpected variants %v", got)
	}
}

func TestBindEnv_Prefix(t *testing.T) {
	v := viper.New()
	bindEnv(v, "APP", []string{"APP_NAME=a", "OTHER_NAME=b", "BROKEN"})
	if v.GetString("name") != "a" {
		t.Errorf("expected a, got %q", v.GetString("name"))
	}
	if v.IsSet("other_name") {
		t.Error("expected unprefixed variable to be ignored")
	}
}
