package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kbukum/wirekit/logger"
)

// Defaulter is implemented by configs that fill in zero values.
type Defaulter interface {
	ApplyDefaults()
}

// Validator is implemented by configs that check themselves.
type Validator interface {
	Validate() error
}

// FileSystem abstracts the file operations used by Load.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// OSFileSystem implements FileSystem on the local disk.
type OSFileSystem struct{}

// Exists reports whether path exists.
func (OSFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadEnv loads a .env file into the process environment without
// overriding variables that are already set.
func (OSFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

type options struct {
	fs         FileSystem
	configFile string
	envFile    string
	envPrefix  string
}

// Option configures Load.
type Option func(*options)

// WithFileSystem replaces the file system, for tests.
func WithFileSystem(fs FileSystem) Option {
	return func(o *options) { o.fs = fs }
}

// WithConfigFile sets the YAML file explicitly.
func WithConfigFile(path string) Option {
	return func(o *options) { o.configFile = path }
}

// WithEnvFile sets the .env file explicitly.
func WithEnvFile(path string) Option {
	return func(o *options) { o.envFile = path }
}

// WithEnvPrefix only binds variables starting with prefix + "_"; the
// prefix is stripped before binding.
func WithEnvPrefix(prefix string) Option {
	return func(o *options) { o.envPrefix = strings.ToUpper(strings.TrimSuffix(prefix, "_")) }
}

// Load reads configuration for name into cfg, a pointer to a struct with
// mapstructure tags.
func Load(name string, cfg interface{}, opts ...Option) error {
	o := options{fs: OSFileSystem{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.configFile == "" {
		o.configFile = findFirst(o.fs, configCandidates(name))
	}
	if o.envFile == "" {
		o.envFile = findFirst(o.fs, envCandidates(name))
	}

	log := logger.WithComponent("config")
	v := viper.New()

	if o.configFile != "" {
		if !o.fs.Exists(o.configFile) {
			return fmt.Errorf("config: file %s not found", o.configFile)
		}
		v.SetConfigFile(o.configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config: reading %s: %w", o.configFile, err)
		}
		log.Debug("config file loaded", logger.Fields("file", o.configFile))
	}

	if o.envFile != "" && o.fs.Exists(o.envFile) {
		if err := o.fs.LoadEnv(o.envFile); err != nil {
			log.Warn("failed to load env file", logger.MergeWithError(logger.Fields("file", o.envFile), err))
		}
	}

	bindEnv(v, o.envPrefix, os.Environ())

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("config: unmarshal %s: %w", name, err)
	}

	if d, ok := cfg.(Defaulter); ok {
		d.ApplyDefaults()
	}
	if val, ok := cfg.(Validator); ok {
		if err := val.Validate(); err != nil {
			return fmt.Errorf("config: %s: %w", name, err)
		}
	}
	return nil
}

func configCandidates(name string) []string {
	return []string{
		name + ".yml",
		name + ".yaml",
		"config/" + name + ".yml",
		"config/" + name + ".yaml",
		"config.yml",
		"config.yaml",
	}
}

func envCandidates(name string) []string {
	return []string{".env." + name, ".env"}
}

func findFirst(fs FileSystem, paths []string) string {
	for _, p := range paths {
		if fs.Exists(p) {
			return p
		}
	}
	return ""
}

// bindEnv sets every key variant of each environment variable on v.
func bindEnv(v *viper.Viper, prefix string, environ []string) {
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		if prefix != "" {
			rest, found := strings.CutPrefix(key, prefix+"_")
			if !found {
				continue
			}
			key = rest
		}
		for _, variant := range envKeyVariants(key) {
			v.Set(variant, value)
		}
	}
}

// envKeyVariants lists the viper keys an environment variable may name.
//
//	TELEMETRY_SAMPLE_RATE -> telemetry_sample_rate, telemetry.sample.rate,
//	                         telemetry.sample_rate, telemetry_sample.rate
func envKeyVariants(envKey string) []string {
	lower := strings.ToLower(envKey)
	parts := strings.Split(lower, "_")
	if len(parts) <= 1 {
		return []string{lower}
	}

	seen := map[string]bool{}
	var out []string
	add := func(s string) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}

	add(lower)
	add(strings.Join(parts, "."))
	for i := 1; i < len(parts); i++ {
		add(strings.Join(parts[:i], ".") + "." + strings.Join(parts[i:], "_"))
		add(strings.Join(parts[:i], "_") + "." + strings.Join(parts[i:], "."))
	}
	return out
}
