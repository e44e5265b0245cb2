package config

import (
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/vango-dev/navrouter/internal/errors"
	"github.com/vango-dev/navrouter/pkg/routepath"
)

const (
	// ConfigFileName is the default configuration file name.
	ConfigFileName = "navrouter.yaml"

	// EnvPrefix prefixes environment overrides.
	EnvPrefix = "NAVROUTER_"

	// DefaultAddr is the default bridge listen address.
	DefaultAddr = ":8080"

	// DefaultPath is the default bridge WebSocket path.
	DefaultPath = "/ws"
)

// Config is the complete navrouter configuration.
type Config struct {
	// Origin resolves relative URLs when no browser location is known.
	Origin string `yaml:"origin" koanf:"origin"`

	// PreserveParamCase keeps route parameter values as written.
	PreserveParamCase bool `yaml:"preserve_param_case" koanf:"preserve_param_case"`

	Bridge  BridgeConfig  `yaml:"bridge" koanf:"bridge"`
	Metrics MetricsConfig `yaml:"metrics" koanf:"metrics"`
	Tracing TracingConfig `yaml:"tracing" koanf:"tracing"`
	Log     LogConfig     `yaml:"log" koanf:"log"`
}

// BridgeConfig configures the browser history bridge server.
type BridgeConfig struct {
	Addr           string        `yaml:"addr" koanf:"addr"`
	Path           string        `yaml:"path" koanf:"path"`
	AllowedOrigins []string      `yaml:"allowed_origins" koanf:"allowed_origins"`
	WriteTimeout   time.Duration `yaml:"write_timeout" koanf:"write_timeout"`
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled" koanf:"enabled"`
	Namespace string `yaml:"namespace" koanf:"namespace"`
}

// TracingConfig configures OpenTelemetry navigation spans.
type TracingConfig struct {
	Enabled    bool   `yaml:"enabled" koanf:"enabled"`
	TracerName string `yaml:"tracer_name" koanf:"tracer_name"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level" koanf:"level"`
}

// New returns a Config with defaults applied.
func New() *Config {
	return &Config{
		Origin: routepath.FallbackOrigin,
		Bridge: BridgeConfig{
			Addr:         DefaultAddr,
			Path:         DefaultPath,
			WriteTimeout: 5 * time.Second,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: "navrouter",
		},
		Tracing: TracingConfig{
			TracerName: "navrouter",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// sections are the nested config keys addressable from the environment.
var sections = []string{"bridge", "metrics", "tracing", "log"}

// envKey maps NAVROUTER_BRIDGE_WRITE_TIMEOUT to bridge.write_timeout.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	for _, section := range sections {
		if rest, ok := strings.CutPrefix(key, section+"_"); ok {
			return section + "." + rest
		}
	}
	return key
}

// Load reads the YAML file at path, if it exists, then applies
// NAVROUTER_* environment overrides on top of the defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := New()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, errors.New("E101").Wrap(err).
					WithDetail("Could not parse " + path)
			}
		} else if !os.IsNotExist(err) {
			return nil, errors.New("E101").Wrap(err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.New("E101").Wrap(err).
			WithDetail("Could not read " + EnvPrefix + "* environment overrides")
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.New("E101").Wrap(err)
	}
	return cfg, nil
}

// Save writes the configuration as YAML to path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return errors.New("E101").Wrap(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.New("E101").Wrap(err).
			WithDetail("Could not write " + path)
	}
	return nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Origin)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("E103").
			WithDetail("origin " + strconv.Quote(c.Origin) + " is not an absolute URL").
			WithSuggestion("Set origin to a value like http://localhost")
	}
	if c.Bridge.Addr == "" {
		return errors.New("E102").
			WithDetail("bridge.addr is empty").
			WithSuggestion("Set bridge.addr or " + EnvPrefix + "BRIDGE_ADDR")
	}
	if !strings.HasPrefix(c.Bridge.Path, "/") {
		return errors.New("E102").
			WithDetail("bridge.path " + strconv.Quote(c.Bridge.Path) + " must start with /")
	}
	if c.Bridge.WriteTimeout < 0 {
		return errors.New("E102").
			WithDetail("bridge.write_timeout must not be negative")
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, errors.New("E104").
			WithDetail("log.level " + strconv.Quote(c.Log.Level) + " is not recognized")
	}
	return level, nil
}
