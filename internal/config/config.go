package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	hookerrors "github.com/vango-dev/uihooks/internal/errors"
)

const (
	// ConfigName is the base name of the configuration file.
	ConfigName = "uihooks"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "UIHOOKS"

	// DefaultAddr is the default listen address of `uihooks serve`.
	DefaultAddr = "localhost:8080"
)

// Config is the complete CLI configuration.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `mapstructure:"addr"`

	// Debug enables hook-order validation in the reactive runtime.
	Debug bool `mapstructure:"debug"`

	// QueueSize is the component loop's dispatch queue capacity.
	QueueSize int `mapstructure:"queue_size"`

	Log     LogConfig     `mapstructure:"log"`
	Bridge  BridgeConfig  `mapstructure:"bridge"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Tracing TracingConfig `mapstructure:"tracing"`

	// file is the config file that was read, if any.
	file string
}

// LogConfig configures the slog logger.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `mapstructure:"level"`

	// Format is text or json.
	Format string `mapstructure:"format"`
}

// BridgeConfig configures the WebSocket event bridge.
type BridgeConfig struct {
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
	ReadLimit   int64         `mapstructure:"read_limit"`

	// AllowedOrigins lists the origins allowed to connect. Empty allows
	// same-origin clients only; "*" allows any origin.
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Path      string `mapstructure:"path"`
	Namespace string `mapstructure:"namespace"`
}

// TracingConfig configures OTLP trace export. Tracing is off while
// Endpoint is empty.
type TracingConfig struct {
	Endpoint    string `mapstructure:"endpoint"`
	Insecure    bool   `mapstructure:"insecure"`
	ServiceName string `mapstructure:"service_name"`
}

// Defaults returns the built-in configuration values keyed by viper key.
func Defaults() map[string]any {
	return map[string]any{
		"addr":                   DefaultAddr,
		"debug":                  false,
		"queue_size":             1024,
		"log.level":              "info",
		"log.format":             "text",
		"bridge.read_timeout":    60 * time.Second,
		"bridge.read_limit":      int64(64 * 1024),
		"bridge.allowed_origins": []string{},
		"metrics.enabled":        true,
		"metrics.path":           "/metrics",
		"metrics.namespace":      "uihooks",
		"tracing.endpoint":       "",
		"tracing.insecure":       false,
		"tracing.service_name":   "uihooks",
	}
}

// Load reads the configuration. path names an explicit config file; when
// empty, uihooks.{yaml,json,toml} is looked up in the working directory and
// its absence is not an error. flags, if non-nil, override every other
// source for the flags the user set.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	for key, value := range Defaults() {
		v.SetDefault(key, value)
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, hookerrors.New("E040").WithDetailf("config file %s", path).Wrap(err)
		}
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(ConfigName)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, hookerrors.New("E040").WithDetailf("config file %s", configFileName(v, path)).Wrap(err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, err
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, hookerrors.New("E041").Wrap(err)
	}
	c.file = v.ConfigFileUsed()

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func configFileName(v *viper.Viper, path string) string {
	if used := v.ConfigFileUsed(); used != "" {
		return used
	}
	return path
}

// File returns the config file that was read, or "" when defaults,
// environment and flags were the only sources.
func (c *Config) File() string {
	return c.file
}

// Validate checks every value and returns a *errors.HookError (E041)
// naming the first bad key.
func (c *Config) Validate() error {
	invalid := func(key, format string, args ...any) error {
		return hookerrors.New("E041").
			WithDetailf("%s: %s", key, fmt.Sprintf(format, args...)).
			WithSuggestion(fmt.Sprintf("Set %s in %s.yaml or %s_%s", key, ConfigName, EnvPrefix, envKey(key)))
	}

	switch {
	case c.Addr == "":
		return invalid("addr", "must not be empty")
	case c.QueueSize <= 0:
		return invalid("queue_size", "must be positive, got %d", c.QueueSize)
	case c.Bridge.ReadTimeout <= 0:
		return invalid("bridge.read_timeout", "must be positive, got %s", c.Bridge.ReadTimeout)
	case c.Bridge.ReadLimit <= 0:
		return invalid("bridge.read_limit", "must be positive, got %d", c.Bridge.ReadLimit)
	case c.Log.Format != "text" && c.Log.Format != "json":
		return invalid("log.format", "must be text or json, got %q", c.Log.Format)
	case c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/"):
		return invalid("metrics.path", "must start with /, got %q", c.Metrics.Path)
	}

	if _, err := parseLevel(c.Log.Level); err != nil {
		return invalid("log.level", "%v", err)
	}
	return nil
}

func envKey(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(s))
	return level, err
}

// NewLogger builds the slog logger described by c.Log, writing to w.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, _ := parseLevel(c.Log.Level)
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if c.Log.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// OriginAllowed reports whether a WebSocket client from origin may connect.
// It is only consulted when AllowedOrigins is non-empty.
func (b BridgeConfig) OriginAllowed(origin string) bool {
	for _, allowed := range b.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}
