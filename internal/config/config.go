package config

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/vango-dev/krow/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "krow.toml"

	// DefaultAddr is the default preview server address.
	DefaultAddr = "localhost:7070"

	// DefaultDemo is the application the preview server shows by default.
	DefaultDemo = "todos"

	// DefaultNamespace is the default metrics namespace.
	DefaultNamespace = "krow"

	// DefaultExportDir is the default snapshot output directory.
	DefaultExportDir = "dist"
)

// Config represents krow.toml.
type Config struct {
	// LogLevel is one of debug, info, warn or error.
	LogLevel string `toml:"log_level"`

	// Preview configures the live preview server.
	Preview PreviewConfig `toml:"preview"`

	// Metrics configures Prometheus collectors.
	Metrics MetricsConfig `toml:"metrics"`

	// Export configures HTML snapshot export.
	Export ExportConfig `toml:"export"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// PreviewConfig configures the preview server.
type PreviewConfig struct {
	// Addr is the listen address.
	Addr string `toml:"addr"`

	// Demo is the application served at /.
	Demo string `toml:"demo"`

	// Pretty makes the op stream use JSON text frames instead of msgpack.
	Pretty bool `toml:"pretty"`
}

// MetricsConfig configures metrics collection.
type MetricsConfig struct {
	Enabled   bool   `toml:"enabled"`
	Namespace string `toml:"namespace"`
}

// ExportConfig configures snapshot export. Snapshots go to S3 when Bucket is
// set and to Dir otherwise.
type ExportConfig struct {
	Dir      string `toml:"dir"`
	Bucket   string `toml:"bucket"`
	Region   string `toml:"region"`
	Endpoint string `toml:"endpoint"`
	Prefix   string `toml:"prefix"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		LogLevel: "info",
		Preview: PreviewConfig{
			Addr: DefaultAddr,
			Demo: DefaultDemo,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: DefaultNamespace,
		},
		Export: ExportConfig{
			Dir: DefaultExportDir,
		},
	}
}

// Load reads krow.toml from dir.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads the configuration at path. Fields missing from the file
// keep their defaults.
func LoadFile(path string) (*Config, error) {
	cfg := New()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, errors.New("K101").
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path)).
				WithSuggestion("Create " + ConfigFileName + " or run without --config to use defaults")
		}
		return nil, errors.New("K102").
			WithDetail(path).
			WithSuggestion("Check that " + ConfigFileName + " is valid TOML").
			Wrap(err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New("K102").
			WithDetail(fmt.Sprintf("%s: unknown keys %s", path, strings.Join(keys, ", ")))
	}

	cfg.configPath = path
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration back to where it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to path.
func (c *Config) SaveTo(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.New("K102").Wrap(err)
	}
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		f.Close()
		return errors.New("K102").Wrap(err)
	}
	if err := f.Close(); err != nil {
		return errors.New("K102").Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Preview.Addr == "" {
		c.Preview.Addr = DefaultAddr
	}
	if c.Preview.Demo == "" {
		c.Preview.Demo = DefaultDemo
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Export.Dir == "" {
		c.Export.Dir = DefaultExportDir
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if _, _, err := net.SplitHostPort(c.Preview.Addr); err != nil {
		return errors.New("K104").
			WithDetail(c.Preview.Addr).
			WithSuggestion(`Use host:port, e.g. addr = "localhost:7070"`).
			Wrap(err)
	}
	if c.Export.Bucket != "" && c.Export.Region == "" {
		return errors.New("K105").
			WithDetail("export.bucket is set but export.region is empty").
			WithSuggestion("Set export.region to the bucket's AWS region")
	}
	return nil
}

// ParseLevel converts a log level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, errors.New("K103").
			WithSuggestion(`Use log_level = "info"`).
			Wrap(fmt.Errorf("got %q", name))
	}
}

// Level returns the configured log level.
func (c *Config) Level() slog.Level {
	l, err := ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return l
}

// UseS3 reports whether snapshots are exported to S3.
func (c *Config) UseS3() bool {
	return c.Export.Bucket != ""
}

// Exists reports whether dir contains krow.toml.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindConfig walks up from startDir to locate krow.toml.
func FindConfig(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !stderrors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads the nearest krow.toml above the working
// directory, or the defaults when there is none.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	path, ok, err := FindConfig(wd)
	if err != nil {
		return nil, err
	}
	if !ok {
		return New(), nil
	}
	return LoadFile(path)
}
