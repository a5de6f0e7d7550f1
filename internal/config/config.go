// Package config loads scopezero settings from YAML, .env files and SCOPEZERO_*
// environment variables.
//
// Precedence, lowest first: built-in defaults, the user config file
// (~/.scopezero/config.yaml or --config), the project overlay
// (.scopezero/config.yaml), then environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/scopezero/scopezero/internal/engine"
	"github.com/scopezero/scopezero/internal/engine/batch"
	"github.com/scopezero/scopezero/internal/logging"
)

// Defaults.
const (
	DefaultAddr          = ":8080"
	DefaultMaxUploadMB   = 10
	DefaultSyncDelay     = 1500 * time.Millisecond
	DefaultConfigDirName = ".scopezero"
	configFileName       = "config.yaml"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the complete scopezero configuration.
type Config struct {
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
	Factors  FactorsConfig  `yaml:"factors"`
	Ingest   IngestConfig   `yaml:"ingest"`
	Server   ServerConfig   `yaml:"server"`
	Partners PartnersConfig `yaml:"partners"`
}

// OutputConfig controls CLI rendering.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
}

// FactorsConfig points at an optional factor table file.
type FactorsConfig struct {
	// File replaces the built-in factor table when set.
	File string `yaml:"file,omitempty"`
}

// IngestConfig tunes normalization.
type IngestConfig struct {
	ChunkSize int `yaml:"chunk_size"`
	// Synonyms replaces the header synonyms of the named fields.
	Synonyms    map[string][]string `yaml:"synonyms,omitempty"`
	MaxUploadMB int                 `yaml:"max_upload_mb"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr        string        `yaml:"addr"`
	CORSOrigins []string      `yaml:"cors_origins,omitempty"`
	ReadTimeout time.Duration `yaml:"read_timeout"`
}

// PartnersConfig configures the simulated logistics integrations.
type PartnersConfig struct {
	Connected []string      `yaml:"connected"`
	SyncDelay time.Duration `yaml:"sync_delay"`
}

// New returns the built-in defaults.
func New() *Config {
	return &Config{
		Output: OutputConfig{DefaultFormat: string(engine.OutputTable)},
		Logging: LoggingConfig{
			Level:  "info",
			Format: logging.FormatConsole,
		},
		Ingest: IngestConfig{
			ChunkSize:   batch.DefaultChunkSize,
			MaxUploadMB: DefaultMaxUploadMB,
		},
		Server: ServerConfig{
			Addr:        DefaultAddr,
			ReadTimeout: 30 * time.Second,
		},
		Partners: PartnersConfig{
			Connected: []string{"DHL"},
			SyncDelay: DefaultSyncDelay,
		},
	}
}

// LoadOptions selects the files Load reads.
type LoadOptions struct {
	// Path is an explicit config file; it must exist. Empty means the default
	// user config, which may be absent.
	Path string
	// ProjectDir is a .scopezero directory whose config.yaml is merged on top.
	ProjectDir string
	// DotEnv lists .env files to load; missing files are ignored.
	DotEnv []string
}

// Load builds a validated Config from defaults, files and the environment.
func Load(opts LoadOptions) (*Config, error) {
	if err := LoadDotEnv(opts.DotEnv...); err != nil {
		return nil, err
	}

	cfg := New()

	path := opts.Path
	if path == "" {
		dir, err := GetConfigDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, configFileName)
		if _, statErr := os.Stat(path); statErr != nil {
			path = ""
		}
	}
	if path != "" {
		if err := ShallowMergeYAML(cfg, path); err != nil {
			return nil, err
		}
	}

	if opts.ProjectDir != "" {
		overlay := filepath.Join(opts.ProjectDir, configFileName)
		if _, err := os.Stat(overlay); err == nil {
			if err := ShallowMergeYAML(cfg, overlay); err != nil {
				return nil, err
			}
		}
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	if _, err := engine.ParseOutputFormat(c.Output.DefaultFormat); err != nil {
		return fmt.Errorf("%w: output.default_format: %w", ErrInvalidConfig, err)
	}
	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: logging.level %q", ErrInvalidConfig, c.Logging.Level)
	}
	switch c.Logging.Format {
	case logging.FormatConsole, logging.FormatJSON:
	default:
		return fmt.Errorf("%w: logging.format %q (want console or json)", ErrInvalidConfig, c.Logging.Format)
	}
	if err := batch.ValidateChunkSize(c.Ingest.ChunkSize); err != nil {
		return fmt.Errorf("%w: ingest.chunk_size: %w", ErrInvalidConfig, err)
	}
	if c.Ingest.MaxUploadMB <= 0 {
		return fmt.Errorf("%w: ingest.max_upload_mb must be positive", ErrInvalidConfig)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server.addr is empty", ErrInvalidConfig)
	}
	if c.Server.ReadTimeout < 0 || c.Partners.SyncDelay < 0 {
		return fmt.Errorf("%w: durations must not be negative", ErrInvalidConfig)
	}
	return nil
}

// GetConfigDir returns $SCOPEZERO_HOME or ~/.scopezero.
func GetConfigDir() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, DefaultConfigDirName), nil
}
