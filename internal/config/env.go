package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables.
const (
	EnvHome        = "SCOPEZERO_HOME"
	EnvProjectDir  = "SCOPEZERO_PROJECT_DIR"
	EnvLogLevel    = "SCOPEZERO_LOG_LEVEL"
	EnvLogFormat   = "SCOPEZERO_LOG_FORMAT"
	EnvAddr        = "SCOPEZERO_ADDR"
	EnvFactorsFile = "SCOPEZERO_FACTORS_FILE"
	EnvChunkSize   = "SCOPEZERO_CHUNK_SIZE"
)

// LoadDotEnv loads variables from .env files without overriding ones already set.
// With no arguments it reads ./.env. Missing files are skipped.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides cfg with SCOPEZERO_* variables.
func ApplyEnv(cfg *Config) error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv(EnvFactorsFile); v != "" {
		cfg.Factors.File = v
	}
	if v := os.Getenv(EnvChunkSize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, EnvChunkSize, v)
		}
		cfg.Ingest.ChunkSize = n
	}
	return nil
}
