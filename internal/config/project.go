package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/scopezero/scopezero/internal/logging"
)

// ResolveProjectDir determines the project-local .scopezero directory.
// It checks, in order:
//  1. flagValue (--project-dir)
//  2. SCOPEZERO_PROJECT_DIR
//  3. the nearest ancestor of startDir containing a .scopezero directory
//
// The result is absolute, or empty when no project was found. Nothing is created.
func ResolveProjectDir(ctx context.Context, flagValue, startDir string) string {
	if flagValue != "" {
		return toAbsProjectDir(ctx, flagValue)
	}

	if envDir := os.Getenv(EnvProjectDir); envDir != "" {
		return toAbsProjectDir(ctx, envDir)
	}

	if startDir == "" {
		return ""
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, DefaultConfigDirName)
		if info, statErr := os.Stat(candidate); statErr == nil && info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// toAbsProjectDir makes dir absolute and appends .scopezero unless it already
// ends with it.
func toAbsProjectDir(ctx context.Context, dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Err(err).
			Str("dir", dir).
			Msg("failed to resolve absolute path for project directory")
		abs = dir
	}

	if filepath.Base(abs) == DefaultConfigDirName {
		return abs
	}
	return filepath.Join(abs, DefaultConfigDirName)
}
