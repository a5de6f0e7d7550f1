package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scopezero/scopezero/internal/config"
	"github.com/scopezero/scopezero/internal/logging"
)

// isolate points the user config dir at an empty temp dir and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	for _, key := range []string{
		config.EnvProjectDir, config.EnvLogLevel, config.EnvLogFormat,
		config.EnvAddr, config.EnvFactorsFile, config.EnvChunkSize,
	} {
		t.Setenv(key, "")
	}
	return home
}

func TestNew_DefaultsAreValid(t *testing.T) {
	cfg := config.New()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "table", cfg.Output.DefaultFormat)
	assert.Equal(t, 100, cfg.Ingest.ChunkSize)
	assert.Equal(t, []string{"DHL"}, cfg.Partners.Connected)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"unknown format", func(c *config.Config) { c.Output.DefaultFormat = "xml" }},
		{"bad level", func(c *config.Config) { c.Logging.Level = "loud" }},
		{"bad log format", func(c *config.Config) { c.Logging.Format = "text" }},
		{"chunk too small", func(c *config.Config) { c.Ingest.ChunkSize = 0 }},
		{"chunk too large", func(c *config.Config) { c.Ingest.ChunkSize = 10001 }},
		{"upload limit", func(c *config.Config) { c.Ingest.MaxUploadMB = 0 }},
		{"empty addr", func(c *config.Config) { c.Server.Addr = "" }},
		{"negative delay", func(c *config.Config) { c.Partners.SyncDelay = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			tt.mutate(cfg)
			require.ErrorIs(t, cfg.Validate(), config.ErrInvalidConfig)
		})
	}
}

func TestLoad_DefaultsWhenNoFiles(t *testing.T) {
	isolate(t)

	cfg, err := config.Load(config.LoadOptions{DotEnv: []string{filepath.Join(t.TempDir(), ".env")}})
	require.NoError(t, err)
	assert.Equal(t, config.New(), cfg)
}

func TestLoad_Precedence(t *testing.T) {
	home := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte(`
logging:
  level: warn
  format: json
server:
  addr: ":7000"
`), 0600))

	project := filepath.Join(t.TempDir(), ".scopezero")
	require.NoError(t, os.MkdirAll(project, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(project, "config.yaml"), []byte(`
server:
  addr: ":7100"
`), 0600))

	t.Setenv(config.EnvLogLevel, "debug")

	cfg, err := config.Load(config.LoadOptions{ProjectDir: project, DotEnv: []string{filepath.Join(home, "none.env")}})
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level, "env beats files")
	assert.Equal(t, "json", cfg.Logging.Format, "user file beats defaults")
	assert.Equal(t, ":7100", cfg.Server.Addr, "project beats user file")
}

func TestLoad_ExplicitPathMustExist(t *testing.T) {
	isolate(t)

	_, err := config.Load(config.LoadOptions{Path: filepath.Join(t.TempDir(), "missing.yaml")})
	require.Error(t, err)
}

func TestLoad_DotEnv(t *testing.T) {
	isolate(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("SCOPEZERO_CHUNK_SIZE=42\n"), 0600))
	// godotenv does not override variables that are already set, even when empty.
	require.NoError(t, os.Unsetenv(config.EnvChunkSize))
	t.Cleanup(func() { _ = os.Unsetenv(config.EnvChunkSize) })

	cfg, err := config.Load(config.LoadOptions{DotEnv: []string{envFile}})
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.Ingest.ChunkSize)
}

func TestApplyEnv_BadChunkSize(t *testing.T) {
	isolate(t)
	t.Setenv(config.EnvChunkSize, "many")

	err := config.ApplyEnv(config.New())
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestLoad_InvalidValueRejected(t *testing.T) {
	isolate(t)
	t.Setenv(config.EnvAddr, ":9000")
	t.Setenv(config.EnvLogFormat, "xml")

	_, err := config.Load(config.LoadOptions{DotEnv: []string{filepath.Join(t.TempDir(), ".env")}})
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestGetConfigDir(t *testing.T) {
	home := isolate(t)

	dir, err := config.GetConfigDir()
	require.NoError(t, err)
	assert.Equal(t, home, dir)
}

func TestToLoggingConfig(t *testing.T) {
	tests := []struct {
		name string
		in   config.LoggingConfig
		want string
	}{
		{"stderr by default", config.LoggingConfig{Level: "info", Format: "console"}, logging.OutputStderr},
		{"file when set", config.LoggingConfig{Level: "info", Format: "json", File: "/tmp/s.log"}, logging.OutputFile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.ToLoggingConfig()
			assert.Equal(t, tt.want, got.Output)
			assert.Equal(t, tt.in.Level, got.Level)
			assert.Equal(t, tt.in.File, got.File)
		})
	}
}

func TestEnsureLogDir(t *testing.T) {
	cfg := config.New()
	require.NoError(t, config.EnsureLogDir(cfg))

	cfg.Logging.File = filepath.Join(t.TempDir(), "nested", "logs", "scopezero.log")
	require.NoError(t, config.EnsureLogDir(cfg))
	assert.DirExists(t, filepath.Dir(cfg.Logging.File))
}

func TestResolveProjectDir(t *testing.T) {
	isolate(t)
	ctx := context.Background()

	t.Run("flag", func(t *testing.T) {
		dir := t.TempDir()
		assert.Equal(t, filepath.Join(dir, ".scopezero"), config.ResolveProjectDir(ctx, dir, ""))
	})

	t.Run("flag already suffixed", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), ".scopezero")
		assert.Equal(t, dir, config.ResolveProjectDir(ctx, dir, ""))
	})

	t.Run("env", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv(config.EnvProjectDir, dir)
		assert.Equal(t, filepath.Join(dir, ".scopezero"), config.ResolveProjectDir(ctx, "", "/ignored"))
	})

	t.Run("walk up", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(root, ".scopezero"), 0700))
		sub := filepath.Join(root, "a", "b")
		require.NoError(t, os.MkdirAll(sub, 0700))

		assert.Equal(t, filepath.Join(root, ".scopezero"), config.ResolveProjectDir(ctx, "", sub))
	})

	t.Run("no start dir", func(t *testing.T) {
		assert.Empty(t, config.ResolveProjectDir(ctx, "", ""))
	})
}
