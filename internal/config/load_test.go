package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "admit.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "failed to write test config")
	return path
}

func TestLoad_Valid(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "debug"

[quality.movies]
minimum = "WEBDL-720p"
cutoff = "bluray-1080p"
enforce_minimum = true

[scan]
workers = 8
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "WEBDL-720p", cfg.Quality.Movies.Minimum)
	assert.True(t, cfg.Quality.Movies.EnforceMinimum)
	assert.Equal(t, 8, cfg.Scan.Workers)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.Equal(t, DefaultLogFormat, cfg.Log.Format)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, DefaultScanWorkers, cfg.Scan.Workers)
	assert.Equal(t, DefaultFFprobe, cfg.Scan.FFprobe)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_MissingEnvVar(t *testing.T) {
	path := writeConfig(t, `
[database]
path = "${ADMIT_TEST_MISSING_DB_PATH}"
`)

	_, err := Load(path)
	require.Error(t, err, "expected error for missing env var")

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, []string{"ADMIT_TEST_MISSING_DB_PATH"}, cfgErr.Missing)
	assert.Contains(t, err.Error(), "ADMIT_TEST_MISSING_DB_PATH")
}

func TestLoad_EnvSubstitution(t *testing.T) {
	t.Setenv("ADMIT_TEST_MOVIES", "/srv/movies")
	path := writeConfig(t, `
[libraries.movies]
root = "${ADMIT_TEST_MOVIES}"

[database]
path = "${ADMIT_TEST_UNSET_DATA:-/var/lib/admit}/admit.db"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/movies", cfg.Libraries.Movies.Root)
	assert.Equal(t, "/var/lib/admit/admit.db", cfg.Database.Path)
}

func TestLoad_ValidationError(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "loud"

[quality.music]
minimum = "FLAK"
`)

	_, err := Load(path)
	require.Error(t, err)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Len(t, cfgErr.Errors, 2)
	assert.Contains(t, err.Error(), "log.level")
	assert.Contains(t, err.Error(), `did you mean "FLAC"?`)
}

func TestLoad_UnknownKey(t *testing.T) {
	path := writeConfig(t, `
[scan]
wrokers = 2
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scan.wrokers")
}

func TestLoad_BadTOML(t *testing.T) {
	_, err := Load(writeConfig(t, "[log\nlevel = "))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadWithoutValidation(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "loud"
`)

	cfg, err := LoadWithoutValidation(path)
	require.NoError(t, err, "validation errors are not reported")
	assert.Equal(t, "loud", cfg.Log.Level)
	assert.NotEmpty(t, cfg.Validate())
}
