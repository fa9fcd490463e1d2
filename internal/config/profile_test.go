package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/admit/pkg/quality"
)

func TestProfile_Configured(t *testing.T) {
	cfg := Default()
	cfg.Quality.Movies = ProfileConfig{Minimum: "webdl-720p", Cutoff: "Remux-1080p", EnforceMinimum: true}

	p, err := cfg.Profile(quality.FamilyMovie)
	require.NoError(t, err)
	assert.Equal(t, quality.MovieWEBDL720p, p.Minimum.Quality.Name)
	assert.Equal(t, quality.MovieRemux1080p, p.Cutoff.Quality.Name)
	assert.Equal(t, quality.DefaultRevision, p.Cutoff.Revision)
	assert.True(t, p.EnforceMinimum)
}

func TestProfile_EmptyDefaults(t *testing.T) {
	p, err := Default().Profile(quality.FamilyMusic)
	require.NoError(t, err)

	assert.True(t, p.Minimum.IsUnknown(), "no minimum accepts any known quality")
	assert.Equal(t, quality.MusicFLAC24bit, p.Cutoff.Quality.Name, "no cutoff means the top tier")
	assert.False(t, p.EnforceMinimum)
}

func TestProfile_InvalidName(t *testing.T) {
	cfg := Default()
	cfg.Quality.Music.Cutoff = "OGG"

	_, err := cfg.Profile(quality.FamilyMusic)
	require.Error(t, err)
	assert.ErrorIs(t, err, quality.ErrUnknownQuality)
	assert.Contains(t, err.Error(), "quality.music.cutoff")
}

func TestLibrariesFor(t *testing.T) {
	cfg := Default()
	cfg.Libraries.Music.Root = "/srv/music"

	assert.Equal(t, "/srv/music", cfg.Libraries.For(quality.FamilyMusic).Root)
	assert.Empty(t, cfg.Libraries.For(quality.FamilyMovie).Root)
}
