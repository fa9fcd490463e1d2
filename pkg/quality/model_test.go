package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func movie(t *testing.T, name string, rev Revision) Model {
	t.Helper()
	q, err := Lookup(FamilyMovie, name)
	require.NoError(t, err)
	return Model{Quality: q, Revision: rev}
}

var revisions = []Revision{
	{},
	{Version: 1},
	{Version: 1, Proper: true},
	{Version: 1, Repack: true},
	{Version: 2},
	{Version: 2, Proper: true},
	{Version: 3},
}

// allModels crosses every tier of a family with every test revision.
func allModels(t *testing.T, family Family) []Model {
	t.Helper()
	c, err := CatalogFor(family)
	require.NoError(t, err)
	var out []Model
	for _, q := range c.Tiers() {
		for _, r := range revisions {
			out = append(out, Model{Quality: q, Revision: r})
		}
	}
	return out
}

func TestCompare_TotalOrder(t *testing.T) {
	for _, family := range Families() {
		t.Run(string(family), func(t *testing.T) {
			models := allModels(t, family)
			for _, a := range models {
				assert.Zero(t, Compare(a, a), "Compare(%s, %s)", a, a)
				for _, b := range models {
					assert.Equal(t, -Compare(b, a), Compare(a, b), "antisymmetry %s vs %s", a, b)
					for _, c := range models {
						if Compare(a, b) > 0 && Compare(b, c) > 0 {
							assert.Positive(t, Compare(a, c), "transitivity %s > %s > %s", a, b, c)
						}
						if Compare(a, b) == 0 && Compare(b, c) == 0 {
							assert.Zero(t, Compare(a, c), "equality transitivity %s = %s = %s", a, b, c)
						}
					}
				}
			}
		})
	}
}

func TestCompare_RankDominatesRevision(t *testing.T) {
	for _, family := range Families() {
		c, err := CatalogFor(family)
		require.NoError(t, err)
		tiers := c.Tiers()
		for i := 0; i < len(tiers); i++ {
			for j := i + 1; j < len(tiers); j++ {
				for _, lowRev := range revisions {
					for _, highRev := range revisions {
						low := Model{Quality: tiers[i], Revision: lowRev}
						high := Model{Quality: tiers[j], Revision: highRev}
						assert.Positive(t, Compare(high, low), "%s should outrank %s", high, low)
					}
				}
			}
		}
	}
}

func TestCompare_RevisionTieBreak(t *testing.T) {
	tests := []struct {
		name   string
		better Revision
		worse  Revision
	}{
		{"proper beats plain", Revision{Version: 1, Proper: true}, Revision{Version: 1}},
		{"repack beats plain", Revision{Version: 1, Repack: true}, Revision{Version: 1}},
		{"v2 beats v1", Revision{Version: 2}, Revision{Version: 1}},
		{"v2 beats v1 proper", Revision{Version: 2}, Revision{Version: 1, Proper: true}},
		{"v1 proper beats zero value", Revision{Proper: true}, Revision{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			better := movie(t, MovieBluray1080p, tt.better)
			worse := movie(t, MovieBluray1080p, tt.worse)
			assert.Positive(t, Compare(better, worse))
			assert.True(t, IsUpgrade(&worse, better))
			assert.False(t, IsUpgrade(&better, worse))
		})
	}
}

func TestRevision_ZeroVersionEqualsDefault(t *testing.T) {
	assert.Zero(t, CompareRevision(Revision{}, DefaultRevision))
	assert.Zero(t, CompareRevision(Revision{Proper: true}, Revision{Version: 1, Repack: true}))
}

func TestIsUpgrade(t *testing.T) {
	models := allModels(t, FamilyMovie)
	for _, x := range models {
		assert.True(t, IsUpgrade(nil, x), "nothing is beaten by %s", x)
		assert.False(t, IsUpgrade(&x, x), "%s is not an upgrade over itself", x)
		for _, y := range models {
			assert.Equal(t, Compare(y, x) > 0, IsUpgrade(&x, y), "IsUpgrade(%s, %s)", x, y)
		}
	}
}

func TestMeetsMinimumAndCutoff(t *testing.T) {
	models := allModels(t, FamilyMusic)
	for _, x := range models {
		assert.True(t, MeetsMinimum(x, x), "MeetsMinimum is reflexive for %s", x)
		assert.True(t, HasReachedCutoff(x, x), "HasReachedCutoff is reflexive for %s", x)
		for _, y := range models {
			assert.Equal(t, Compare(x, y) >= 0, MeetsMinimum(x, y))
			assert.Equal(t, MeetsMinimum(x, y), HasReachedCutoff(x, y))
		}
	}
}

func TestScenarios_UpgradeAcrossTiers(t *testing.T) {
	hdtv := movie(t, MovieHDTV720p, Revision{Version: 1})
	bluray := movie(t, MovieBluray1080p, Revision{Version: 1})
	hdtvProper := movie(t, MovieHDTV720p, Revision{Version: 2, Proper: true})

	assert.True(t, IsUpgrade(&hdtv, bluray), "Bluray-1080p replaces HDTV-720p")
	assert.False(t, IsUpgrade(&bluray, hdtvProper), "a proper lower tier never replaces a higher tier")
}

func TestModel_String(t *testing.T) {
	m := movie(t, MovieWEBDL1080p, Revision{Version: 2, Repack: true})
	assert.Equal(t, "WEBDL-1080p v2 repack", m.String())
	assert.Equal(t, "Unknown v1", Model{}.String())
}
