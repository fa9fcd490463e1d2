package config

import (
	"fmt"

	"github.com/vmunix/admit/internal/decision"
	"github.com/vmunix/admit/pkg/quality"
)

// sectionName is the TOML table name of a family.
func sectionName(family quality.Family) string {
	switch family {
	case quality.FamilyMovie:
		return "movies"
	case quality.FamilyMusic:
		return "music"
	}
	return string(family)
}

// For returns the profile configured for family.
func (q QualityConfig) For(family quality.Family) ProfileConfig {
	switch family {
	case quality.FamilyMovie:
		return q.Movies
	case quality.FamilyMusic:
		return q.Music
	}
	return ProfileConfig{}
}

// For returns the library configured for family.
func (l LibrariesConfig) For(family quality.Family) LibraryConfig {
	switch family {
	case quality.FamilyMovie:
		return l.Movies
	case quality.FamilyMusic:
		return l.Music
	}
	return LibraryConfig{}
}

func (p ProfileConfig) minimum(family quality.Family) (quality.Quality, error) {
	if p.Minimum == "" {
		return quality.UnknownFor(family), nil
	}
	return lookup(family, p.Minimum)
}

func (p ProfileConfig) cutoff(family quality.Family) (quality.Quality, error) {
	if p.Cutoff == "" {
		c, err := quality.CatalogFor(family)
		if err != nil {
			return quality.Quality{}, err
		}
		tiers := c.Tiers()
		return tiers[len(tiers)-1], nil
	}
	return lookup(family, p.Cutoff)
}

func lookup(family quality.Family, name string) (quality.Quality, error) {
	c, err := quality.CatalogFor(family)
	if err != nil {
		return quality.Quality{}, err
	}
	return c.LookupHint(name)
}

// Profile builds the decision profile for family.
func (c *Config) Profile(family quality.Family) (decision.Profile, error) {
	p := c.Quality.For(family)
	minimum, err := p.minimum(family)
	if err != nil {
		return decision.Profile{}, fmt.Errorf("quality.%s.minimum: %w", sectionName(family), err)
	}
	cutoff, err := p.cutoff(family)
	if err != nil {
		return decision.Profile{}, fmt.Errorf("quality.%s.cutoff: %w", sectionName(family), err)
	}
	return decision.Profile{
		Minimum:        quality.NewModel(minimum),
		Cutoff:         quality.NewModel(cutoff),
		EnforceMinimum: p.EnforceMinimum,
	}, nil
}
