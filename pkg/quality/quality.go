// Package quality provides the quality catalogs, revisions and the total
// order used to rank media files against each other.
package quality

import (
	"fmt"
	"strings"
)

// Family groups media that share a quality catalog and a rule set.
type Family string

const (
	FamilyMovie Family = "movie"
	FamilyMusic Family = "music"
)

// Families lists every supported family in a fixed order.
func Families() []Family {
	return []Family{FamilyMovie, FamilyMusic}
}

// ParseFamily resolves a family name, accepting common plurals.
func ParseFamily(s string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "movie", "movies":
		return FamilyMovie, nil
	case "music", "album", "albums", "track", "tracks":
		return FamilyMusic, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFamily, s)
	}
}

func (f Family) String() string { return string(f) }

// unknownName is the name of the sentinel tier in every catalog.
const unknownName = "Unknown"

// Quality is a named tier inside a family's catalog.
// Rank orders tiers within one family only.
type Quality struct {
	Family Family
	Name   string
	Rank   int
}

// IsUnknown reports whether q is the Unknown sentinel (or the zero value).
func (q Quality) IsUnknown() bool {
	return q.Rank == 0
}

func (q Quality) String() string {
	if q.Name == "" {
		return unknownName
	}
	return q.Name
}
