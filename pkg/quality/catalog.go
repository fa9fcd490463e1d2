package quality

import (
	"fmt"
	"strings"
)

// Movie tier names, lowest first.
const (
	MovieCAM         = "CAM"
	MovieTelesync    = "TELESYNC"
	MovieDVD         = "DVD"
	MovieSDTV        = "SDTV"
	MovieHDTV720p    = "HDTV-720p"
	MovieWEBRip720p  = "WEBRip-720p"
	MovieWEBDL720p   = "WEBDL-720p"
	MovieBluray720p  = "Bluray-720p"
	MovieHDTV1080p   = "HDTV-1080p"
	MovieWEBRip1080p = "WEBRip-1080p"
	MovieWEBDL1080p  = "WEBDL-1080p"
	MovieBluray1080p = "Bluray-1080p"
	MovieRemux1080p  = "Remux-1080p"
	MovieHDTV2160p   = "HDTV-2160p"
	MovieWEBRip2160p = "WEBRip-2160p"
	MovieWEBDL2160p  = "WEBDL-2160p"
	MovieBluray2160p = "Bluray-2160p"
	MovieRemux2160p  = "Remux-2160p"
)

// Music tier names, lowest first.
const (
	MusicMP3128    = "MP3-128"
	MusicMP3192    = "MP3-192"
	MusicMP3256    = "MP3-256"
	MusicAAC256    = "AAC-256"
	MusicMP3320    = "MP3-320"
	MusicAAC320    = "AAC-320"
	MusicALAC      = "ALAC"
	MusicFLAC      = "FLAC"
	MusicFLAC24bit = "FLAC 24bit"
)

// Catalog is the ordered registry of tiers for one family.
// Index 0 is always Unknown; a tier's rank is its index.
type Catalog struct {
	family Family
	tiers  []Quality
	byName map[string]Quality
}

var catalogs = map[Family]*Catalog{
	FamilyMovie: newCatalog(FamilyMovie,
		MovieCAM, MovieTelesync, MovieDVD, MovieSDTV,
		MovieHDTV720p, MovieWEBRip720p, MovieWEBDL720p, MovieBluray720p,
		MovieHDTV1080p, MovieWEBRip1080p, MovieWEBDL1080p, MovieBluray1080p, MovieRemux1080p,
		MovieHDTV2160p, MovieWEBRip2160p, MovieWEBDL2160p, MovieBluray2160p, MovieRemux2160p,
	),
	FamilyMusic: newCatalog(FamilyMusic,
		MusicMP3128, MusicMP3192, MusicMP3256, MusicAAC256, MusicMP3320, MusicAAC320,
		MusicALAC, MusicFLAC, MusicFLAC24bit,
	),
}

func newCatalog(family Family, names ...string) *Catalog {
	c := &Catalog{
		family: family,
		tiers:  make([]Quality, 0, len(names)+1),
		byName: make(map[string]Quality, len(names)+1),
	}
	for i, name := range append([]string{unknownName}, names...) {
		q := Quality{Family: family, Name: name, Rank: i}
		if _, dup := c.byName[strings.ToLower(name)]; dup {
			panic(fmt.Sprintf("quality: duplicate tier %q in %s catalog", name, family))
		}
		c.tiers = append(c.tiers, q)
		c.byName[strings.ToLower(name)] = q
	}
	return c
}

// CatalogFor returns the catalog of a family.
func CatalogFor(family Family) (*Catalog, error) {
	c, ok := catalogs[family]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFamily, family)
	}
	return c, nil
}

// Family returns the family this catalog ranks.
func (c *Catalog) Family() Family { return c.family }

// Tiers returns every tier, Unknown first, ordered by ascending rank.
func (c *Catalog) Tiers() []Quality {
	out := make([]Quality, len(c.tiers))
	copy(out, c.tiers)
	return out
}

// Unknown returns the sentinel tier ranked below every known tier.
func (c *Catalog) Unknown() Quality { return c.tiers[0] }

// Lookup finds a tier by name, ignoring case.
// Returns ErrUnknownQuality if the name is not in the catalog.
func (c *Catalog) Lookup(name string) (Quality, error) {
	q, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Quality{}, fmt.Errorf("%w: %q is not a %s quality", ErrUnknownQuality, name, c.family)
	}
	return q, nil
}

// Lookup finds a tier by family and name.
func Lookup(family Family, name string) (Quality, error) {
	c, err := CatalogFor(family)
	if err != nil {
		return Quality{}, err
	}
	return c.Lookup(name)
}

// UnknownFor returns the Unknown tier of a family.
func UnknownFor(family Family) Quality {
	return Quality{Family: family, Name: unknownName, Rank: 0}
}

// mustLookup is for tier names that are compile-time constants.
func mustLookup(family Family, name string) Quality {
	q, err := Lookup(family, name)
	if err != nil {
		panic(err)
	}
	return q
}
