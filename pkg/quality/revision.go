package quality

import (
	"cmp"
	"fmt"
)

// Revision breaks ties between files of the same tier.
type Revision struct {
	Version int // 1-based; zero is read as 1
	Proper  bool
	Repack  bool
}

// DefaultRevision is the revision of a plain, first release.
var DefaultRevision = Revision{Version: 1}

func (r Revision) version() int {
	if r.Version < 1 {
		return 1
	}
	return r.Version
}

// IsProperOrRepack reports whether the release fixes an earlier one.
func (r Revision) IsProperOrRepack() bool {
	return r.Proper || r.Repack
}

// CompareRevision orders revisions: version first, then the proper/repack flag.
func CompareRevision(a, b Revision) int {
	if c := cmp.Compare(a.version(), b.version()); c != 0 {
		return c
	}
	return cmp.Compare(boolRank(a.IsProperOrRepack()), boolRank(b.IsProperOrRepack()))
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (r Revision) String() string {
	s := fmt.Sprintf("v%d", r.version())
	switch {
	case r.Proper && r.Repack:
		s += " proper repack"
	case r.Proper:
		s += " proper"
	case r.Repack:
		s += " repack"
	}
	return s
}
