package quality

import "cmp"

// Model is the measured quality of one file: a tier plus its revision.
type Model struct {
	Quality  Quality
	Revision Revision
}

// NewModel pairs a tier with the default revision.
func NewModel(q Quality) Model {
	return Model{Quality: q, Revision: DefaultRevision}
}

// IsUnknown reports whether the tier could not be determined.
func (m Model) IsUnknown() bool { return m.Quality.IsUnknown() }

func (m Model) String() string {
	return m.Quality.String() + " " + m.Revision.String()
}

// Compare orders two models. The result is positive when a ranks better
// than b, negative when worse and zero when equal. Tier rank always
// dominates; revisions only break ties between equal ranks.
//
// Ranks are only meaningful inside one family.
func Compare(a, b Model) int {
	if c := cmp.Compare(a.Quality.Rank, b.Quality.Rank); c != 0 {
		return c
	}
	return CompareRevision(a.Revision, b.Revision)
}

// IsUpgrade reports whether candidate should replace current.
// Anything beats having no file at all.
func IsUpgrade(current *Model, candidate Model) bool {
	if current == nil {
		return true
	}
	return Compare(candidate, *current) > 0
}

// MeetsMinimum reports whether candidate is at or above the minimum.
func MeetsMinimum(candidate, minimum Model) bool {
	return Compare(candidate, minimum) >= 0
}

// HasReachedCutoff reports whether candidate is good enough that no
// further upgrades need to be sought.
func HasReachedCutoff(candidate, cutoff Model) bool {
	return Compare(candidate, cutoff) >= 0
}
