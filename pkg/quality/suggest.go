package quality

import (
	"strings"

	"github.com/hbollon/go-edlib"
)

// suggestThreshold is the minimum Jaro-Winkler similarity for a suggestion.
const suggestThreshold = 0.80

// Suggest returns the known tier name closest to name, or "" when nothing
// is similar enough. Used to build "did you mean" hints for operators.
func (c *Catalog) Suggest(name string) string {
	needle := normalizeName(name)
	if needle == "" {
		return ""
	}

	var best string
	var bestScore float64
	for _, q := range c.tiers[1:] {
		score := float64(edlib.JaroWinklerSimilarity(needle, normalizeName(q.Name)))
		if score > bestScore {
			best, bestScore = q.Name, score
		}
	}
	if bestScore < suggestThreshold {
		return ""
	}
	return best
}

// LookupHint resolves name like Lookup and, on failure, appends a
// "did you mean" hint to the error message.
func (c *Catalog) LookupHint(name string) (Quality, error) {
	q, err := c.Lookup(name)
	if err == nil {
		return q, nil
	}
	if s := c.Suggest(name); s != "" && !strings.EqualFold(s, name) {
		return Quality{}, &suggestionError{err: err, suggestion: s}
	}
	return Quality{}, err
}

type suggestionError struct {
	err        error
	suggestion string
}

func (e *suggestionError) Error() string {
	return e.err.Error() + " (did you mean " + `"` + e.suggestion + `"?)`
}

func (e *suggestionError) Unwrap() error { return e.err }
