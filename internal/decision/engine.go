package decision

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vmunix/admit/pkg/quality"
)

// RuleSet is the ordered list of rules for one family.
type RuleSet struct {
	Family quality.Family
	Rules  []Rule
}

// MovieRules returns the movie rule set in its documented order:
// already imported, video track, minimum quality, upgrade.
func MovieRules(files FileLookup, existing ExistingLookup) RuleSet {
	return RuleSet{
		Family: quality.FamilyMovie,
		Rules: []Rule{
			AlreadyImported(files),
			HasVideoTrack(),
			MinimumQuality(),
			Upgrade(existing),
		},
	}
}

// MusicRules returns the music rule set in its documented order:
// already imported, audio track, minimum quality, upgrade.
func MusicRules(files FileLookup, existing ExistingLookup) RuleSet {
	return RuleSet{
		Family: quality.FamilyMusic,
		Rules: []Rule{
			AlreadyImported(files),
			HasAudioTrack(),
			MinimumQuality(),
			Upgrade(existing),
		},
	}
}

// DefaultRuleSets returns the rule sets of every supported family.
func DefaultRuleSets(files FileLookup, existing ExistingLookup) []RuleSet {
	return []RuleSet{
		MovieRules(files, existing),
		MusicRules(files, existing),
	}
}

// Engine runs every registered rule for a candidate's family and
// aggregates the rejections. It holds no mutable state after construction
// and is safe for concurrent use.
type Engine struct {
	rules map[quality.Family][]Rule
	log   *slog.Logger
}

// NewEngine creates an engine from rule sets. A later set for the same
// family replaces an earlier one.
func NewEngine(log *slog.Logger, sets ...RuleSet) *Engine {
	if log == nil {
		log = slog.Default()
	}
	e := &Engine{
		rules: make(map[quality.Family][]Rule, len(sets)),
		log:   log,
	}
	for _, set := range sets {
		rules := make([]Rule, len(set.Rules))
		copy(rules, set.Rules)
		e.rules[set.Family] = rules
	}
	return e
}

// Families returns the families with registered rules.
func (e *Engine) Families() []quality.Family {
	var out []quality.Family
	for _, f := range quality.Families() {
		if _, ok := e.rules[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

// Decide evaluates every rule for the candidate's family, without
// short-circuiting, and returns the aggregate decision.
//
// A non-nil error means no decision was reached: either a collaborator
// failed or ctx was canceled (errors.Is(err, context.Canceled)). Callers
// must not read the returned Decision in that case.
func (e *Engine) Decide(ctx context.Context, c Candidate, ic Context) (Decision, error) {
	rules, ok := e.rules[c.Family]
	if !ok {
		return Decision{}, fmt.Errorf("%w: %q", ErrUnsupportedFamily, c.Family)
	}
	if q := c.Quality.Quality; !q.IsUnknown() && q.Family != c.Family {
		return Decision{}, fmt.Errorf("%w: %s is a %s quality, candidate is %s", ErrFamilyMismatch, q.Name, q.Family, c.Family)
	}

	d := Decision{Path: c.Path}
	for _, rule := range rules {
		if err := ctx.Err(); err != nil {
			return Decision{}, fmt.Errorf("decide %s: %w", c.Path, err)
		}
		rej, err := rule.Evaluate(ctx, c, ic)
		if err != nil {
			return Decision{}, fmt.Errorf("rule %s: %w", rule.Name(), err)
		}
		if rej != nil {
			e.log.Debug("rule rejected candidate", "path", c.Path, "rule", rule.Name(), "reason", rej.Reason)
			d.Rejections = append(d.Rejections, *rej)
		}
	}

	e.log.Debug("import decision",
		"path", c.Path,
		"family", c.Family,
		"quality", c.Quality.String(),
		"accepted", d.Accepted(),
		"rejections", len(d.Rejections))
	return d, nil
}
