package decision

import "context"

// Rule is one independent import check.
//
// Evaluate returns a rejection when the candidate fails the check and nil
// when it passes. Expected domain outcomes are always rejections; the error
// return is reserved for collaborator faults and cancellation.
type Rule interface {
	Name() string
	Evaluate(ctx context.Context, c Candidate, ic Context) (*Rejection, error)
}

// RuleFunc adapts a function to the Rule interface.
type RuleFunc func(ctx context.Context, c Candidate, ic Context) (*Rejection, error)

type namedRule struct {
	name string
	fn   RuleFunc
}

// NewRule names a function as a Rule.
func NewRule(name string, fn RuleFunc) Rule {
	return namedRule{name: name, fn: fn}
}

func (r namedRule) Name() string { return r.name }

func (r namedRule) Evaluate(ctx context.Context, c Candidate, ic Context) (*Rejection, error) {
	return r.fn(ctx, c, ic)
}

// pure adapts a rule that needs no I/O.
func pure(name string, fn func(c Candidate, ic Context) *Rejection) Rule {
	return NewRule(name, func(_ context.Context, c Candidate, ic Context) (*Rejection, error) {
		return fn(c, ic), nil
	})
}
