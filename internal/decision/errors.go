package decision

import "errors"

var (
	// ErrUnsupportedFamily indicates no rule set is registered for the candidate's family.
	ErrUnsupportedFamily = errors.New("no rules registered for media family")

	// ErrFamilyMismatch indicates the candidate's quality belongs to another family.
	ErrFamilyMismatch = errors.New("candidate quality family does not match candidate family")
)
