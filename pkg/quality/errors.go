package quality

import "errors"

var (
	// ErrUnknownFamily indicates a family name that has no catalog.
	ErrUnknownFamily = errors.New("unknown media family")

	// ErrUnknownQuality indicates a quality name missing from the family's catalog.
	ErrUnknownQuality = errors.New("unknown quality")
)
