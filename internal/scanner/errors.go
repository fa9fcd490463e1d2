package scanner

import "errors"

// ErrNoRoot is returned when the scan root is missing or is not a directory.
var ErrNoRoot = errors.New("scan root is not a directory")
