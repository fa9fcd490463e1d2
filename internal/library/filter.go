package library

import "github.com/vmunix/admit/pkg/quality"

// ItemFilter specifies criteria for listing items.
type ItemFilter struct {
	Family *quality.Family
	Title  *string
	Year   *int
	Limit  int // 0 = no limit
	Offset int
}

// FileFilter specifies criteria for listing files.
type FileFilter struct {
	ItemID       *int64
	RelativePath *string
	Quality      *string
	Limit        int
	Offset       int
}
