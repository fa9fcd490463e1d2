// Package library tracks library items and the files imported for them.
package library

import (
	"time"

	"github.com/vmunix/admit/pkg/quality"
)

// Item is a movie or an album that files are imported into.
type Item struct {
	ID      int64
	Family  quality.Family
	Title   string
	Year    int
	AddedAt time.Time
}

// File is a media file already imported for an item.
type File struct {
	ID           int64
	ItemID       int64
	RelativePath string // slash-separated, relative to the library root
	SizeBytes    int64
	Quality      quality.Model
	AddedAt      time.Time
}
