// Package decision decides whether a discovered media file may enter the
// library, by running independent import rules and aggregating their
// rejections.
package decision

import (
	"path/filepath"
	"time"

	"github.com/vmunix/admit/pkg/quality"
)

// Tracks describes the decodable streams found in a candidate file.
type Tracks struct {
	VideoStreams  int
	AudioStreams  int
	AudioChannels int // channels of the primary audio stream
	SampleRate    int // Hz, primary audio stream
}

// Candidate is a file discovered by a scan, evaluated once and discarded.
type Candidate struct {
	Family       quality.Family
	Path         string // absolute path on disk
	RelativePath string // path relative to the scanned root
	SizeBytes    int64
	Duration     time.Duration
	Tracks       Tracks
	Quality      quality.Model // best-effort, may be Unknown
}

// relPath returns the path used for library lookups.
func (c Candidate) relPath() string {
	if c.RelativePath != "" {
		return filepath.ToSlash(c.RelativePath)
	}
	return filepath.Base(c.Path)
}

// Profile holds the enforcement thresholds for a family.
type Profile struct {
	Minimum        quality.Model
	Cutoff         quality.Model
	EnforceMinimum bool
}

// Context is what the caller knows about the target item.
type Context struct {
	ItemID   int64
	Existing *quality.Model // nil when the caller has not resolved it
	Profile  Profile
}

// StoredFile is a file already held by the library.
type StoredFile struct {
	ItemID       int64
	RelativePath string
	SizeBytes    int64
	Quality      quality.Model
}
