package decision

import (
	"context"
	"fmt"

	"github.com/vmunix/admit/pkg/quality"
)

// Rule names, used in logs and wrapped errors.
const (
	RuleAlreadyImported  = "already_imported"
	RuleHasPlayableTrack = "has_playable_track"
	RuleMinimumQuality   = "minimum_quality"
	RuleUpgrade          = "upgrade"
)

// AlreadyImported rejects a candidate when the library already stores a
// file at the same relative path with the same byte size. With an item in
// the context only that item's files count.
func AlreadyImported(files FileLookup) Rule {
	return NewRule(RuleAlreadyImported, func(ctx context.Context, c Candidate, ic Context) (*Rejection, error) {
		if files == nil {
			return nil, nil
		}
		rel := c.relPath()
		stored, err := files.FilesByRelativePath(ctx, ic.ItemID, rel)
		if err != nil {
			return nil, fmt.Errorf("lookup file %q: %w", rel, err)
		}
		for _, f := range stored {
			if f.SizeBytes == c.SizeBytes {
				return reject(ReasonAlreadyImported,
					"%s is already imported (%d bytes, item %d)", rel, f.SizeBytes, f.ItemID), nil
			}
		}
		return nil, nil
	})
}

// HasVideoTrack requires at least one video stream and a non-zero duration.
func HasVideoTrack() Rule {
	return pure(RuleHasPlayableTrack, func(c Candidate, _ Context) *Rejection {
		switch {
		case c.Tracks.VideoStreams < 1:
			return reject(ReasonNoVideoTrack, "%s has no video stream", c.Path)
		case c.Duration <= 0:
			return reject(ReasonNoVideoTrack, "%s has zero duration", c.Path)
		}
		return nil
	})
}

// HasAudioTrack requires a decodable audio stream (channels and sample
// rate present) and a non-zero duration.
func HasAudioTrack() Rule {
	return pure(RuleHasPlayableTrack, func(c Candidate, _ Context) *Rejection {
		switch {
		case c.Tracks.AudioChannels < 1 || c.Tracks.SampleRate < 1:
			return reject(ReasonNoAudioTrack, "%s has no decodable audio stream (channels=%d, sample_rate=%d)",
				c.Path, c.Tracks.AudioChannels, c.Tracks.SampleRate)
		case c.Duration <= 0:
			return reject(ReasonNoAudioTrack, "%s has zero duration", c.Path)
		}
		return nil
	})
}

// MinimumQuality rejects candidates whose quality is Unknown, and, when the
// profile enforces it, candidates below the profile minimum.
func MinimumQuality() Rule {
	return pure(RuleMinimumQuality, func(c Candidate, ic Context) *Rejection {
		if c.Quality.IsUnknown() {
			return reject(ReasonUnableToParse, "unable to determine quality of %s", c.Path)
		}
		if ic.Profile.EnforceMinimum && !quality.MeetsMinimum(c.Quality, ic.Profile.Minimum) {
			return reject(ReasonMinimumQuality, "%s is %s, below minimum %s",
				c.Path, c.Quality, ic.Profile.Minimum)
		}
		return nil
	})
}

// Upgrade requires the candidate to outrank the file already held for the
// target item. The held quality comes from the context when the caller has
// resolved it, otherwise from existing. With no held file the rule passes.
//
// A music item is an album, so a track is only compared with the held
// file at its own path; a new track of a held album is not an upgrade
// question. A movie is compared with the item's best file.
//
// Unknown candidates pass here; MinimumQuality owns that rejection.
func Upgrade(existing ExistingLookup) Rule {
	return NewRule(RuleUpgrade, func(ctx context.Context, c Candidate, ic Context) (*Rejection, error) {
		if c.Quality.IsUnknown() {
			return nil, nil
		}
		current := ic.Existing
		if current == nil && existing != nil && ic.ItemID != 0 {
			var track string
			if c.Family == quality.FamilyMusic {
				track = c.relPath()
			}
			stored, err := existing.ExistingFile(ctx, ic.ItemID, track)
			if err != nil {
				return nil, fmt.Errorf("lookup existing file for item %d: %w", ic.ItemID, err)
			}
			if stored != nil {
				current = &stored.Quality
			}
		}
		if quality.IsUpgrade(current, c.Quality) {
			return nil, nil
		}
		return reject(ReasonNotAnUpgrade, "%s is %s, not an upgrade over existing %s",
			c.Path, c.Quality, *current), nil
	})
}
