package library

import (
	"context"
	"errors"

	"github.com/vmunix/admit/internal/decision"
	"github.com/vmunix/admit/pkg/quality"
)

var (
	_ decision.FileLookup     = (*Store)(nil)
	_ decision.ExistingLookup = (*Store)(nil)
)

func (f *File) stored() *decision.StoredFile {
	return &decision.StoredFile{
		ItemID:       f.ItemID,
		RelativePath: f.RelativePath,
		SizeBytes:    f.SizeBytes,
		Quality:      f.Quality,
	}
}

// FilesByRelativePath implements decision.FileLookup. An itemID of 0
// matches the path in every item.
func (s *Store) FilesByRelativePath(ctx context.Context, itemID int64, relPath string) ([]decision.StoredFile, error) {
	filter := FileFilter{RelativePath: &relPath}
	if itemID != 0 {
		filter.ItemID = &itemID
	}
	files, _, err := s.ListFiles(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]decision.StoredFile, 0, len(files))
	for _, f := range files {
		out = append(out, *f.stored())
	}
	return out, nil
}

// ExistingFile implements decision.ExistingLookup. With a track it returns
// the file the item holds at that path; without one, the item's
// best-quality file. Returns nil, nil when there is none.
func (s *Store) ExistingFile(ctx context.Context, itemID int64, track string) (*decision.StoredFile, error) {
	if track != "" {
		f, err := s.GetFileByPath(ctx, itemID, track)
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return f.stored(), nil
	}

	files, _, err := s.ListFiles(ctx, FileFilter{ItemID: &itemID})
	if err != nil {
		return nil, err
	}
	var best *File
	for _, f := range files {
		if best == nil || quality.Compare(f.Quality, best.Quality) > 0 {
			best = f
		}
	}
	if best == nil {
		return nil, nil
	}
	return best.stored(), nil
}
