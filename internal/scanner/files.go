package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/vmunix/admit/pkg/quality"
)

var videoExtensions = map[string]bool{
	".mkv": true, ".mp4": true, ".avi": true, ".m4v": true, ".mov": true,
	".wmv": true, ".ts": true, ".m2ts": true, ".webm": true,
}

var audioExtensions = map[string]bool{
	".flac": true, ".mp3": true, ".m4a": true, ".aac": true, ".alac": true,
	".ogg": true, ".opus": true, ".wav": true,
}

// IsMediaFile reports whether path has an extension the family imports.
func IsMediaFile(family quality.Family, path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	switch family {
	case quality.FamilyMovie:
		return videoExtensions[ext]
	case quality.FamilyMusic:
		return audioExtensions[ext]
	}
	return false
}

// isSample reports whether a video file is a release sample.
func isSample(name string) bool {
	return strings.Contains(strings.ToLower(name), "sample")
}

// FindMedia finds all media files of a family under root (recursive), in
// lexical order. Hidden files and directories are skipped, as are video
// samples.
func FindMedia(ctx context.Context, root string, family quality.Family) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		name := d.Name()
		if path != root && strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if !IsMediaFile(family, path) {
			return nil
		}
		if family == quality.FamilyMovie && isSample(name) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return paths, nil
}
