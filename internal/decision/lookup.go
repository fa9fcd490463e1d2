package decision

//go:generate mockgen -destination=mocks/lookup.go -package=mocks . FileLookup,ExistingLookup

import "context"

// FileLookup finds the files stored at a relative path. Paths are only
// unique within an item, so itemID narrows the search; 0 searches every
// item. Returns an empty slice when nothing is stored there.
type FileLookup interface {
	FilesByRelativePath(ctx context.Context, itemID int64, relPath string) ([]StoredFile, error)
}

// ExistingLookup finds the file an item currently holds that a candidate
// would replace. An empty track means the item as a whole (its best
// file); otherwise only the file at that relative path is considered.
// Returns nil, nil when there is none.
type ExistingLookup interface {
	ExistingFile(ctx context.Context, itemID int64, track string) (*StoredFile, error)
}
