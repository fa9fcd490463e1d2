package library

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/vmunix/admit/pkg/quality"
)

// fileColumns selects a file with its item's family, which is needed to
// resolve the stored quality name against the right catalog.
const fileColumns = "f.id, f.item_id, f.relative_path, f.size_bytes, f.quality, " +
	"f.revision_version, f.proper, f.repack, f.added_at, i.family"

const fileFrom = "files f JOIN items i ON i.id = f.item_id"

func scanFile(row interface{ Scan(...any) error }) (*File, error) {
	f := &File{}
	var name, family string
	if err := row.Scan(&f.ID, &f.ItemID, &f.RelativePath, &f.SizeBytes, &name,
		&f.Quality.Revision.Version, &f.Quality.Revision.Proper, &f.Quality.Revision.Repack,
		&f.AddedAt, &family); err != nil {
		return nil, err
	}
	q, err := quality.Lookup(quality.Family(family), name)
	if err != nil {
		return nil, fmt.Errorf("file %d: %w", f.ID, err)
	}
	f.Quality.Quality = q
	return f, nil
}

func addFile(ctx context.Context, q querier, f *File) error {
	rel := filepath.ToSlash(f.RelativePath)
	rev := f.Quality.Revision
	if rev.Version < 1 {
		rev.Version = 1
	}
	now := time.Now()
	result, err := q.ExecContext(ctx, `
		INSERT INTO files (item_id, relative_path, size_bytes, quality, revision_version, proper, repack, added_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ItemID, rel, f.SizeBytes, f.Quality.Quality.Name, rev.Version, rev.Proper, rev.Repack, now,
	)
	if err != nil {
		return fmt.Errorf("insert file: %w", mapSQLiteError(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	f.ID = id
	f.RelativePath = rel
	f.Quality.Revision = rev
	f.AddedAt = now
	return nil
}

// AddFile inserts a new file. Sets ID and AddedAt on the struct.
// Returns ErrDuplicate if the item already holds a file at the relative
// path and ErrConstraint if the item does not exist.
func (s *Store) AddFile(ctx context.Context, f *File) error { return addFile(ctx, s.db, f) }

// AddFile inserts a new file within a transaction.
func (t *Tx) AddFile(ctx context.Context, f *File) error { return addFile(ctx, t.tx, f) }

func putFile(ctx context.Context, q querier, f *File) error {
	rel := filepath.ToSlash(f.RelativePath)
	rev := f.Quality.Revision
	if rev.Version < 1 {
		rev.Version = 1
	}
	now := time.Now()
	var id int64
	err := q.QueryRowContext(ctx, `
		INSERT INTO files (item_id, relative_path, size_bytes, quality, revision_version, proper, repack, added_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (item_id, relative_path) DO UPDATE SET
			size_bytes = excluded.size_bytes,
			quality = excluded.quality,
			revision_version = excluded.revision_version,
			proper = excluded.proper,
			repack = excluded.repack,
			added_at = excluded.added_at
		RETURNING id`,
		f.ItemID, rel, f.SizeBytes, f.Quality.Quality.Name, rev.Version, rev.Proper, rev.Repack, now,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("put file: %w", mapSQLiteError(err))
	}
	f.ID = id
	f.RelativePath = rel
	f.Quality.Revision = rev
	f.AddedAt = now
	return nil
}

// PutFile stores a file, replacing the one the item already holds at the
// same relative path. The replaced row keeps its ID.
func (s *Store) PutFile(ctx context.Context, f *File) error { return putFile(ctx, s.db, f) }

// PutFile stores or replaces a file within a transaction.
func (t *Tx) PutFile(ctx context.Context, f *File) error { return putFile(ctx, t.tx, f) }

func getFile(ctx context.Context, q querier, id int64) (*File, error) {
	f, err := scanFile(q.QueryRowContext(ctx, "SELECT "+fileColumns+" FROM "+fileFrom+" WHERE f.id = ?", id))
	if err != nil {
		return nil, fmt.Errorf("get file %d: %w", id, mapSQLiteError(err))
	}
	return f, nil
}

// GetFile retrieves a file by ID.
// Returns ErrNotFound if the file does not exist.
func (s *Store) GetFile(ctx context.Context, id int64) (*File, error) { return getFile(ctx, s.db, id) }

// GetFile retrieves a file by ID within a transaction.
func (t *Tx) GetFile(ctx context.Context, id int64) (*File, error) { return getFile(ctx, t.tx, id) }

func getFileByPath(ctx context.Context, q querier, itemID int64, relPath string) (*File, error) {
	rel := filepath.ToSlash(relPath)
	f, err := scanFile(q.QueryRowContext(ctx,
		"SELECT "+fileColumns+" FROM "+fileFrom+" WHERE f.item_id = ? AND f.relative_path = ?", itemID, rel))
	if err != nil {
		return nil, fmt.Errorf("get file %q of item %d: %w", rel, itemID, mapSQLiteError(err))
	}
	return f, nil
}

// GetFileByPath retrieves the file an item holds at a relative path.
// Returns ErrNotFound if the item holds nothing there.
func (s *Store) GetFileByPath(ctx context.Context, itemID int64, relPath string) (*File, error) {
	return getFileByPath(ctx, s.db, itemID, relPath)
}

// GetFileByPath retrieves a file by item and path within a transaction.
func (t *Tx) GetFileByPath(ctx context.Context, itemID int64, relPath string) (*File, error) {
	return getFileByPath(ctx, t.tx, itemID, relPath)
}

func listFiles(ctx context.Context, q querier, f FileFilter) ([]*File, int, error) {
	var conditions []string
	var args []any

	if f.ItemID != nil {
		conditions = append(conditions, "f.item_id = ?")
		args = append(args, *f.ItemID)
	}
	if f.RelativePath != nil {
		conditions = append(conditions, "f.relative_path = ?")
		args = append(args, filepath.ToSlash(*f.RelativePath))
	}
	if f.Quality != nil {
		conditions = append(conditions, "f.quality = ?")
		args = append(args, *f.Quality)
	}
	whereClause := where(conditions)

	var total int
	if err := q.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+fileFrom+" "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count files: %w", err)
	}

	query := "SELECT " + fileColumns + " FROM " + fileFrom + " " + whereClause + " ORDER BY f.id" + paginate(f.Limit, f.Offset)
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list files: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*File
	for rows.Next() {
		file, err := scanFile(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan file: %w", err)
		}
		results = append(results, file)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate files: %w", err)
	}
	return results, total, nil
}

// ListFiles returns files matching the filter with pagination.
// Returns (results, totalCount, error).
func (s *Store) ListFiles(ctx context.Context, f FileFilter) ([]*File, int, error) {
	return listFiles(ctx, s.db, f)
}

// ListFiles returns files matching the filter within a transaction.
func (t *Tx) ListFiles(ctx context.Context, f FileFilter) ([]*File, int, error) {
	return listFiles(ctx, t.tx, f)
}

func deleteFile(ctx context.Context, q querier, id int64) error {
	if _, err := q.ExecContext(ctx, "DELETE FROM files WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete file %d: %w", id, mapSQLiteError(err))
	}
	return nil
}

// DeleteFile removes a file by ID.
// This operation is idempotent - no error is returned if the file does not exist.
func (s *Store) DeleteFile(ctx context.Context, id int64) error { return deleteFile(ctx, s.db, id) }

// DeleteFile removes a file by ID within a transaction.
func (t *Tx) DeleteFile(ctx context.Context, id int64) error { return deleteFile(ctx, t.tx, id) }
