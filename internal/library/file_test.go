package library

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/admit/pkg/quality"
)

func TestStore_AddFile(t *testing.T) {
	store := NewStore(setupTestDB(t))
	ctx := context.Background()
	movie := createTestMovie(t, store)

	f := &File{
		ItemID:       movie.ID,
		RelativePath: "Fight Club (1999)/Fight.Club.1999.1080p.BluRay.PROPER.mkv",
		SizeBytes:    8589934592,
		Quality:      qm(t, quality.FamilyMovie, quality.MovieBluray1080p, quality.Revision{Version: 2, Proper: true}),
	}
	require.NoError(t, store.AddFile(ctx, f))
	assert.NotZero(t, f.ID)
	assert.False(t, f.AddedAt.IsZero())

	got, err := store.GetFile(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, f.RelativePath, got.RelativePath)
	assert.Equal(t, int64(8589934592), got.SizeBytes)
	assert.Equal(t, f.Quality, got.Quality)
	assert.Equal(t, 0, quality.Compare(f.Quality, got.Quality))
}

func TestStore_AddFile_ZeroRevisionStoredAsV1(t *testing.T) {
	store := NewStore(setupTestDB(t))
	ctx := context.Background()
	movie := createTestMovie(t, store)

	f := &File{
		ItemID:       movie.ID,
		RelativePath: "Fight Club (1999)/movie.mkv",
		SizeBytes:    1,
		Quality:      quality.Model{Quality: qm(t, quality.FamilyMovie, quality.MovieDVD, quality.DefaultRevision).Quality},
	}
	require.NoError(t, store.AddFile(ctx, f))

	got, err := store.GetFile(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, quality.DefaultRevision, got.Quality.Revision)
}

func TestStore_AddFile_DuplicatePath(t *testing.T) {
	store := NewStore(setupTestDB(t))
	ctx := context.Background()
	movie := createTestMovie(t, store)

	path := "Fight Club (1999)/Fight.Club.1999.1080p.BluRay.mkv"
	require.NoError(t, store.AddFile(ctx, &File{
		ItemID: movie.ID, RelativePath: path, SizeBytes: 100,
		Quality: qm(t, quality.FamilyMovie, quality.MovieBluray1080p, quality.DefaultRevision),
	}))

	err := store.AddFile(ctx, &File{
		ItemID: movie.ID, RelativePath: path, SizeBytes: 200,
		Quality: qm(t, quality.FamilyMovie, quality.MovieWEBDL720p, quality.DefaultRevision),
	})
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestStore_AddFile_SamePathInOtherItem(t *testing.T) {
	store := NewStore(setupTestDB(t))
	ctx := context.Background()
	movie := createTestMovie(t, store)
	other := &Item{Family: quality.FamilyMovie, Title: "Se7en", Year: 1995}
	require.NoError(t, store.AddItem(ctx, other))

	path := "Movie.1080p.BluRay.mkv"
	require.NoError(t, store.AddFile(ctx, &File{
		ItemID: movie.ID, RelativePath: path, SizeBytes: 100,
		Quality: qm(t, quality.FamilyMovie, quality.MovieBluray1080p, quality.DefaultRevision),
	}))
	require.NoError(t, store.AddFile(ctx, &File{
		ItemID: other.ID, RelativePath: path, SizeBytes: 200,
		Quality: qm(t, quality.FamilyMovie, quality.MovieBluray1080p, quality.DefaultRevision),
	}))

	files, total, err := store.ListFiles(ctx, FileFilter{RelativePath: &path})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, files, 2)
}

func TestStore_PutFile(t *testing.T) {
	store := NewStore(setupTestDB(t))
	ctx := context.Background()
	movie := createTestMovie(t, store)

	first := &File{
		ItemID: movie.ID, RelativePath: "movie.mkv", SizeBytes: 100,
		Quality: qm(t, quality.FamilyMovie, quality.MovieWEBDL1080p, quality.DefaultRevision),
	}
	require.NoError(t, store.PutFile(ctx, first))
	require.NotZero(t, first.ID)

	second := &File{
		ItemID: movie.ID, RelativePath: "movie.mkv", SizeBytes: 300,
		Quality: qm(t, quality.FamilyMovie, quality.MovieBluray1080p, quality.Revision{Version: 2}),
	}
	require.NoError(t, store.PutFile(ctx, second))
	assert.Equal(t, first.ID, second.ID, "replacing keeps the row")

	files, total, err := store.ListFiles(ctx, FileFilter{ItemID: &movie.ID})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	assert.Equal(t, int64(300), files[0].SizeBytes)
	assert.Equal(t, quality.MovieBluray1080p, files[0].Quality.Quality.Name)
	assert.Equal(t, 2, files[0].Quality.Revision.Version)

	err = store.PutFile(ctx, &File{
		ItemID: 9999, RelativePath: "movie.mkv", SizeBytes: 1,
		Quality: qm(t, quality.FamilyMovie, quality.MovieDVD, quality.DefaultRevision),
	})
	assert.ErrorIs(t, err, ErrConstraint)
}

func TestStore_AddFile_MissingItem(t *testing.T) {
	store := NewStore(setupTestDB(t))

	err := store.AddFile(context.Background(), &File{
		ItemID: 9999, RelativePath: "orphan.mkv", SizeBytes: 1,
		Quality: qm(t, quality.FamilyMovie, quality.MovieDVD, quality.DefaultRevision),
	})
	assert.ErrorIs(t, err, ErrConstraint)
}

func TestStore_AddFile_NormalizesSeparators(t *testing.T) {
	store := NewStore(setupTestDB(t))
	ctx := context.Background()
	movie := createTestMovie(t, store)

	f := &File{
		ItemID: movie.ID, RelativePath: "Fight Club (1999)/movie.mkv", SizeBytes: 1,
		Quality: qm(t, quality.FamilyMovie, quality.MovieDVD, quality.DefaultRevision),
	}
	require.NoError(t, store.AddFile(ctx, f))

	got, err := store.GetFileByPath(ctx, movie.ID, "Fight Club (1999)/movie.mkv")
	require.NoError(t, err)
	assert.Equal(t, f.ID, got.ID)

	_, err = store.GetFileByPath(ctx, movie.ID, "elsewhere.mkv")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.GetFileByPath(ctx, movie.ID+1, "Fight Club (1999)/movie.mkv")
	assert.ErrorIs(t, err, ErrNotFound, "paths are scoped to their item")
}

func TestStore_ListFiles(t *testing.T) {
	store := NewStore(setupTestDB(t))
	ctx := context.Background()
	movie := createTestMovie(t, store)
	album := &Item{Family: quality.FamilyMusic, Title: "Kid A", Year: 2000}
	require.NoError(t, store.AddItem(ctx, album))

	files := []*File{
		{ItemID: movie.ID, RelativePath: "a.mkv", SizeBytes: 1, Quality: qm(t, quality.FamilyMovie, quality.MovieDVD, quality.DefaultRevision)},
		{ItemID: movie.ID, RelativePath: "b.mkv", SizeBytes: 2, Quality: qm(t, quality.FamilyMovie, quality.MovieBluray1080p, quality.DefaultRevision)},
		{ItemID: album.ID, RelativePath: "01.flac", SizeBytes: 3, Quality: qm(t, quality.FamilyMusic, quality.MusicFLAC, quality.DefaultRevision)},
	}
	for _, f := range files {
		require.NoError(t, store.AddFile(ctx, f))
	}

	got, total, err := store.ListFiles(ctx, FileFilter{ItemID: &movie.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, got, 2)
	assert.Equal(t, "a.mkv", got[0].RelativePath)

	flac, _, err := store.ListFiles(ctx, FileFilter{Quality: ptr(quality.MusicFLAC)})
	require.NoError(t, err)
	require.Len(t, flac, 1)
	assert.Equal(t, quality.FamilyMusic, flac[0].Quality.Quality.Family)

	page, total, err := store.ListFiles(ctx, FileFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, page, 1)
}

func TestStore_DeleteFile(t *testing.T) {
	store := NewStore(setupTestDB(t))
	ctx := context.Background()
	movie := createTestMovie(t, store)

	f := &File{ItemID: movie.ID, RelativePath: "a.mkv", SizeBytes: 1,
		Quality: qm(t, quality.FamilyMovie, quality.MovieDVD, quality.DefaultRevision)}
	require.NoError(t, store.AddFile(ctx, f))

	require.NoError(t, store.DeleteFile(ctx, f.ID))
	require.NoError(t, store.DeleteFile(ctx, f.ID), "DeleteFile should be idempotent")

	_, err := store.GetFile(ctx, f.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
