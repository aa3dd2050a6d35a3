package clips

import (
	"context"
	"testing"

	"clip-catalog/core/database"
	"clip-catalog/feature/clips/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) *Store {
	t.Helper()

	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	store := NewStore(db)
	require.NoError(t, store.Migrate())
	return store
}

func TestStore_CreateAndGet(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	clip := &models.Clip{
		Title:           "Launch Highlights",
		Description:     "cut from the stream",
		StorageType:     models.StorageTypeLocal,
		Location:        "/media/launch.mp4",
		DurationSeconds: 95.5,
	}
	require.NoError(t, store.Create(ctx, clip, []string{"space", "highlights"}))
	require.NotZero(t, clip.ID)

	got, err := store.Get(ctx, clip.ID)
	require.NoError(t, err)
	assert.Equal(t, "Launch Highlights", got.Title)
	assert.Equal(t, 95.5, got.DurationSeconds)
	assert.ElementsMatch(t, []string{"space", "highlights"}, got.TagNames())
}

func TestStore_Create_DuplicateLocation(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	first := &models.Clip{Title: "A", StorageType: models.StorageTypeLocal, Location: "/media/a.mp4"}
	require.NoError(t, store.Create(ctx, first, nil))

	second := &models.Clip{Title: "B", StorageType: models.StorageTypeLocal, Location: "/media/a.mp4"}
	err := store.Create(ctx, second, nil)
	assert.ErrorIs(t, err, ErrDuplicateLocation)
}

func TestStore_Get_NotFound(t *testing.T) {
	store := setupStore(t)

	_, err := store.Get(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrClipNotFound)
}

func TestStore_Update(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	clip := &models.Clip{Title: "Old", StorageType: models.StorageTypeLocal, Location: "/media/a.mp4"}
	require.NoError(t, store.Create(ctx, clip, []string{"old-tag"}))

	updated, err := store.Update(ctx, clip.ID, "New", "fresh description", []string{"new-tag"})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, "fresh description", updated.Description)
	assert.Equal(t, []string{"new-tag"}, updated.TagNames())

	// Tags are replaced, not appended.
	got, err := store.Get(ctx, clip.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"new-tag"}, got.TagNames())
}

func TestStore_Update_NotFound(t *testing.T) {
	store := setupStore(t)

	_, err := store.Update(context.Background(), 42, "title", "", nil)
	assert.ErrorIs(t, err, ErrClipNotFound)
}

func TestStore_Delete(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	clip := &models.Clip{
		Title:        "Doomed",
		StorageType:  models.StorageTypeLocal,
		Location:     "/media/doomed.mp4",
		ThumbnailKey: "thumbnails/1.jpg",
	}
	require.NoError(t, store.Create(ctx, clip, []string{"tagged"}))

	deleted, err := store.Delete(ctx, clip.ID)
	require.NoError(t, err)
	assert.Equal(t, "thumbnails/1.jpg", deleted.ThumbnailKey)

	_, err = store.Get(ctx, clip.ID)
	assert.ErrorIs(t, err, ErrClipNotFound)
}

func TestStore_Delete_NotFound(t *testing.T) {
	store := setupStore(t)

	_, err := store.Delete(context.Background(), 42)
	assert.ErrorIs(t, err, ErrClipNotFound)
}

func TestStore_ListLocalEntries(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	local := &models.Clip{Title: "Local", StorageType: models.StorageTypeLocal, Location: "/media/local.mp4"}
	require.NoError(t, store.Create(ctx, local, []string{"demo"}))

	external := &models.Clip{Title: "External", StorageType: models.StorageTypeYouTube, Location: "dQw4w9WgXcQ"}
	require.NoError(t, store.Create(ctx, external, nil))

	entries, err := store.ListLocalEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, local.ID, entries[0].ID)
	assert.Equal(t, "/media/local.mp4", entries[0].Location)
	assert.Equal(t, "Local", entries[0].Title)
	assert.Equal(t, []string{"demo"}, entries[0].Tags)
}

func TestStore_CreateEntry(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	clip, err := store.CreateEntry(ctx, "/media/new.mp4", "New Clip", 30)
	require.NoError(t, err)
	assert.NotZero(t, clip.ID)
	assert.Equal(t, models.StorageTypeLocal, clip.StorageType)
	assert.Equal(t, 30.0, clip.DurationSeconds)

	_, err = store.CreateEntry(ctx, "/media/new.mp4", "Racing Writer", 30)
	assert.ErrorIs(t, err, ErrDuplicateLocation)
}

func TestStore_SetThumbnailKey(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	clip, err := store.CreateEntry(ctx, "/media/a.mp4", "A", 1)
	require.NoError(t, err)

	require.NoError(t, store.SetThumbnailKey(ctx, clip.ID, "thumbnails/a.jpg"))

	got, err := store.Get(ctx, clip.ID)
	require.NoError(t, err)
	assert.Equal(t, "thumbnails/a.jpg", got.ThumbnailKey)

	assert.ErrorIs(t, store.SetThumbnailKey(ctx, 9999, "thumbnails/x.jpg"), ErrClipNotFound)
}
