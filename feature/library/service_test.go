package library

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"clip-catalog/core/database"
	"clip-catalog/feature/clips"
	"clip-catalog/feature/library/scan"
	librarysync "clip-catalog/feature/library/sync"
	"clip-catalog/feature/media"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// testProber resolves titles from the file name without shelling out.
type testProber struct {
	err error
}

func (p *testProber) Probe(ctx context.Context, path string) (media.ProbeResult, error) {
	if p.err != nil {
		return media.ProbeResult{}, p.err
	}
	return media.ProbeResult{Title: media.TitleFromPath(path), DurationSeconds: 12.5}, nil
}

// testThumbnailer fakes thumbnail storage.
type testThumbnailer struct{}

func (testThumbnailer) Generate(ctx context.Context, clipID uint, path string) (string, error) {
	return fmt.Sprintf("thumbnails/%d.jpg", clipID), nil
}

func (testThumbnailer) Remove(ctx context.Context, objectKey string) error {
	return nil
}

func newTestService(t *testing.T, defaultRoot string) (*Service, *clips.Store) {
	t.Helper()

	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	store := clips.NewStore(db)
	require.NoError(t, store.Migrate())

	executor := librarysync.NewExecutor(store, &testProber{}, testThumbnailer{}, zap.NewNop())
	svc := NewService(scan.NewScanner(), store, executor, defaultRoot, zap.NewNop())
	return svc, store
}

// writeVideo creates a video file under dir and returns its canonical key.
func writeVideo(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("video-bytes"), 0o644))
	key, err := scan.Normalize(path)
	require.NoError(t, err)
	return key
}

func TestPreview(t *testing.T) {
	root := t.TempDir()
	svc, store := newTestService(t, root)
	ctx := context.Background()

	matchedKey := writeVideo(t, root, "matched.mp4")
	writeVideo(t, root, "fresh.mp4")

	_, err := store.CreateEntry(ctx, matchedKey, "Matched", 10)
	require.NoError(t, err)
	_, err = store.CreateEntry(ctx, "/media/gone.mp4", "Gone", 10)
	require.NoError(t, err)

	preview, err := svc.Preview(ctx, root)
	require.NoError(t, err)

	assert.Equal(t, 2, preview.TotalScanned)
	assert.Equal(t, 1, preview.NewFilesCount)
	assert.Equal(t, 1, preview.MatchedFilesCount)
	assert.Equal(t, 1, preview.MissingFilesCount)
	assert.Equal(t, 0, preview.ErrorCount)
	assert.Equal(t, root, preview.RootFolderPath)
	require.Len(t, preview.Items, 3)

	// Preview never mutates the catalog.
	entries, err := store.ListLocalEntries(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestPreview_RootNotFound(t *testing.T) {
	svc, _ := newTestService(t, "")

	_, err := svc.Preview(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, scan.ErrRootNotFound)
}

func TestPreview_NoRootConfigured(t *testing.T) {
	svc, _ := newTestService(t, "")

	_, err := svc.Preview(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrNoRoot)
}

func TestApplySelection(t *testing.T) {
	root := t.TempDir()
	svc, store := newTestService(t, root)
	ctx := context.Background()

	selectedKey := writeVideo(t, root, "selected.mp4")
	writeVideo(t, root, "skipped.mp4")
	gone, err := store.CreateEntry(ctx, "/media/gone.mp4", "Gone", 10)
	require.NoError(t, err)

	resp, err := svc.ApplySelection(ctx, root, []string{selectedKey}, []uint{gone.ID})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.TotalScanned)
	assert.Equal(t, 1, resp.TotalAdded)
	assert.Equal(t, 1, resp.TotalRemoved)
	assert.Empty(t, resp.Errors)
	require.Len(t, resp.AddedClips, 1)
	assert.Equal(t, selectedKey, resp.AddedClips[0].FilePath)
	assert.Equal(t, "selected", resp.AddedClips[0].Title)

	// The unselected file stays uncataloged.
	preview, err := svc.Preview(ctx, root)
	require.NoError(t, err)
	assert.Equal(t, 1, preview.NewFilesCount)
	require.Len(t, preview.Items, 2)
}

func TestApplySelection_FileNotUnderRoot(t *testing.T) {
	root := t.TempDir()
	svc, store := newTestService(t, root)
	ctx := context.Background()

	resp, err := svc.ApplySelection(ctx, root, []string{"/elsewhere/rogue.mp4"}, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, resp.TotalAdded)
	require.Len(t, resp.Errors, 1)
	assert.Contains(t, resp.Errors[0].ErrorMessage, "not found under the scanned root")

	entries, err := store.ListLocalEntries(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestApplySelection_IsIdempotent(t *testing.T) {
	root := t.TempDir()
	svc, _ := newTestService(t, root)
	ctx := context.Background()

	key := writeVideo(t, root, "clip.mp4")

	first, err := svc.ApplySelection(ctx, root, []string{key}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, first.TotalAdded)

	// Re-applying the same stale selection fails per item, never duplicates.
	second, err := svc.ApplySelection(ctx, root, []string{key}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, second.TotalAdded)
	require.Len(t, second.Errors, 1)
	assert.Contains(t, second.Errors[0].ErrorMessage, "already cataloged")
}

func TestApplyAll(t *testing.T) {
	root := t.TempDir()
	svc, store := newTestService(t, root)
	ctx := context.Background()

	writeVideo(t, root, "one.mp4")
	writeVideo(t, root, "two.webm")
	_, err := store.CreateEntry(ctx, "/media/gone.mp4", "Gone", 10)
	require.NoError(t, err)

	resp, err := svc.ApplyAll(ctx, root)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.TotalAdded)
	assert.Equal(t, 1, resp.TotalRemoved)
	assert.Empty(t, resp.Errors)

	// A second full sync finds nothing to do.
	again, err := svc.ApplyAll(ctx, root)
	require.NoError(t, err)
	assert.Equal(t, 0, again.TotalAdded)
	assert.Equal(t, 0, again.TotalRemoved)
	assert.Empty(t, again.Errors)
	assert.Equal(t, 2, again.TotalScanned)
}

func TestApplyAll_UsesDefaultRoot(t *testing.T) {
	root := t.TempDir()
	svc, _ := newTestService(t, root)

	writeVideo(t, root, "clip.mp4")

	resp, err := svc.ApplyAll(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 1, resp.TotalAdded)
	assert.Equal(t, root, resp.RootFolderPath)
}
