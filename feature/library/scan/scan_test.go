package scan

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"lowercases", "/Media/Videos/Clip.MP4", "/media/videos/clip.mp4", false},
		{"trims whitespace", "  /media/videos/clip.mp4  ", "/media/videos/clip.mp4", false},
		{"cleans redundant segments", "/media//videos/../videos/clip.mp4", "/media/videos/clip.mp4", false},
		{"strips trailing slash", "/media/videos/", "/media/videos", false},
		{"root stays root", "/", "/", false},
		{"relative path", "videos/clip.mp4", "videos/clip.mp4", false},
		{"empty", "", "", true},
		{"whitespace only", "   ", "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Normalize(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	once, err := Normalize("/Media/Videos/Clip.MP4")
	require.NoError(t, err)
	twice, err := Normalize(once)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestIsVideoFile(t *testing.T) {
	assert.True(t, IsVideoFile("/media/clip.mp4"))
	assert.True(t, IsVideoFile("/media/CLIP.MP4")) // extension match is case-insensitive
	assert.True(t, IsVideoFile("clip.webm"))
	assert.True(t, IsVideoFile("clip.ogg"))
	assert.True(t, IsVideoFile("clip.mov"))
	assert.True(t, IsVideoFile("clip.avi"))

	assert.False(t, IsVideoFile("clip.mkv"))
	assert.False(t, IsVideoFile("notes.txt"))
	assert.False(t, IsVideoFile("clip"))
	assert.False(t, IsVideoFile("clip.mp4.part"))
}

func TestScan_RootNotFound(t *testing.T) {
	scanner := NewScanner()

	_, err := scanner.Scan(context.Background(), filepath.Join(t.TempDir(), "does-not-exist"))
	assert.ErrorIs(t, err, ErrRootNotFound)
}

func TestScan_RootIsFile(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "clip.mp4")
	require.NoError(t, os.WriteFile(file, []byte("data"), 0o644))

	scanner := NewScanner()
	_, err := scanner.Scan(context.Background(), file)
	assert.ErrorIs(t, err, ErrRootNotFound)
}

func TestScan_FindsNestedVideos(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "Season 1")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(root, "Intro.MP4"), []byte("aaaa"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "episode.webm"), []byte("bb"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "notes.txt"), []byte("skip me"), 0o644))

	scanner := NewScanner()
	result, err := scanner.Scan(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, result.Files, 2)
	assert.Empty(t, result.Warnings)

	byPath := make(map[string]File, len(result.Files))
	for _, f := range result.Files {
		byPath[f.Path] = f
	}

	introKey, err := Normalize(filepath.Join(root, "Intro.MP4"))
	require.NoError(t, err)
	intro, ok := byPath[introKey]
	require.True(t, ok, "scanned paths must be canonical keys")
	assert.Equal(t, uint64(4), intro.SizeBytes)
	assert.False(t, intro.ModifiedAt.IsZero())

	wantDir, err := Normalize(root)
	require.NoError(t, err)
	assert.Equal(t, wantDir, intro.Directory)

	episodeKey, err := Normalize(filepath.Join(sub, "episode.webm"))
	require.NoError(t, err)
	assert.Contains(t, byPath, episodeKey)
}

func TestScan_UnreadableSubdirectoryIsWarning(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "readable.mp4"), []byte("x"), 0o644))

	locked := filepath.Join(root, "locked")
	require.NoError(t, os.MkdirAll(locked, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(locked, "hidden.mp4"), []byte("x"), 0o644))
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	scanner := NewScanner()
	result, err := scanner.Scan(context.Background(), root)
	require.NoError(t, err, "a permission-denied subdirectory must not abort the scan")

	require.Len(t, result.Files, 1)
	readableKey, err := Normalize(filepath.Join(root, "readable.mp4"))
	require.NoError(t, err)
	assert.Equal(t, readableKey, result.Files[0].Path)

	require.NotEmpty(t, result.Warnings)
	assert.Contains(t, result.Warnings[0], "locked")
}

func TestScan_EmptyRoot(t *testing.T) {
	scanner := NewScanner()
	result, err := scanner.Scan(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.Empty(t, result.Warnings)
}

func TestScan_Cancelled(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "clip.mp4"), []byte("x"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	scanner := NewScanner()
	_, err := scanner.Scan(ctx, root)
	assert.ErrorIs(t, err, context.Canceled)
}
