package media

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCommand swaps commandContext for a subprocess that prints the given
// output, restoring the real one when the test ends.
func fakeCommand(t *testing.T, output string) {
	t.Helper()

	file := filepath.Join(t.TempDir(), "ffprobe-output.json")
	require.NoError(t, os.WriteFile(file, []byte(output), 0o644))

	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "cat", file)
	}
	t.Cleanup(func() { commandContext = original })
}

func failCommand(t *testing.T) {
	t.Helper()

	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "false")
	}
	t.Cleanup(func() { commandContext = original })
}

func TestProbe_ParsesFormat(t *testing.T) {
	fakeCommand(t, `{"format": {"duration": "93.5", "tags": {"title": "Launch Day"}}}`)

	result, err := NewFFProbe("").Probe(context.Background(), "/media/launch.mp4")
	require.NoError(t, err)
	assert.Equal(t, "Launch Day", result.Title)
	assert.Equal(t, 93.5, result.DurationSeconds)
}

func TestProbe_UntaggedFallsBackToFileName(t *testing.T) {
	fakeCommand(t, `{"format": {"duration": "10.0"}}`)

	result, err := NewFFProbe("").Probe(context.Background(), "/media/episode one.mp4")
	require.NoError(t, err)
	assert.Equal(t, "episode one", result.Title)
	assert.Equal(t, 10.0, result.DurationSeconds)
}

func TestProbe_MissingDurationIsZero(t *testing.T) {
	fakeCommand(t, `{"format": {"tags": {"title": "No Duration"}}}`)

	result, err := NewFFProbe("").Probe(context.Background(), "/media/clip.mp4")
	require.NoError(t, err)
	assert.Equal(t, "No Duration", result.Title)
	assert.Equal(t, 0.0, result.DurationSeconds)
}

func TestProbe_CommandFailure(t *testing.T) {
	failCommand(t)

	_, err := NewFFProbe("").Probe(context.Background(), "/media/clip.mp4")
	assert.Error(t, err)
}

func TestProbe_InvalidJSON(t *testing.T) {
	fakeCommand(t, "this is not json")

	_, err := NewFFProbe("").Probe(context.Background(), "/media/clip.mp4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestProbe_EmptyPath(t *testing.T) {
	_, err := NewFFProbe("").Probe(context.Background(), "   ")
	assert.Error(t, err)
}

func TestTitleFromPath(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"/media/videos/clip.mp4", "clip"},
		{"/media/Season 1/episode one.webm", "episode one"},
		{"archive.tar.mp4", "archive.tar"},
		{"noext", "noext"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, TitleFromPath(tc.in), tc.in)
	}
}
