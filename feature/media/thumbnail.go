package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"clip-catalog/core/storage"

	"github.com/minio/minio-go/v7"
)

// Thumbnailer generates a thumbnail frame with ffmpeg and stores it in the
// thumbnail bucket.
type Thumbnailer struct {
	binary string
	client storage.Client
	bucket string
	prefix string
}

// NewThumbnailer creates a thumbnailer using the given ffmpeg binary.
// An empty binary defaults to "ffmpeg" on PATH.
func NewThumbnailer(binary string, client storage.Client, bucket, prefix string) *Thumbnailer {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	if prefix == "" {
		prefix = "thumbs"
	}
	return &Thumbnailer{binary: binary, client: client, bucket: bucket, prefix: prefix}
}

// Generate extracts a frame from the video at path and uploads it as the
// thumbnail object for the given clip id. It returns the stored object key.
func (t *Thumbnailer) Generate(ctx context.Context, clipID uint, path string) (string, error) {
	tmp, err := os.CreateTemp("", "clip-thumb-*.jpg")
	if err != nil {
		return "", fmt.Errorf("thumbnail temp file: %w", err)
	}
	tmpPath := tmp.Name()
	_ = tmp.Close()
	defer os.Remove(tmpPath)

	// Grab a frame a few seconds in; fall back to the first frame for
	// clips shorter than the seek offset.
	if err := t.extractFrame(ctx, path, tmpPath, "3"); err != nil {
		if err := t.extractFrame(ctx, path, tmpPath, "0"); err != nil {
			return "", err
		}
	}

	file, err := os.Open(tmpPath)
	if err != nil {
		return "", fmt.Errorf("thumbnail open: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("thumbnail stat: %w", err)
	}

	key := t.ObjectKey(clipID)
	_, err = t.client.PutObject(ctx, t.bucket, key, file, info.Size(), minio.PutObjectOptions{
		ContentType: "image/jpeg",
	})
	if err != nil {
		return "", fmt.Errorf("thumbnail upload %s: %w", key, err)
	}

	return key, nil
}

// Remove deletes a stored thumbnail object.
func (t *Thumbnailer) Remove(ctx context.Context, objectKey string) error {
	if objectKey == "" {
		return nil
	}
	if err := t.client.RemoveObject(ctx, t.bucket, objectKey, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("thumbnail remove %s: %w", objectKey, err)
	}
	return nil
}

// ObjectKey returns the bucket key for a clip's thumbnail.
func (t *Thumbnailer) ObjectKey(clipID uint) string {
	return fmt.Sprintf("%s/%d.jpg", t.prefix, clipID)
}

func (t *Thumbnailer) extractFrame(ctx context.Context, source, dest, seekSeconds string) error {
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-ss", seekSeconds,
		"-i", source,
		"-frames:v", "1",
		"-vf", "scale=320:-1",
		dest,
	}
	cmd := commandContext(ctx, t.binary, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg thumbnail %s: %w: %s", filepath.Base(source), err, strings.TrimSpace(string(output)))
	}
	return nil
}
