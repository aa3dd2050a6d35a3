package clips

import (
	"context"
	"fmt"
	"io"

	"clip-catalog/core/storage"
	"clip-catalog/feature/clips/models"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Service handles clip catalog operations.
type Service struct {
	store  *Store
	client storage.Client
	bucket string
	logger *zap.Logger
}

// NewService creates a new clips service.
func NewService(store *Store, client storage.Client, bucket string, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		client: client,
		bucket: bucket,
		logger: logger,
	}
}

// Store exposes the underlying store for collaborating features.
func (s *Service) Store() *Store {
	return s.store
}

// ListClips returns all cataloged clips.
func (s *Service) ListClips(ctx context.Context) ([]models.Clip, error) {
	return s.store.List(ctx)
}

// GetClip returns a single clip by id.
func (s *Service) GetClip(ctx context.Context, id uint) (*models.Clip, error) {
	return s.store.Get(ctx, id)
}

// CreateClip catalogs a new clip with the given tags.
func (s *Service) CreateClip(ctx context.Context, clip *models.Clip, tags []string) error {
	return s.store.Create(ctx, clip, tags)
}

// UpdateClip updates a clip's metadata and tags.
func (s *Service) UpdateClip(ctx context.Context, id uint, title, description string, tags []string) (*models.Clip, error) {
	return s.store.Update(ctx, id, title, description, tags)
}

// DeleteClip removes a clip and its stored thumbnail, if any.
// Thumbnail removal is best-effort: the catalog record is authoritative.
func (s *Service) DeleteClip(ctx context.Context, id uint) error {
	clip, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}

	if clip.ThumbnailKey != "" {
		if err := s.client.RemoveObject(ctx, s.bucket, clip.ThumbnailKey, minio.RemoveObjectOptions{}); err != nil {
			s.logger.Warn("Failed to remove thumbnail object",
				zap.Uint("clip_id", id),
				zap.String("object", clip.ThumbnailKey),
				zap.Error(err),
			)
		}
	}
	return nil
}

// GetThumbnail streams a clip's thumbnail from object storage.
func (s *Service) GetThumbnail(ctx context.Context, id uint) (io.ReadCloser, error) {
	clip, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if clip.ThumbnailKey == "" {
		return nil, ErrClipNotFound
	}

	// The catalog may reference a thumbnail that was never uploaded or was
	// removed out of band; a missing object is a not-found, not a broken
	// stream.
	if _, err := s.client.StatObject(ctx, s.bucket, clip.ThumbnailKey, minio.StatObjectOptions{}); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrClipNotFound
		}
		return nil, fmt.Errorf("failed to stat thumbnail for clip %d: %w", id, err)
	}

	reader, err := s.client.GetObject(ctx, s.bucket, clip.ThumbnailKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get thumbnail for clip %d: %w", id, err)
	}
	return reader, nil
}
