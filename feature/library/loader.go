package library

import (
	"clip-catalog/core/storage"
	"clip-catalog/feature/clips"
	"clip-catalog/feature/library/scan"
	librarysync "clip-catalog/feature/library/sync"
	"clip-catalog/feature/media"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature wires the library reconciliation feature: scanner, catalog
// snapshot, ffprobe/ffmpeg collaborators and the sync executor.
func NewFeature(store *clips.Store, client storage.Client, bucket string, logger *zap.Logger, cfg Config) *Feature {
	prober := media.NewFFProbe(cfg.FFprobeBinary)
	thumbs := media.NewThumbnailer(cfg.FFmpegBinary, client, bucket, cfg.ThumbnailPrefix)
	executor := librarysync.NewExecutor(store, prober, thumbs, logger)

	svc := NewService(scan.NewScanner(), store, executor, cfg.RootFolder, logger)
	h := NewHandler(svc, logger)
	return &Feature{service: svc, handler: h}
}

// Service returns the library service, used by the CLI sync command.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "library"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
