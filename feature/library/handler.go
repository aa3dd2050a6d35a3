package library

import (
	"errors"

	"clip-catalog/core/logger"
	"clip-catalog/feature/library/scan"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for library reconciliation.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the library routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/library")
	group.Post("/preview", h.HandlePreview)
	group.Post("/sync", h.HandleSync)
	group.Post("/sync/full", h.HandleSyncFull)
}

type previewRequest struct {
	RootFolderPath string `json:"root_folder_path"`
}

type syncRequest struct {
	RootFolderPath  string   `json:"root_folder_path"`
	FilesToAdd      []string `json:"files_to_add"`
	ClipIDsToRemove []uint   `json:"clip_ids_to_remove"`
}

// HandlePreview scans the root folder and returns the classified diff
// without mutating the catalog.
// @Summary Preview Reconciliation
// @Description Scan the media root and classify every path as new, missing, matched or error.
// @Tags library
// @Accept json
// @Produce json
// @Param request body previewRequest true "Preview request; empty root uses the configured default"
// @Success 200 {object} PreviewResponse "Diff"
// @Failure 404 {object} map[string]string "Root Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /library/preview [post]
func (h *Handler) HandlePreview(c *fiber.Ctx) error {
	var req previewRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	resp, err := h.service.Preview(c.Context(), req.RootFolderPath)
	if err != nil {
		return h.renderError(c, err)
	}
	return c.JSON(resp)
}

// HandleSync applies a caller-selected subset of a prior preview.
// @Summary Apply Selective Sync
// @Description Add the selected files to the catalog and remove the selected clips. Individual failures never abort the batch.
// @Tags library
// @Accept json
// @Produce json
// @Param request body syncRequest true "Selection from a prior preview"
// @Success 200 {object} SyncResponse "Aggregate outcome"
// @Failure 404 {object} map[string]string "Root Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /library/sync [post]
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	var req syncRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	resp, err := h.service.ApplySelection(c.Context(), req.RootFolderPath, req.FilesToAdd, req.ClipIDsToRemove)
	if err != nil {
		return h.renderError(c, err)
	}
	return c.JSON(resp)
}

// HandleSyncFull applies the entire diff: every new file is added, every
// missing entry removed.
// @Summary Apply Full Sync
// @Description Quick sync: scan, diff, and apply the whole New/Missing set without a selection.
// @Tags library
// @Accept json
// @Produce json
// @Param request body previewRequest true "Sync request; empty root uses the configured default"
// @Success 200 {object} SyncResponse "Aggregate outcome"
// @Failure 404 {object} map[string]string "Root Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /library/sync/full [post]
func (h *Handler) HandleSyncFull(c *fiber.Ctx) error {
	var req previewRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	resp, err := h.service.ApplyAll(c.Context(), req.RootFolderPath)
	if err != nil {
		return h.renderError(c, err)
	}
	return c.JSON(resp)
}

func (h *Handler) renderError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, scan.ErrRootNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrNoRoot):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		logger.WithRayID(h.logger, c).Error("Library request failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
