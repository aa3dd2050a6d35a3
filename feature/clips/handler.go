package clips

import (
	"errors"
	"strconv"

	"clip-catalog/core/logger"
	"clip-catalog/feature/clips/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the clip catalog.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the clip catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/clips")
	group.Get("/", h.HandleListClips)
	group.Post("/", h.HandleCreateClip)
	group.Get("/:id", h.HandleGetClip)
	group.Put("/:id", h.HandleUpdateClip)
	group.Delete("/:id", h.HandleDeleteClip)
	group.Get("/:id/thumbnail", h.HandleGetThumbnail)
}

type clipRequest struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	StorageType     string   `json:"storage_type"`
	Location        string   `json:"location"`
	DurationSeconds float64  `json:"duration_seconds"`
	Tags            []string `json:"tags"`
}

// HandleListClips returns all clips.
// @Summary List Clips
// @Description List every cataloged clip with its tags.
// @Tags clips
// @Produce json
// @Success 200 {array} models.Clip "Clips"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /clips [get]
func (h *Handler) HandleListClips(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	clips, err := h.service.ListClips(c.Context())
	if err != nil {
		l.Error("Failed to list clips", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(clips)
}

// HandleGetClip returns a single clip.
// @Summary Get Clip
// @Tags clips
// @Produce json
// @Param id path int true "Clip ID"
// @Success 200 {object} models.Clip "Clip"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /clips/{id} [get]
func (h *Handler) HandleGetClip(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid clip id"})
	}

	clip, err := h.service.GetClip(c.Context(), id)
	if err != nil {
		return h.renderError(c, err)
	}
	return c.JSON(clip)
}

// HandleCreateClip catalogs a new clip.
// @Summary Create Clip
// @Tags clips
// @Accept json
// @Produce json
// @Param clip body clipRequest true "Clip"
// @Success 201 {object} models.Clip "Created"
// @Failure 409 {object} map[string]string "Duplicate Location"
// @Router /clips [post]
func (h *Handler) HandleCreateClip(c *fiber.Ctx) error {
	var req clipRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Title == "" || req.Location == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title and location are required"})
	}

	storageType := req.StorageType
	if storageType == "" {
		storageType = models.StorageTypeLocal
	}
	if storageType != models.StorageTypeLocal && storageType != models.StorageTypeYouTube {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unsupported storage type"})
	}

	clip := &models.Clip{
		Title:           req.Title,
		Description:     req.Description,
		StorageType:     storageType,
		Location:        req.Location,
		DurationSeconds: req.DurationSeconds,
	}
	if err := h.service.CreateClip(c.Context(), clip, req.Tags); err != nil {
		return h.renderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(clip)
}

// HandleUpdateClip updates a clip's metadata and tags.
// @Summary Update Clip
// @Tags clips
// @Accept json
// @Produce json
// @Param id path int true "Clip ID"
// @Param clip body clipRequest true "Clip"
// @Success 200 {object} models.Clip "Updated"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /clips/{id} [put]
func (h *Handler) HandleUpdateClip(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid clip id"})
	}

	var req clipRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title is required"})
	}

	clip, err := h.service.UpdateClip(c.Context(), id, req.Title, req.Description, req.Tags)
	if err != nil {
		return h.renderError(c, err)
	}
	return c.JSON(clip)
}

// HandleDeleteClip removes a clip from the catalog.
// @Summary Delete Clip
// @Tags clips
// @Param id path int true "Clip ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /clips/{id} [delete]
func (h *Handler) HandleDeleteClip(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid clip id"})
	}

	if err := h.service.DeleteClip(c.Context(), id); err != nil {
		return h.renderError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleGetThumbnail streams a clip's thumbnail image.
// @Summary Get Clip Thumbnail
// @Tags clips
// @Produce jpeg
// @Param id path int true "Clip ID"
// @Success 200 {file} binary "Thumbnail"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /clips/{id}/thumbnail [get]
func (h *Handler) HandleGetThumbnail(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid clip id"})
	}

	reader, err := h.service.GetThumbnail(c.Context(), id)
	if err != nil {
		return h.renderError(c, err)
	}

	c.Set(fiber.HeaderContentType, "image/jpeg")
	return c.SendStream(reader)
}

func (h *Handler) renderError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrClipNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrDuplicateLocation):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		logger.WithRayID(h.logger, c).Error("Clip request failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
