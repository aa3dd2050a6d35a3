package clips

import (
	"context"
	"errors"
	"fmt"

	"clip-catalog/feature/clips/models"

	"gorm.io/gorm"
)

// Typed store errors. Callers match these with errors.Is instead of
// inspecting driver-level constraint failures.
var (
	// ErrDuplicateLocation is returned when a clip with the same location
	// already exists in the catalog.
	ErrDuplicateLocation = errors.New("a clip with this location already exists")
	// ErrClipNotFound is returned when the requested clip does not exist.
	ErrClipNotFound = errors.New("clip not found")
)

// Store provides access to clip and tag records.
type Store struct {
	db *gorm.DB
}

// NewStore creates a new clip store.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the clip and tag tables.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&models.Clip{}, &models.Tag{})
}

// List returns all clips with their tags.
func (s *Store) List(ctx context.Context) ([]models.Clip, error) {
	var clips []models.Clip
	if err := s.db.WithContext(ctx).Preload("Tags").Order("id").Find(&clips).Error; err != nil {
		return nil, fmt.Errorf("failed to list clips: %w", err)
	}
	return clips, nil
}

// Get returns a single clip by id.
func (s *Store) Get(ctx context.Context, id uint) (*models.Clip, error) {
	var clip models.Clip
	err := s.db.WithContext(ctx).Preload("Tags").First(&clip, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrClipNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get clip %d: %w", id, err)
	}
	return &clip, nil
}

// Create inserts a new clip, resolving tag names to tag records.
// Returns ErrDuplicateLocation if the location is already cataloged.
func (s *Store) Create(ctx context.Context, clip *models.Clip, tagNames []string) error {
	tags, err := s.resolveTags(ctx, tagNames)
	if err != nil {
		return err
	}
	clip.Tags = tags

	if err := s.db.WithContext(ctx).Create(clip).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateLocation
		}
		return fmt.Errorf("failed to create clip: %w", err)
	}
	return nil
}

// Update modifies an existing clip's metadata and replaces its tags.
func (s *Store) Update(ctx context.Context, id uint, title, description string, tagNames []string) (*models.Clip, error) {
	clip, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	tags, err := s.resolveTags(ctx, tagNames)
	if err != nil {
		return nil, err
	}

	clip.Title = title
	clip.Description = description
	if err := s.db.WithContext(ctx).Save(clip).Error; err != nil {
		return nil, fmt.Errorf("failed to update clip %d: %w", id, err)
	}
	if err := s.db.WithContext(ctx).Model(clip).Association("Tags").Replace(tags); err != nil {
		return nil, fmt.Errorf("failed to update tags for clip %d: %w", id, err)
	}
	clip.Tags = tags

	return clip, nil
}

// Delete removes a clip by id and returns the deleted record so callers can
// clean up dependent resources (e.g. the stored thumbnail).
// Returns ErrClipNotFound if the clip does not exist.
func (s *Store) Delete(ctx context.Context, id uint) (*models.Clip, error) {
	clip, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(clip).Association("Tags").Clear(); err != nil {
		return nil, fmt.Errorf("failed to clear tags for clip %d: %w", id, err)
	}
	if err := s.db.WithContext(ctx).Delete(&models.Clip{}, id).Error; err != nil {
		return nil, fmt.Errorf("failed to delete clip %d: %w", id, err)
	}

	return clip, nil
}

// ListLocalEntries returns the reconciliation projection of every clip whose
// storage type is local. Clips referencing external media are excluded from
// the diff universe entirely.
func (s *Store) ListLocalEntries(ctx context.Context) ([]models.Entry, error) {
	var clips []models.Clip
	err := s.db.WithContext(ctx).
		Preload("Tags").
		Where("storage_type = ?", models.StorageTypeLocal).
		Order("id").
		Find(&clips).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list local clips: %w", err)
	}

	entries := make([]models.Entry, 0, len(clips))
	for i := range clips {
		entries = append(entries, models.Entry{
			ID:          clips[i].ID,
			Location:    clips[i].Location,
			Title:       clips[i].Title,
			Description: clips[i].Description,
			Tags:        clips[i].TagNames(),
		})
	}
	return entries, nil
}

// CreateEntry inserts a local clip for a newly discovered file.
// The location must be the canonical path key. Returns ErrDuplicateLocation
// when the key is already cataloged, which is how a losing concurrent writer
// surfaces instead of corrupting state.
func (s *Store) CreateEntry(ctx context.Context, location, title string, durationSeconds float64) (*models.Clip, error) {
	// Explicit pre-check gives a clean conflict on the common path; the
	// unique index still backstops the race window between check and insert.
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Clip{}).
		Where("location = ?", location).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check location uniqueness: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateLocation
	}

	clip := &models.Clip{
		Title:           title,
		StorageType:     models.StorageTypeLocal,
		Location:        location,
		DurationSeconds: durationSeconds,
	}
	if err := s.db.WithContext(ctx).Create(clip).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateLocation
		}
		return nil, fmt.Errorf("failed to create clip for %s: %w", location, err)
	}
	return clip, nil
}

// SetThumbnailKey records the storage object key of a clip's thumbnail.
func (s *Store) SetThumbnailKey(ctx context.Context, id uint, key string) error {
	result := s.db.WithContext(ctx).Model(&models.Clip{}).
		Where("id = ?", id).
		Update("thumbnail_key", key)
	if result.Error != nil {
		return fmt.Errorf("failed to set thumbnail key for clip %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrClipNotFound
	}
	return nil
}

// resolveTags maps tag names to records, creating missing tags.
func (s *Store) resolveTags(ctx context.Context, names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		var tag models.Tag
		if err := s.db.WithContext(ctx).Where(models.Tag{Name: name}).FirstOrCreate(&tag).Error; err != nil {
			return nil, fmt.Errorf("failed to resolve tag %q: %w", name, err)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
