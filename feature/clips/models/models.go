package models

import "time"

// Storage types for a clip's location field.
const (
	// StorageTypeLocal marks clips backed by a file under the library root.
	StorageTypeLocal = "local"
	// StorageTypeYouTube marks clips referencing an external YouTube video id.
	StorageTypeYouTube = "youtube"
)

// Clip is a catalog record for a single video.
//
// Location is the canonical path for local clips or the external media id for
// YouTube clips. The unique index on it is the serialization point that keeps
// concurrent library syncs from creating duplicates.
type Clip struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"size:255;not null" json:"title"`
	Description     string    `gorm:"type:text" json:"description"`
	StorageType     string    `gorm:"size:16;not null;default:local;index" json:"storage_type"`
	Location        string    `gorm:"size:500;not null;uniqueIndex" json:"location"`
	DurationSeconds float64   `json:"duration_seconds"`
	ThumbnailKey    string    `gorm:"size:255" json:"thumbnail_key,omitempty"`
	Tags            []Tag     `gorm:"many2many:clip_tags" json:"tags"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Tag is a label attached to clips.
type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null;uniqueIndex" json:"name"`
}

// Entry is the read-only projection of a clip handed to the reconciliation
// engine. It carries just enough to classify and display a diff item.
type Entry struct {
	ID          uint     `json:"id"`
	Location    string   `json:"location"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// TagNames returns the tag names of a clip in declaration order.
func (c *Clip) TagNames() []string {
	names := make([]string, 0, len(c.Tags))
	for _, t := range c.Tags {
		names = append(names, t.Name)
	}
	return names
}
