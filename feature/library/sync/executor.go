// Package sync applies a selected reconciliation diff back to the catalog.
//
// The executor processes additions and removals item by item, in the order
// supplied, and never aborts the batch on an individual failure: a losing
// writer in a concurrent sync surfaces as a per-item failed outcome, backed
// by the catalog's uniqueness constraint. Best-effort side effects (metadata
// probing, thumbnail generation) are attempted and recorded as warnings on a
// successful outcome, never as failures.
package sync

import (
	"context"
	"errors"
	"fmt"

	"clip-catalog/feature/clips"
	"clip-catalog/feature/clips/models"
	"clip-catalog/feature/library/scan"
	"clip-catalog/feature/media"

	"go.uber.org/zap"
)

// Selection is the caller-chosen subset of a prior preview: canonical paths
// to catalog and clip ids to remove. Previews are not stored server-side, so
// the caller re-supplies the selection on every apply.
type Selection struct {
	FilesToAdd      []string
	ClipIDsToRemove []uint
	// OnDisk, when non-nil, is the set of canonical keys the backing scan
	// discovered. Additions outside it fail per item, in supplied order,
	// like every other per-item failure.
	OnDisk map[string]struct{}
}

// OutcomeStatus reports how one attempted mutation ended.
type OutcomeStatus string

const (
	// OutcomeAdded marks a successfully created catalog entry.
	OutcomeAdded OutcomeStatus = "added"
	// OutcomeRemoved marks a successfully deleted catalog entry.
	OutcomeRemoved OutcomeStatus = "removed"
	// OutcomeFailed marks a mutation that did not happen.
	OutcomeFailed OutcomeStatus = "failed"
)

// Outcome records one attempted mutation.
type Outcome struct {
	FilePath     string        `json:"file_path,omitempty"`
	ClipID       uint          `json:"clip_id,omitempty"`
	Title        string        `json:"title,omitempty"`
	Outcome      OutcomeStatus `json:"outcome"`
	ErrorMessage string        `json:"error_message,omitempty"`
	Warnings     []string      `json:"warnings,omitempty"`
}

// Report aggregates the outcomes of one apply call, in supplied order.
type Report struct {
	Added   []Outcome `json:"added"`
	Removed []Outcome `json:"removed"`
	Failed  []Outcome `json:"failed"`
	// Processed counts items attempted before completion or cancellation.
	Processed int `json:"processed"`
	// Cancelled is set when the context ended between items. Mutations
	// applied before that point remain committed.
	Cancelled bool `json:"cancelled,omitempty"`
}

// Catalog is the slice of the clip store the executor mutates through.
type Catalog interface {
	CreateEntry(ctx context.Context, location, title string, durationSeconds float64) (*models.Clip, error)
	Delete(ctx context.Context, id uint) (*models.Clip, error)
	SetThumbnailKey(ctx context.Context, id uint, key string) error
}

// Prober resolves metadata for a newly added file. Failures degrade the add,
// they never fail it.
type Prober interface {
	Probe(ctx context.Context, path string) (media.ProbeResult, error)
}

// Thumbnailer generates and removes stored thumbnails. Failures are logged
// warnings, never fatal to an add or remove.
type Thumbnailer interface {
	Generate(ctx context.Context, clipID uint, path string) (string, error)
	Remove(ctx context.Context, objectKey string) error
}

// Executor applies a selection against the catalog.
type Executor struct {
	catalog Catalog
	prober  Prober
	thumbs  Thumbnailer
	logger  *zap.Logger
}

// NewExecutor creates a sync executor.
func NewExecutor(catalog Catalog, prober Prober, thumbs Thumbnailer, logger *zap.Logger) *Executor {
	return &Executor{
		catalog: catalog,
		prober:  prober,
		thumbs:  thumbs,
		logger:  logger,
	}
}

// Apply processes the selection sequentially: additions first, then removals,
// each list in the order supplied. The context is checked between items;
// on cancellation the partial report is returned with Cancelled set.
func (e *Executor) Apply(ctx context.Context, sel Selection) *Report {
	report := &Report{}

	for _, raw := range sel.FilesToAdd {
		if ctx.Err() != nil {
			report.Cancelled = true
			return report
		}
		e.applyAdd(ctx, raw, sel.OnDisk, report)
		report.Processed++
	}

	for _, id := range sel.ClipIDsToRemove {
		if ctx.Err() != nil {
			report.Cancelled = true
			return report
		}
		e.applyRemove(ctx, id, report)
		report.Processed++
	}

	return report
}

func (e *Executor) applyAdd(ctx context.Context, rawPath string, onDisk map[string]struct{}, report *Report) {
	key, err := scan.Normalize(rawPath)
	if err != nil {
		report.Failed = append(report.Failed, Outcome{
			FilePath:     rawPath,
			Outcome:      OutcomeFailed,
			ErrorMessage: err.Error(),
		})
		return
	}

	if onDisk != nil {
		if _, present := onDisk[key]; !present {
			report.Failed = append(report.Failed, Outcome{
				FilePath:     key,
				Outcome:      OutcomeFailed,
				ErrorMessage: "file not found under the scanned root",
			})
			return
		}
	}

	var warnings []string

	// Probe with the path as supplied; the canonical key is for storage
	// and comparison only.
	probe, err := e.prober.Probe(ctx, rawPath)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("metadata probe failed: %v", err))
		probe = media.ProbeResult{Title: media.TitleFromPath(key)}
		e.logger.Warn("Metadata probe failed, using file name as title",
			zap.String("path", key), zap.Error(err))
	}

	clip, err := e.catalog.CreateEntry(ctx, key, probe.Title, probe.DurationSeconds)
	if err != nil {
		// A duplicate here usually means another sync won the race or the
		// selection was already applied; either way it is this item's
		// failure, not the batch's.
		message := err.Error()
		if errors.Is(err, clips.ErrDuplicateLocation) {
			message = fmt.Sprintf("already cataloged: %s", key)
		}
		report.Failed = append(report.Failed, Outcome{
			FilePath:     key,
			Title:        probe.Title,
			Outcome:      OutcomeFailed,
			ErrorMessage: message,
		})
		return
	}

	if objectKey, err := e.thumbs.Generate(ctx, clip.ID, rawPath); err != nil {
		warnings = append(warnings, fmt.Sprintf("thumbnail generation failed: %v", err))
		e.logger.Warn("Thumbnail generation failed",
			zap.Uint("clip_id", clip.ID), zap.String("path", key), zap.Error(err))
	} else if err := e.catalog.SetThumbnailKey(ctx, clip.ID, objectKey); err != nil {
		warnings = append(warnings, fmt.Sprintf("failed to record thumbnail: %v", err))
	}

	report.Added = append(report.Added, Outcome{
		FilePath: key,
		ClipID:   clip.ID,
		Title:    clip.Title,
		Outcome:  OutcomeAdded,
		Warnings: warnings,
	})
}

func (e *Executor) applyRemove(ctx context.Context, id uint, report *Report) {
	clip, err := e.catalog.Delete(ctx, id)
	if err != nil {
		message := err.Error()
		if errors.Is(err, clips.ErrClipNotFound) {
			message = fmt.Sprintf("clip %d not found (already removed)", id)
		}
		report.Failed = append(report.Failed, Outcome{
			ClipID:       id,
			Outcome:      OutcomeFailed,
			ErrorMessage: message,
		})
		return
	}

	var warnings []string
	if clip.ThumbnailKey != "" {
		if err := e.thumbs.Remove(ctx, clip.ThumbnailKey); err != nil {
			warnings = append(warnings, fmt.Sprintf("thumbnail removal failed: %v", err))
			e.logger.Warn("Thumbnail removal failed",
				zap.Uint("clip_id", id), zap.String("object", clip.ThumbnailKey), zap.Error(err))
		}
	}

	report.Removed = append(report.Removed, Outcome{
		FilePath: clip.Location,
		ClipID:   id,
		Title:    clip.Title,
		Outcome:  OutcomeRemoved,
		Warnings: warnings,
	})
}
