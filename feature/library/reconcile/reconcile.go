// Package reconcile computes the diff between a filesystem scan and the
// catalog's local entries.
//
// Diff is a pure function: no I/O, no catalog mutation, deterministic for a
// given pair of inputs. Every canonical key is classified into exactly one of
// four states (new, missing, matched, error), which makes this the unit most
// amenable to exhaustive testing.
package reconcile

import (
	"fmt"
	"sort"
	"time"

	"clip-catalog/feature/clips/models"
	"clip-catalog/feature/library/scan"
)

// Status classifies one reconciliation item.
type Status string

const (
	// StatusNew marks a file present on disk but absent from the catalog.
	StatusNew Status = "new"
	// StatusMissing marks a catalog entry whose file is gone from disk.
	StatusMissing Status = "missing"
	// StatusMatched marks a file present in both.
	StatusMatched Status = "matched"
	// StatusError marks an entry that could not be classified.
	StatusError Status = "error"
)

// Item is one classified entry of the diff.
//
// The constructors below are the only way items are built, which keeps the
// field invariants intact: ClipID is set iff the status is matched or
// missing, ErrorMessage iff the status is error, and file metadata only
// accompanies new or matched items.
type Item struct {
	FilePath      string     `json:"file_path"`
	Status        Status     `json:"status"`
	Directory     string     `json:"directory,omitempty"`
	FileSizeBytes uint64     `json:"file_size_bytes,omitempty"`
	ModifiedAt    *time.Time `json:"modified_at,omitempty"`
	ClipID        uint       `json:"clip_id,omitempty"`
	Title         string     `json:"title,omitempty"`
	Description   string     `json:"description,omitempty"`
	Tags          []string   `json:"tags,omitempty"`
	ErrorMessage  string     `json:"error_message,omitempty"`
}

func newItem(f scan.File) Item {
	modified := f.ModifiedAt
	return Item{
		FilePath:      f.Path,
		Status:        StatusNew,
		Directory:     f.Directory,
		FileSizeBytes: f.SizeBytes,
		ModifiedAt:    &modified,
	}
}

func matchedItem(f scan.File, e models.Entry) Item {
	modified := f.ModifiedAt
	return Item{
		FilePath:      f.Path,
		Status:        StatusMatched,
		Directory:     f.Directory,
		FileSizeBytes: f.SizeBytes,
		ModifiedAt:    &modified,
		ClipID:        e.ID,
		Title:         e.Title,
		Description:   e.Description,
		Tags:          e.Tags,
	}
}

func missingItem(key string, e models.Entry) Item {
	return Item{
		FilePath:    key,
		Status:      StatusMissing,
		ClipID:      e.ID,
		Title:       e.Title,
		Description: e.Description,
		Tags:        e.Tags,
	}
}

func errorItem(path, message string) Item {
	return Item{
		FilePath:     path,
		Status:       StatusError,
		ErrorMessage: message,
	}
}

// Report aggregates the classified items with per-status counts.
type Report struct {
	Items        []Item `json:"items"`
	TotalScanned int    `json:"total_scanned"`
	NewCount     int    `json:"new_count"`
	MissingCount int    `json:"missing_count"`
	MatchedCount int    `json:"matched_count"`
	ErrorCount   int    `json:"error_count"`
}

// NewPaths returns the canonical paths of all new items, in report order.
func (r *Report) NewPaths() []string {
	paths := make([]string, 0, r.NewCount)
	for _, item := range r.Items {
		if item.Status == StatusNew {
			paths = append(paths, item.FilePath)
		}
	}
	return paths
}

// MissingClipIDs returns the clip ids of all missing items, in report order.
func (r *Report) MissingClipIDs() []uint {
	ids := make([]uint, 0, r.MissingCount)
	for _, item := range r.Items {
		if item.Status == StatusMissing {
			ids = append(ids, item.ClipID)
		}
	}
	return ids
}

// Diff classifies scanned files against catalog entries.
//
// Files and entries are matched on their canonical keys. A catalog entry
// whose location cannot be normalized becomes an error item and is excluded
// from add/remove consideration. Two catalog entries normalizing to the same
// key are a data anomaly: the first encountered is used for matching and the
// duplicate is surfaced as an error item, never silently merged.
func Diff(files []scan.File, entries []models.Entry) *Report {
	report := &Report{TotalScanned: len(files)}

	fileIndex := make(map[string]scan.File, len(files))
	for _, f := range files {
		// Scanner output is already canonical; normalizing again guards
		// callers that assemble file lists by hand.
		key, err := scan.Normalize(f.Path)
		if err != nil {
			report.Items = append(report.Items, errorItem(f.Path, fmt.Sprintf("invalid scanned path: %v", err)))
			continue
		}
		fileIndex[key] = f
	}

	entryIndex := make(map[string]models.Entry, len(entries))
	for _, e := range entries {
		key, err := scan.Normalize(e.Location)
		if err != nil {
			report.Items = append(report.Items,
				errorItem(e.Location, fmt.Sprintf("clip %d has an invalid location: %v", e.ID, err)))
			continue
		}
		if first, exists := entryIndex[key]; exists {
			report.Items = append(report.Items,
				errorItem(key, fmt.Sprintf("duplicate catalog entries for this location: clip %d and clip %d", first.ID, e.ID)))
			continue
		}
		entryIndex[key] = e
	}

	for key, f := range fileIndex {
		if e, cataloged := entryIndex[key]; cataloged {
			report.Items = append(report.Items, matchedItem(f, e))
		} else {
			report.Items = append(report.Items, newItem(f))
		}
	}
	for key, e := range entryIndex {
		if _, onDisk := fileIndex[key]; !onDisk {
			report.Items = append(report.Items, missingItem(key, e))
		}
	}

	// Deterministic output for stable previews and tests.
	sort.Slice(report.Items, func(i, j int) bool {
		if report.Items[i].FilePath != report.Items[j].FilePath {
			return report.Items[i].FilePath < report.Items[j].FilePath
		}
		return report.Items[i].Status < report.Items[j].Status
	})

	for _, item := range report.Items {
		switch item.Status {
		case StatusNew:
			report.NewCount++
		case StatusMissing:
			report.MissingCount++
		case StatusMatched:
			report.MatchedCount++
		case StatusError:
			report.ErrorCount++
		}
	}

	return report
}
