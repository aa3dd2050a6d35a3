package library

import (
	"context"
	"errors"
	"strings"

	"clip-catalog/feature/library/reconcile"
	"clip-catalog/feature/library/scan"
	librarysync "clip-catalog/feature/library/sync"

	"go.uber.org/zap"
)

// ErrNoRoot is returned when a request names no root folder and none is
// configured.
var ErrNoRoot = errors.New("no root folder given and no default configured")

// PreviewResponse is the wire shape of a preview run.
type PreviewResponse struct {
	Items             []reconcile.Item `json:"items"`
	TotalScanned      int              `json:"total_scanned"`
	NewFilesCount     int              `json:"new_files_count"`
	MissingFilesCount int              `json:"missing_files_count"`
	MatchedFilesCount int              `json:"matched_files_count"`
	ErrorCount        int              `json:"error_count"`
	RootFolderPath    string           `json:"root_folder_path"`
	Warnings          []string         `json:"warnings,omitempty"`
}

// SyncResponse is the wire shape of an apply run.
type SyncResponse struct {
	AddedClips     []librarysync.Outcome `json:"added_clips"`
	RemovedClips   []librarysync.Outcome `json:"removed_clips"`
	Errors         []librarysync.Outcome `json:"errors"`
	TotalScanned   int                   `json:"total_scanned"`
	TotalAdded     int                   `json:"total_added"`
	TotalRemoved   int                   `json:"total_removed"`
	RootFolderPath string                `json:"root_folder_path"`
	Warnings       []string              `json:"warnings,omitempty"`
	Cancelled      bool                  `json:"cancelled,omitempty"`
}

// Service runs reconciliation sessions against the configured library.
//
// Each call creates a fresh session: the root folder is an explicit value
// resolved per call, never process-wide state, so concurrent sessions against
// different roots stay independent.
type Service struct {
	scanner     *scan.Scanner
	catalog     Snapshot
	executor    *librarysync.Executor
	defaultRoot string
	logger      *zap.Logger
}

// NewService creates a library reconciliation service.
func NewService(scanner *scan.Scanner, catalog Snapshot, executor *librarysync.Executor, defaultRoot string, logger *zap.Logger) *Service {
	return &Service{
		scanner:     scanner,
		catalog:     catalog,
		executor:    executor,
		defaultRoot: defaultRoot,
		logger:      logger,
	}
}

// Preview scans the root folder and returns the classified diff.
func (s *Service) Preview(ctx context.Context, root string) (*PreviewResponse, error) {
	root, err := s.resolveRoot(root)
	if err != nil {
		return nil, err
	}

	session := s.newSession()
	preview, err := session.Preview(ctx, root)
	if err != nil {
		return nil, err
	}

	return &PreviewResponse{
		Items:             preview.Report.Items,
		TotalScanned:      preview.Report.TotalScanned,
		NewFilesCount:     preview.Report.NewCount,
		MissingFilesCount: preview.Report.MissingCount,
		MatchedFilesCount: preview.Report.MatchedCount,
		ErrorCount:        preview.Report.ErrorCount,
		RootFolderPath:    preview.Root,
		Warnings:          preview.Warnings,
	}, nil
}

// ApplySelection executes a caller-chosen subset of a prior preview.
func (s *Service) ApplySelection(ctx context.Context, root string, filesToAdd []string, clipIDsToRemove []uint) (*SyncResponse, error) {
	root, err := s.resolveRoot(root)
	if err != nil {
		return nil, err
	}

	session := s.newSession()
	result, err := session.Apply(ctx, root, librarysync.Selection{
		FilesToAdd:      filesToAdd,
		ClipIDsToRemove: clipIDsToRemove,
	})
	if err != nil {
		return nil, err
	}
	return buildSyncResponse(result), nil
}

// ApplyAll executes the full diff: every new file added, every missing entry
// removed.
func (s *Service) ApplyAll(ctx context.Context, root string) (*SyncResponse, error) {
	root, err := s.resolveRoot(root)
	if err != nil {
		return nil, err
	}

	session := s.newSession()
	result, err := session.ApplyAll(ctx, root)
	if err != nil {
		return nil, err
	}
	return buildSyncResponse(result), nil
}

func (s *Service) newSession() *Session {
	return NewSession(s.scanner, s.catalog, s.executor, s.logger)
}

func (s *Service) resolveRoot(root string) (string, error) {
	root = strings.TrimSpace(root)
	if root != "" {
		return root, nil
	}
	if s.defaultRoot == "" {
		return "", ErrNoRoot
	}
	return s.defaultRoot, nil
}

func buildSyncResponse(result *SyncResult) *SyncResponse {
	resp := &SyncResponse{
		AddedClips:     result.Report.Added,
		RemovedClips:   result.Report.Removed,
		Errors:         result.Report.Failed,
		TotalScanned:   result.TotalScanned,
		TotalAdded:     len(result.Report.Added),
		TotalRemoved:   len(result.Report.Removed),
		RootFolderPath: result.Root,
		Warnings:       result.Warnings,
		Cancelled:      result.Report.Cancelled,
	}
	if resp.AddedClips == nil {
		resp.AddedClips = []librarysync.Outcome{}
	}
	if resp.RemovedClips == nil {
		resp.RemovedClips = []librarysync.Outcome{}
	}
	if resp.Errors == nil {
		resp.Errors = []librarysync.Outcome{}
	}
	return resp
}
