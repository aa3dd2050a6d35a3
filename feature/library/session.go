package library

import (
	"context"

	"clip-catalog/feature/clips/models"
	"clip-catalog/feature/library/reconcile"
	"clip-catalog/feature/library/scan"
	librarysync "clip-catalog/feature/library/sync"

	"go.uber.org/zap"
)

// State is the lifecycle phase of a reconciliation session.
type State string

const (
	StateIdle      State = "idle"
	StateScanning  State = "scanning"
	StateDiffing   State = "diffing"
	StateReady     State = "ready"
	StateApplying  State = "applying"
	StateCompleted State = "completed"
	StateFailed    State = "failed"
)

// Snapshot is the catalog read contract: a point-in-time view of the local
// entries, taken once per session run. It may be stale by the time an apply
// executes, which is why the executor treats conflicts as per-item outcomes.
type Snapshot interface {
	ListLocalEntries(ctx context.Context) ([]models.Entry, error)
}

// Session orchestrates one reconciliation run: scan, diff, and optionally
// apply. A session is a per-call value; nothing about a preview is retained
// server-side, and Preview may be called again at any time, discarding the
// prior diff.
//
// Completed is always reachable from Applying, partial failures included.
// Failed is reserved for root-level preconditions: a missing root folder or
// an unreachable catalog.
type Session struct {
	scanner  *scan.Scanner
	catalog  Snapshot
	executor *librarysync.Executor
	logger   *zap.Logger
	state    State
}

// NewSession creates an idle reconciliation session.
func NewSession(scanner *scan.Scanner, catalog Snapshot, executor *librarysync.Executor, logger *zap.Logger) *Session {
	return &Session{
		scanner:  scanner,
		catalog:  catalog,
		executor: executor,
		logger:   logger,
		state:    StateIdle,
	}
}

// State returns the session's current lifecycle phase.
func (s *Session) State() State {
	return s.state
}

// Preview holds the outcome of a scan-and-diff run.
type Preview struct {
	Report   *reconcile.Report
	Warnings []string
	Root     string
}

// SyncResult holds the outcome of an apply run.
type SyncResult struct {
	Report       *librarysync.Report
	TotalScanned int
	Warnings     []string
	Root         string
}

// Preview scans the root, diffs against the catalog snapshot, and leaves the
// session in Ready. No mutation happens.
func (s *Session) Preview(ctx context.Context, root string) (*Preview, error) {
	diff, warnings, _, err := s.scanAndDiff(ctx, root)
	if err != nil {
		return nil, err
	}

	s.state = StateReady
	return &Preview{Report: diff, Warnings: warnings, Root: root}, nil
}

// Apply scans and diffs, then executes the caller-supplied selection.
//
// The selection is restricted to the scan just taken: paths selected for
// adding that were not discovered under the root fail per-item, inside the
// executor, so outcomes keep the supplied order. Everything else is left to
// the catalog's uniqueness constraint, since the snapshot may already be
// stale.
func (s *Session) Apply(ctx context.Context, root string, sel librarysync.Selection) (*SyncResult, error) {
	diff, warnings, scanned, err := s.scanAndDiff(ctx, root)
	if err != nil {
		return nil, err
	}

	result := s.execute(ctx, librarysync.Selection{
		FilesToAdd:      sel.FilesToAdd,
		ClipIDsToRemove: sel.ClipIDsToRemove,
		OnDisk:          scanned,
	})
	result.TotalScanned = diff.TotalScanned
	result.Warnings = warnings
	result.Root = root
	return result, nil
}

// ApplyAll is the full auto-sync mode: it selects every new file for adding
// and every missing entry for removal, going straight from diffing to
// applying without the ready pause.
func (s *Session) ApplyAll(ctx context.Context, root string) (*SyncResult, error) {
	diff, warnings, _, err := s.scanAndDiff(ctx, root)
	if err != nil {
		return nil, err
	}

	result := s.execute(ctx, librarysync.Selection{
		FilesToAdd:      diff.NewPaths(),
		ClipIDsToRemove: diff.MissingClipIDs(),
	})
	result.TotalScanned = diff.TotalScanned
	result.Warnings = warnings
	result.Root = root
	return result, nil
}

func (s *Session) scanAndDiff(ctx context.Context, root string) (*reconcile.Report, []string, map[string]struct{}, error) {
	s.state = StateScanning
	scanResult, err := s.scanner.Scan(ctx, root)
	if err != nil {
		s.state = StateFailed
		return nil, nil, nil, err
	}

	s.state = StateDiffing
	entries, err := s.catalog.ListLocalEntries(ctx)
	if err != nil {
		s.state = StateFailed
		return nil, nil, nil, err
	}

	diff := reconcile.Diff(scanResult.Files, entries)

	scanned := make(map[string]struct{}, len(scanResult.Files))
	for _, f := range scanResult.Files {
		scanned[f.Path] = struct{}{}
	}

	s.logger.Info("Reconciliation diff computed",
		zap.String("root", root),
		zap.Int("scanned", diff.TotalScanned),
		zap.Int("new", diff.NewCount),
		zap.Int("missing", diff.MissingCount),
		zap.Int("matched", diff.MatchedCount),
		zap.Int("errors", diff.ErrorCount),
	)

	return diff, scanResult.Warnings, scanned, nil
}

func (s *Session) execute(ctx context.Context, sel librarysync.Selection) *SyncResult {
	s.state = StateApplying
	report := s.executor.Apply(ctx, sel)
	// Partial failure and cancellation both complete the session; already
	// applied mutations stay committed.
	s.state = StateCompleted
	return &SyncResult{Report: report}
}
