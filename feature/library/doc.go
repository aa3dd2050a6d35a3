// Package library implements filesystem reconciliation for the clip catalog.
//
// A reconciliation run compares the files under a media root folder against
// the catalog's local entries and classifies every canonical path as new,
// missing, matched or error. The run is exposed as a two-phase protocol:
//
//   - Preview: scan + diff, no side effects. Nothing is cached server-side;
//     the caller derives a selection from the returned items.
//   - Apply: scan + diff again, then execute the supplied selection item by
//     item. Individual failures (duplicate location, already-deleted clip)
//     are per-item outcomes; the batch always runs to completion.
//   - Full sync: apply the entire New/Missing set without a selection pause.
//
// The subpackages split the run into its testable parts: scan (path
// canonicalization and filesystem walking), reconcile (the pure diff), and
// sync (the executor applying a selection). Session in this package drives
// them through the Idle/Scanning/Diffing/Ready/Applying/Completed lifecycle.
//
// One logical worker performs a run; the catalog's unique location index is
// the only serialization point between concurrent runs, and a losing writer
// receives a failed outcome rather than corrupting state.
package library
