// Package clips implements the persistent clip catalog.
//
// It owns the Clip and Tag GORM models, the Store that mediates every read
// and write, and the CRUD HTTP surface. The Store is also the contract the
// library reconciliation feature consumes:
//
//   - ListLocalEntries: point-in-time snapshot of local-file clips
//   - CreateEntry: insert for a newly discovered file, returning the typed
//     ErrDuplicateLocation on a uniqueness conflict
//   - Delete: removal returning the typed ErrClipNotFound
//
// The unique index on Clip.Location is the only cross-session serialization
// point; everything above it treats conflicts as ordinary per-item outcomes.
package clips
