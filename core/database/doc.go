// Package database provides the GORM connection factory for the clip catalog.
//
// It supports two drivers selected through Config.Driver:
//   - sqlite: single-file deployments and tests (":memory:" works too)
//   - mysql: multi-user deployments, with encoded credentials and
//     connection/IO timeouts baked into the DSN
//
// GORM's own logging is silenced; connection warnings are surfaced through
// the application logger instead.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil { ... }
package database
