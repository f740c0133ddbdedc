// Package sqlite provides SQLite-based local persistence for run
// history.
//
// This package implements the driven.RunStore port using modernc.org/sqlite,
// a pure-Go SQLite driver requiring no CGO. The database file lives in
// the Dealsync data directory and is opened in WAL mode. Schema changes
// ship as embedded SQL migrations applied on open.
package sqlite
