// Package store persists benchmark rows in SQLite (modernc.org/sqlite, pure
// Go, no cgo).
//
// Every benchmark invocation gets a run id from NewRunID; each Row becomes
// two records in benchmark_runs (one per hierarchy) keyed by
// (run_id, n, hierarchy). Residual histories are stored as JSON arrays, so
// a stored run can be plotted again without re-solving.
package store
