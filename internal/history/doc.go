// Package history provides SQLite-based storage of check reports.
//
// Every check run can be persisted so later runs can be compared against it
// (see the compare command): which references broke since the last run,
// which were fixed, and whether the documentation set is trending better or
// worse.
//
// The database lives in the XDG data directory and stores each report as a
// JSON blob alongside queryable metadata (root, timestamp, violation count).
// Persistence is best-effort: a storage failure is logged and never changes
// the check's exit status.
package history
