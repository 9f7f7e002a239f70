// Package log provides slog handler middleware for doclink.
//
// PathHandler rewrites absolute filesystem paths in log attributes to
// working-directory-relative form. Debug logs mention document and database
// paths; without rewriting, the same check produces different log output on
// every CI runner, which defeats log diffing.
package log
