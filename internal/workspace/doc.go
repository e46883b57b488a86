// Package workspace orchestrates a lint session over a set of units: it
// owns the file set and interner, drives per-unit rule passes through a
// bounded worker pool, joins them, runs the cross-file pass over the
// merged import graph and assembles the final report.
//
// Sessions are incremental. SetFiles reloads only units whose content
// hash changed; an unchanged unit keeps the finalized diagnostics object
// from the previous run. The optional disk cache extends the same idea
// across processes.
package workspace
