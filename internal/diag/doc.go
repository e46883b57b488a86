// Package diag defines the diagnostic model shared by the lint engine and
// the workspace.
//
// # Purpose
//
//   - Provide deterministic, serialisable structures for findings produced
//     by lint rules and by the tool itself.
//   - Offer light-weight utilities (Reporter, Bag, ReportBuilder) so
//     producers can emit without coupling to storage or formatting.
//   - Keep policy out of emission: severity overrides from configuration
//     are applied by Finalize, never observed by rule code.
//
// # Data model
//
// Diagnostic is the central record: Severity (Note/Warning/Error), Code
// (the stable rule identifier, or a "bl/"-prefixed tool code), Message,
// the primary source.Span and optional Notes with secondary spans. Notes
// should add context ("first declared here"), not restate the message.
//
// # Ordering
//
// A finalized unit sequence is totally ordered by (file, span start,
// severity descending, code ascending, span end) and free of exact
// duplicates.
// Finalize is idempotent and pure with respect to overrides: changing only
// an override changes only severities.
//
// Rendering lives in internal/diagfmt; orchestration in internal/workspace.
package diag
