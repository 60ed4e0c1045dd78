// Package diag defines the diagnostic model shared by every checker.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Category: Syntax, Style, Warning, Compiler or Comment (category.go).
//   - Code: compact numeric identifier with a stable string form (codes.go).
//   - File, Line, Column: 1-based location of the finding.
//   - Message: human oriented text.
//   - Excerpt: optional copy of the offending line, bounded by ExcerptWidth.
//
// Checkers do not know which file or line they run on. They return Finding
// values and the dispatcher turns them into Diagnostic records.
//
// # Storage
//
// Bag is the capacity-bounded sink. Append returns ErrCapacity once the
// limit is reached; BagReporter converts that signal into a single overflow
// notice for the whole run. Records are never mutated after Append.
//
// Package diag does not print anything. Rendering lives in internal/diagfmt.
package diag
