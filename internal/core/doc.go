// Package core provides the business logic for turning pasted spreadsheet
// data into issue-tracker import CSV files.
//
// This package is the heart of the generator, containing all domain logic
// independent of any UI or transport layer. It is used by the web shell, the
// CLI, and tests without modification.
//
// # Pipeline
//
// A paste flows through the same stages regardless of template:
//
//  1. [SplitLines] and [DetectDelimiter] turn raw text into physical lines
//     and pick a delimiter from the header line (tab, comma, semicolon).
//  2. [ResolveColumns] binds semantic roles (epic, story, task, ...) to
//     header positions by case-insensitive substring match.
//  3. [ParseTable] folds multi-line cells back together and produces one
//     [Record] per logical row. [ExtractEmails] handles email pastes.
//  4. A [Template] generates the output [Table] (header first).
//  5. [EncodeCSV] serializes it and [ChunkTable] splits it into files of at
//     most [MaxRowsPerFile] data rows.
//
// # Template Registry
//
// Templates live in the templates subpackage and register themselves at
// init time using [Register]:
//
//	func init() {
//	    core.Register(DevOps{})
//	}
//
// Each [Template] declares its header, its required column roles and the
// parameters it needs; [Lookup] finds them by key. Binaries blank-import the
// templates package to populate the registry.
//
// # Sessions
//
// The interactive shells keep one [Session] per client and template. A
// session holds an immutable [Snapshot] that is swapped on every paste,
// process and clear action, and a state flag that rejects overlapping parses
// with [ErrParseInProgress].
//
// # Error Handling
//
// Pipeline failures are typed sentinels ([ErrEmptyInput], [ErrMissingColumns],
// ...) that callers test with errors.Is. [MapError] turns them into coded,
// user-facing messages:
//
//   - INP001-INP002: Input errors (empty paste, placeholder text)
//   - COL001: Header resolution failures
//   - EML001: Email extraction failures
//   - PAR001: Missing or invalid parameters
//   - SES001-SES003: Session state errors
//   - SRV001: Every work slot is busy
//   - TPL001: Unknown template
package core
