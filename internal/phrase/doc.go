// Package phrase parses pasted, delimiter-separated phrase lists.
//
// Each input line carries three columns: categories, phrase and translation.
// The column separator is either chosen explicitly or detected from the text:
//
//	categories;phrase;translation
//	Animals;dog;pas
//	Animals Food;fish;riba
//
// The package has two entry points built on the same pipeline:
//
//   - [PreviewText] parses at most [PreviewRowLimit] data lines and reports
//     a single validity verdict for inline feedback while the user types.
//   - [Parse] parses every data line and is what the importer consumes.
//
// [BuildPayload] couples the two: it refuses to produce a submission payload
// whenever the equivalent preview reports an error.
//
// # Pipeline
//
//  1. Split the text into non-blank lines ([SplitLines]).
//  2. Strip a UTF-8 byte-order mark from the start of the text.
//  3. Resolve the separator ([Resolve]). Auto mode samples the first
//     [DetectionSampleSize] lines; explicit modes are checked against the
//     first line, which must split into at least three fields.
//  4. Drop the first line if it is a column header ([IsHeader]).
//  5. Split each remaining line into a [Row] ([ParseLine]).
//
// # Errors
//
// Parsing never panics and never returns partial garbage. Detection and
// mismatch failures are carried in the Err field of [Preview] and [Result]
// so callers can render them inline on every input change. A preview also
// reports [ErrInvalidRow] when any previewed row is invalid; a full parse
// only counts invalid rows and leaves the decision to the importer. Use
// errors.Is with [ErrNoSeparatorDetected], [ErrSeparatorMismatch] and
// [ErrInvalidRow].
//
// All functions are pure and safe for concurrent use.
package phrase
