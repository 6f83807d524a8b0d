// Package core implements the phrase import service.
//
// The service sits between the HTTP layer and the [Store]. It previews pasted
// phrase lists with the phrase package, imports them into a language set and
// serves the read paths an admin screen needs.
//
// # Import
//
// [Service.Import] follows these steps:
//
//  1. Reject blank or oversized content and unknown separator labels.
//  2. Wait for an [ImportLimiter] slot ([ErrTooManyImports] after the
//     configured wait).
//  3. Parse every line. Separator failures abort the import.
//  4. Skip invalid rows and rows repeated within the payload.
//  5. Write the remaining rows in chunks, one transaction per chunk.
//     Rows already stored are skipped.
//  6. Record an [ImportRecord] with the client address and user agent
//     taken from the context ([ContextWithClient]).
//
// Every skipped line is reported as an [ImportError].
//
// # Errors
//
// [MapError] turns any error from this package or the phrase package into a
// [UserMessage] with a support code (SEP, ROW, IMP, SET, DB, RATE, ERR000).
package core
