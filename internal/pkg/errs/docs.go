// Package errs defines the typed errors every order operation returns.
//
// Each kind pairs a sentinel (ErrObjectNotFound, ErrInvalidTransition, ...) with a struct
// carrying the details. The struct's Unwrap returns the sentinel, so callers match with
// errors.Is and read details with errors.As.
//
// Kind collapses any error into the short name the HTTP layer and the metrics use:
// validation, conflict, invalid_transition, not_found, mismatch, forbidden,
// partially_applied or internal.
package errs
