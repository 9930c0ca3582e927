// Package errs provides standardized error types for the basket application.
// Every type pairs a sentinel error with a struct carrying the offending parameter,
// so callers match the category with errors.Is and inspect details with errors.As.
//
// The package includes:
//   - ObjectNotFoundError: an aggregate or catalog entry could not be found
//   - ValueIsInvalidError: a value failed validation
//   - ValueIsOutOfRangeError: a value fell outside its allowed bounds
//   - ValueIsRequiredError: a required value was missing
//   - VersionIsInvalidError: an optimistic concurrency version did not match
//
// Each type has a constructor with and without a cause, an Error method that
// renders the cause when present, and an Unwrap method returning the sentinel.
package errs
