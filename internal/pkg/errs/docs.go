// Package errs provides standardized error types for the fulfillment service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: validation
//     failures, rejected before any state change
//   - ObjectNotFoundError: the referenced order, attempt, batch or request does not exist
//   - VersionIsInvalidError: optimistic concurrency conflict on a versioned aggregate
//   - DomainError: a named business rule violation classified as a state conflict,
//     a consistency (money) violation, or a forbidden call
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Callers classify failures with errors.Is against the sentinels and read the
// stable API code of a DomainError with CodeOf.
package errs
