// internal/services/errors.go
package services

import "errors"

var (
	// ErrNotConfigured is returned before any read or write is attempted
	// when the backing store is missing, so a failed save never leaves
	// partial state behind.
	ErrNotConfigured = errors.New("backing store is not configured")

	ErrProductNotFound       = errors.New("product not found")
	ErrPublicProductNotFound = errors.New("public product not found")

	// ErrOrphanedProduct marks a user product whose public record has
	// gone missing. Read paths surface it as not-found instead of
	// composing a partial view.
	ErrOrphanedProduct = errors.New("product references a missing public product")

	// ErrMergeConflict means the public record's version advanced between
	// the read and the conditional write. The save path retries; it only
	// escapes to callers when the retry budget is exhausted.
	ErrMergeConflict = errors.New("public product was modified concurrently")

	ErrSellerLookupFailed = errors.New("seller lookup returned an unusable result")
)
