/*
errors.go - Error types for the claim engine

ERROR CATEGORIES:
  1. Validation errors - malformed submission input, operation aborted with
     no mutation
  2. Lookup errors - unknown claim or lecturer ids
  3. Informational signals - empty reporting results; these are sentinels so
     callers can distinguish "nothing to show" from a real failure

USAGE:
  Callers branch with errors.Is / errors.As:

    if claim.IsInformational(err) {
        // render the "no results" message, not an error dialog
    }
*/
package claim

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrClaimNotFound is returned by Decide when no claim has the given id.
	ErrClaimNotFound = errors.New("claim not found")

	// ErrLecturerNotFound is returned by InvoiceFor when the lecturer id is
	// not registered.
	ErrLecturerNotFound = errors.New("lecturer not found")

	// ErrNoClaims is returned by InvoiceFor when the lecturer exists but has
	// submitted no claims. Informational, not a system failure.
	ErrNoClaims = errors.New("no claims for lecturer")

	// ErrNoApprovedClaims is returned by ReportApproved when nothing has been
	// approved yet. Informational, not a system failure.
	ErrNoApprovedClaims = errors.New("no approved claims")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// ValidationError reports a missing or malformed submission field.
// The operation was aborted before any state changed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsInformational reports whether err signals an empty reporting result
// rather than a failure.
func IsInformational(err error) bool {
	return errors.Is(err, ErrNoClaims) || errors.Is(err, ErrNoApprovedClaims)
}

// IsClientError reports whether err is due to invalid caller input.
func IsClientError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) ||
		errors.Is(err, ErrClaimNotFound) ||
		errors.Is(err, ErrLecturerNotFound)
}
