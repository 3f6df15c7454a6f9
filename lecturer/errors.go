package lecturer

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateLecturerID is returned by Register when the id is already
	// taken. Matching is exact and case-sensitive.
	ErrDuplicateLecturerID = errors.New("lecturer id already exists")

	// ErrAuthenticationFailed is returned by Authenticate for both an unknown
	// id and a wrong password. A single generic failure avoids leaking which
	// of the two was wrong.
	ErrAuthenticationFailed = errors.New("invalid lecturer id or password")
)

// ValidationError reports a missing registration field. The operation was
// aborted before any state changed.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}
