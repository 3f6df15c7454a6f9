package attach

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFileType is returned when the document's extension is not an
	// accepted format.
	ErrInvalidFileType = errors.New("invalid file type")

	// ErrFileTooLarge is returned when the document exceeds MaxFileBytes.
	ErrFileTooLarge = errors.New("file too large")

	// ErrFileNotFound is returned by Open when the stored document no longer
	// exists.
	ErrFileNotFound = errors.New("file not found")
)

// InvalidFileTypeError carries the rejected extension.
type InvalidFileTypeError struct {
	Extension string
}

func (e *InvalidFileTypeError) Error() string {
	return fmt.Sprintf("invalid file type %q: only PDF, DOC, DOCX, XLS and XLSX are allowed", e.Extension)
}

func (e *InvalidFileTypeError) Unwrap() error { return ErrInvalidFileType }

// FileTooLargeError carries the offending and maximum sizes in bytes.
type FileTooLargeError struct {
	Size  int64
	Limit int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("file is %d bytes, maximum allowed is %d", e.Size, e.Limit)
}

func (e *FileTooLargeError) Unwrap() error { return ErrFileTooLarge }
