// Package lecturer implements the lecturer directory: registration with
// unique ids, credential hashing and verification.
package lecturer

import "context"

// Lecturer is a registered claim submitter.
// PasswordHash is the one-way hash of the plaintext credential; the plaintext
// is never stored.
type Lecturer struct {
	LecturerID   string `json:"LecturerId"`
	FullName     string `json:"FullName"`
	Email        string `json:"Email"`
	PasswordHash string `json:"PasswordHash"`
}

// Store persists the lecturers collection. Same whole-collection contract as
// claim.Store: load wholesale at startup, full rewrite on every save.
type Store interface {
	Load(ctx context.Context) ([]Lecturer, error)
	Save(ctx context.Context, lecturers []Lecturer) error
}
