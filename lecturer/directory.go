/*
directory.go - Lecturer registration and credential verification

PURPOSE:
  The Directory owns the in-memory lecturers collection. Registration
  enforces id uniqueness and hashes the credential; authentication compares
  the stored hash against the hash of the presented password.

PERSISTENCE MODEL:
  Same as the claim engine: the collection is loaded once at construction and
  the whole collection is rewritten after every successful registration.
*/
package lecturer

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Directory holds the lecturers collection. Construct it once at process
// start and hand it to the UI collaborator.
type Directory struct {
	mu        sync.RWMutex
	lecturers []Lecturer

	store Store
	log   zerolog.Logger
}

// NewDirectory loads the lecturers collection from store.
func NewDirectory(ctx context.Context, store Store, log zerolog.Logger) (*Directory, error) {
	lecturers, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load lecturers: %w", err)
	}
	return &Directory{lecturers: lecturers, store: store, log: log}, nil
}

// RegisterInput is the raw registration form as collected by the UI.
type RegisterInput struct {
	LecturerID string
	FullName   string
	Email      string
	Password   string
}

// Register validates in, hashes the password, appends the new lecturer and
// persists the collection. Fails with ErrDuplicateLecturerID when the id is
// already taken; nothing is persisted on any failure.
func (d *Directory) Register(ctx context.Context, in RegisterInput) (Lecturer, error) {
	required := []struct {
		field, value string
	}{
		{"full name", in.FullName},
		{"lecturer id", in.LecturerID},
		{"email", in.Email},
		{"password", in.Password},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return Lecturer{}, &ValidationError{Field: r.field}
		}
	}

	id := strings.TrimSpace(in.LecturerID)

	d.mu.Lock()
	defer d.mu.Unlock()
	for _, l := range d.lecturers {
		if l.LecturerID == id {
			return Lecturer{}, ErrDuplicateLecturerID
		}
	}

	rec := Lecturer{
		LecturerID:   id,
		FullName:     strings.TrimSpace(in.FullName),
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: HashPassword(in.Password),
	}
	d.lecturers = append(d.lecturers, rec)
	if err := d.store.Save(ctx, d.lecturers); err != nil {
		d.lecturers = d.lecturers[:len(d.lecturers)-1]
		return Lecturer{}, fmt.Errorf("save lecturers: %w", err)
	}

	d.log.Info().Str("lecturer_id", rec.LecturerID).Msg("lecturer registered")
	return rec, nil
}

// Authenticate returns the lecturer whose id matches exactly and whose stored
// hash equals the hash of password. Both an unknown id and a wrong password
// fail with the same ErrAuthenticationFailed.
func (d *Directory) Authenticate(id, password string) (Lecturer, error) {
	id = strings.TrimSpace(id)
	hash := HashPassword(password)

	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, l := range d.lecturers {
		if l.LecturerID == id &&
			subtle.ConstantTimeCompare([]byte(l.PasswordHash), []byte(hash)) == 1 {
			return l, nil
		}
	}
	return Lecturer{}, ErrAuthenticationFailed
}

// Lookup returns the lecturer with the given id, if registered.
func (d *Directory) Lookup(id string) (Lecturer, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, l := range d.lecturers {
		if l.LecturerID == id {
			return l, true
		}
	}
	return Lecturer{}, false
}

// FullNameOf resolves a lecturer id to a display name.
// Satisfies claim.DirectoryLookup.
func (d *Directory) FullNameOf(id string) (string, bool) {
	l, ok := d.Lookup(id)
	return l.FullName, ok
}

// Lecturers returns a copy of the collection in registration order.
func (d *Directory) Lecturers() []Lecturer {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Lecturer, len(d.lecturers))
	copy(out, d.lecturers)
	return out
}
