/*
Package jsonfile is the primary persistence backend: two JSON array files in
the application data directory, rewritten wholesale on every save.

FILES:
  claims.json    - array of claim records
  lecturers.json - array of lecturer records

CONTRACT:
  - Save fully rewrites the file; there is no append path.
  - Load of a file that does not exist yet returns an empty collection.
  - A read or write failure surfaces as a wrapped error; no retry, no
    partial-write protection. Last writer wins if two processes race, which
    the single-process assumption makes a non-issue.
*/
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"github.com/campuspay/claim-engine/claim"
	"github.com/campuspay/claim-engine/lecturer"
)

func init() {
	// Monetary fields marshal as JSON numbers, matching the established
	// on-disk shape of claims.json.
	decimal.MarshalJSONWithoutQuotes = true
}

// Store holds both collection files under one data directory.
type Store struct {
	claims    collection[claim.Claim]
	lecturers collection[lecturer.Lecturer]
}

// New creates the data directory if needed and returns a Store bound to
// claims.json and lecturers.json inside it.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Store{
		claims:    collection[claim.Claim]{path: filepath.Join(dir, "claims.json")},
		lecturers: collection[lecturer.Lecturer]{path: filepath.Join(dir, "lecturers.json")},
	}, nil
}

// Claims returns the claims collection store.
func (s *Store) Claims() claim.Store { return s.claims }

// Lecturers returns the lecturers collection store.
func (s *Store) Lecturers() lecturer.Store { return s.lecturers }

// collection is one whole JSON-array file.
type collection[T any] struct {
	path string
}

func (c collection[T]) Load(_ context.Context) ([]T, error) {
	data, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(c.path), err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(c.path), err)
	}
	return items, nil
}

func (c collection[T]) Save(_ context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(c.path), err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(c.path), err)
	}
	return nil
}
