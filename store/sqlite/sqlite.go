/*
Package sqlite provides a SQLite-backed implementation of the storage
interfaces, as an alternative to the JSON file backend.

PURPOSE:
  Same whole-collection contract as store/jsonfile: Load returns the entire
  collection in saved order, Save replaces the entire collection. The
  replacement runs as DELETE + INSERT inside one transaction, so a failed
  save leaves the previous collection intact - strictly better crash behavior
  than the file rewrite, with identical semantics on success.

KEY TABLES:
  claims:    one row per claim, `position` preserves collection order
  lecturers: one row per lecturer, `position` preserves registration order

DECIMALS:
  Hours, rate and total are stored as TEXT and parsed back with
  decimal.NewFromString, avoiding float drift.

WAL MODE:
  Opened with WAL journaling; a single process is still assumed.

USAGE:
  store, err := sqlite.New("./claims.db")
  if err != nil { ... }
  defer store.Close()
  engine, err := claim.NewEngine(ctx, store.Claims(), docs, dir, log)
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/campuspay/claim-engine/claim"
	"github.com/campuspay/claim-engine/lecturer"
)

// Store implements the claim and lecturer storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// New opens (or creates) the database at dbPath and migrates the schema.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS claims (
		position INTEGER PRIMARY KEY,
		id TEXT NOT NULL UNIQUE,
		lecturer_name TEXT NOT NULL,
		lecturer_id TEXT NOT NULL,
		lecturer_email TEXT NOT NULL,
		hours_worked TEXT NOT NULL,
		hourly_rate TEXT NOT NULL,
		total_amount TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		date_submitted TEXT NOT NULL,
		stored_file_path TEXT NOT NULL DEFAULT '',
		original_file_name TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_claims_lecturer ON claims(lecturer_id);
	CREATE INDEX IF NOT EXISTS idx_claims_status ON claims(status);

	CREATE TABLE IF NOT EXISTS lecturers (
		position INTEGER PRIMARY KEY,
		lecturer_id TEXT NOT NULL UNIQUE,
		full_name TEXT NOT NULL,
		email TEXT NOT NULL,
		password_hash TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Claims returns the claims collection store.
func (s *Store) Claims() claim.Store { return claimTable{s} }

// Lecturers returns the lecturers collection store.
func (s *Store) Lecturers() lecturer.Store { return lecturerTable{s} }

// =============================================================================
// CLAIMS TABLE
// =============================================================================

type claimTable struct {
	s *Store
}

func (t claimTable) Load(ctx context.Context) ([]claim.Claim, error) {
	rows, err := t.s.db.QueryContext(ctx, `
		SELECT id, lecturer_name, lecturer_id, lecturer_email,
		       hours_worked, hourly_rate, total_amount,
		       notes, status, date_submitted, stored_file_path, original_file_name
		FROM claims ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("load claims: %w", err)
	}
	defer rows.Close()

	var claims []claim.Claim
	for rows.Next() {
		var c claim.Claim
		var hours, rate, total, status string
		if err := rows.Scan(&c.ID, &c.LecturerName, &c.LecturerID, &c.LecturerEmail,
			&hours, &rate, &total,
			&c.Notes, &status, &c.DateSubmitted, &c.StoredFilePath, &c.OriginalFileName); err != nil {
			return nil, fmt.Errorf("scan claim: %w", err)
		}
		if c.HoursWorked, err = decimal.NewFromString(hours); err != nil {
			return nil, fmt.Errorf("parse hours for claim %s: %w", c.ID, err)
		}
		if c.HourlyRate, err = decimal.NewFromString(rate); err != nil {
			return nil, fmt.Errorf("parse rate for claim %s: %w", c.ID, err)
		}
		if c.TotalAmount, err = decimal.NewFromString(total); err != nil {
			return nil, fmt.Errorf("parse total for claim %s: %w", c.ID, err)
		}
		c.Status = claim.Status(status)
		claims = append(claims, c)
	}
	return claims, rows.Err()
}

func (t claimTable) Save(ctx context.Context, claims []claim.Claim) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	tx, err := t.s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save claims: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM claims`); err != nil {
		return fmt.Errorf("clear claims: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO claims (position, id, lecturer_name, lecturer_id, lecturer_email,
			hours_worked, hourly_rate, total_amount,
			notes, status, date_submitted, stored_file_path, original_file_name)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert claim: %w", err)
	}
	defer stmt.Close()

	for i, c := range claims {
		_, err := stmt.ExecContext(ctx, i, c.ID, c.LecturerName, c.LecturerID, c.LecturerEmail,
			c.HoursWorked.String(), c.HourlyRate.String(), c.TotalAmount.String(),
			c.Notes, string(c.Status), c.DateSubmitted, c.StoredFilePath, c.OriginalFileName)
		if err != nil {
			return fmt.Errorf("insert claim %s: %w", c.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save claims: %w", err)
	}
	return nil
}

// =============================================================================
// LECTURERS TABLE
// =============================================================================

type lecturerTable struct {
	s *Store
}

func (t lecturerTable) Load(ctx context.Context) ([]lecturer.Lecturer, error) {
	rows, err := t.s.db.QueryContext(ctx, `
		SELECT lecturer_id, full_name, email, password_hash
		FROM lecturers ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("load lecturers: %w", err)
	}
	defer rows.Close()

	var lecturers []lecturer.Lecturer
	for rows.Next() {
		var l lecturer.Lecturer
		if err := rows.Scan(&l.LecturerID, &l.FullName, &l.Email, &l.PasswordHash); err != nil {
			return nil, fmt.Errorf("scan lecturer: %w", err)
		}
		lecturers = append(lecturers, l)
	}
	return lecturers, rows.Err()
}

func (t lecturerTable) Save(ctx context.Context, lecturers []lecturer.Lecturer) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	tx, err := t.s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save lecturers: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM lecturers`); err != nil {
		return fmt.Errorf("clear lecturers: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO lecturers (position, lecturer_id, full_name, email, password_hash)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert lecturer: %w", err)
	}
	defer stmt.Close()

	for i, l := range lecturers {
		if _, err := stmt.ExecContext(ctx, i, l.LecturerID, l.FullName, l.Email, l.PasswordHash); err != nil {
			return fmt.Errorf("insert lecturer %s: %w", l.LecturerID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save lecturers: %w", err)
	}
	return nil
}
