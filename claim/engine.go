/*
engine.go - Claim lifecycle operations

PURPOSE:
  The Engine owns the in-memory claims collection and applies the business
  rules: submission validation, total computation, the automatic rejection
  rule, manager decisions, and the login-time re-evaluation pass.

PERSISTENCE MODEL:
  The collection is loaded once when the Engine is constructed and held in
  memory for the process lifetime. Every successful mutation is immediately
  followed by a synchronous whole-collection Save. A Save failure aborts the
  operation; there is no retry.

AUTOMATIC REJECTION:
  total = round(hours * rate, 2)
  status = Rejected if total < 100, else Pending

  The same rule runs again for a lecturer's pending claims on login. Approved
  claims are never auto-rejected.

SEE ALSO:
  - report.go: read-only report and invoice queries
  - store.go: persistence contract
*/
package claim

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// =============================================================================
// COLLABORATOR INTERFACES
// =============================================================================

// DocumentStore copies a supporting document into managed storage.
// Implemented by attach.Manager.
type DocumentStore interface {
	// Store validates sourcePath and copies it into managed storage under a
	// fresh unique name. Returns the managed path and the original base name.
	Store(sourcePath string) (storedPath, originalName string, err error)
}

// DirectoryLookup resolves a lecturer id to a display name.
// Implemented by lecturer.Directory.
type DirectoryLookup interface {
	FullNameOf(lecturerID string) (string, bool)
}

// =============================================================================
// ENGINE
// =============================================================================

// Engine holds the claims collection and applies the lifecycle rules.
// Construct it once at process start and hand it to the UI collaborator.
type Engine struct {
	mu     sync.RWMutex
	claims []Claim

	store Store
	docs  DocumentStore
	dir   DirectoryLookup
	log   zerolog.Logger
}

// NewEngine loads the claims collection from store and returns an Engine
// bound to it. docs may be nil when attachment support is disabled; dir is
// required only for InvoiceFor.
func NewEngine(ctx context.Context, store Store, docs DocumentStore, dir DirectoryLookup, log zerolog.Logger) (*Engine, error) {
	claims, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load claims: %w", err)
	}
	return &Engine{
		claims: claims,
		store:  store,
		docs:   docs,
		dir:    dir,
		log:    log,
	}, nil
}

// Claims returns a copy of the collection in submission order.
func (e *Engine) Claims() []Claim {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]Claim, len(e.claims))
	copy(out, e.claims)
	return out
}

// ClaimsFor returns a copy of the claims belonging to lecturerID, in
// submission order.
func (e *Engine) ClaimsFor(lecturerID string) []Claim {
	e.mu.RLock()
	defer e.mu.RUnlock()
	var out []Claim
	for _, c := range e.claims {
		if c.BelongsTo(lecturerID) {
			out = append(out, c)
		}
	}
	return out
}

// =============================================================================
// SUBMISSION
// =============================================================================

// SubmitInput is the raw submission as collected by the UI collaborator.
// HoursWorked and HourlyRate arrive as unparsed text.
type SubmitInput struct {
	LecturerName  string
	LecturerID    string
	LecturerEmail string
	HoursWorked   string
	HourlyRate    string
	Notes         string

	// AttachmentPath optionally points at a supporting document on local
	// disk. It is copied into managed storage before the claim is created.
	AttachmentPath string
}

// parse validates required fields and the numeric inputs.
// Returns a *ValidationError without touching any state on failure.
func (in SubmitInput) parse() (hours, rate decimal.Decimal, err error) {
	required := []struct {
		field, value string
	}{
		{"lecturer name", in.LecturerName},
		{"lecturer id", in.LecturerID},
		{"lecturer email", in.LecturerEmail},
		{"hours worked", in.HoursWorked},
		{"hourly rate", in.HourlyRate},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return decimal.Zero, decimal.Zero, &ValidationError{Field: r.field, Reason: "required"}
		}
	}

	hours, err = decimal.NewFromString(strings.TrimSpace(in.HoursWorked))
	if err != nil {
		return decimal.Zero, decimal.Zero, &ValidationError{Field: "hours worked", Reason: "not a number"}
	}
	rate, err = decimal.NewFromString(strings.TrimSpace(in.HourlyRate))
	if err != nil {
		return decimal.Zero, decimal.Zero, &ValidationError{Field: "hourly rate", Reason: "not a number"}
	}
	if hours.IsNegative() {
		return decimal.Zero, decimal.Zero, &ValidationError{Field: "hours worked", Reason: "must not be negative"}
	}
	if rate.IsNegative() {
		return decimal.Zero, decimal.Zero, &ValidationError{Field: "hourly rate", Reason: "must not be negative"}
	}
	return hours, rate, nil
}

// Submit validates in, applies the automatic rejection rule, stores the
// attachment if one was supplied, appends the new claim and persists the
// whole collection.
//
// On any validation or attachment failure no claim is created and nothing is
// persisted.
func (e *Engine) Submit(ctx context.Context, in SubmitInput) (Claim, error) {
	hours, rate, err := in.parse()
	if err != nil {
		return Claim{}, err
	}

	total := hours.Mul(rate).Round(2)
	status := StatusPending
	if total.LessThan(AutoRejectThreshold) {
		status = StatusRejected
	}

	var storedPath, originalName string
	if in.AttachmentPath != "" {
		if e.docs == nil {
			return Claim{}, &ValidationError{Field: "attachment", Reason: "attachments are not supported"}
		}
		storedPath, originalName, err = e.docs.Store(in.AttachmentPath)
		if err != nil {
			return Claim{}, err
		}
	}

	c := Claim{
		ID:               uuid.NewString(),
		LecturerName:     strings.TrimSpace(in.LecturerName),
		LecturerID:       strings.TrimSpace(in.LecturerID),
		LecturerEmail:    strings.TrimSpace(in.LecturerEmail),
		HoursWorked:      hours,
		HourlyRate:       rate,
		TotalAmount:      total,
		Notes:            strings.TrimSpace(in.Notes),
		Status:           status,
		DateSubmitted:    time.Now().Format(DateLayout),
		StoredFilePath:   storedPath,
		OriginalFileName: originalName,
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.claims = append(e.claims, c)
	if err := e.store.Save(ctx, e.claims); err != nil {
		// keep memory in step with disk
		e.claims = e.claims[:len(e.claims)-1]
		return Claim{}, fmt.Errorf("save claims: %w", err)
	}

	e.log.Info().
		Str("claim_id", c.ID).
		Str("lecturer_id", c.LecturerID).
		Str("total", c.TotalAmount.String()).
		Str("status", string(c.Status)).
		Msg("claim submitted")
	return c, nil
}

// =============================================================================
// LOGIN-TIME RE-EVALUATION
// =============================================================================

// ReEvaluateOnLogin applies the automatic rejection rule to every Pending
// claim belonging to lecturerID. Approved and already-Rejected claims are
// untouched, so repeated calls are idempotent. Returns the number of claims
// that changed state.
//
// The collection is persisted even when nothing changed, matching the
// established save-on-login behavior.
func (e *Engine) ReEvaluateOnLogin(ctx context.Context, lecturerID string) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	changed := 0
	for i := range e.claims {
		c := &e.claims[i]
		if !c.BelongsTo(lecturerID) || c.Status != StatusPending {
			continue
		}
		if c.TotalAmount.LessThan(AutoRejectThreshold) {
			c.Status = StatusRejected
			changed++
		}
	}

	if err := e.store.Save(ctx, e.claims); err != nil {
		return changed, fmt.Errorf("save claims: %w", err)
	}
	if changed > 0 {
		e.log.Info().
			Str("lecturer_id", lecturerID).
			Int("rejected", changed).
			Msg("pending claims auto-rejected on login")
	}
	return changed, nil
}

// =============================================================================
// MANAGER DECISIONS
// =============================================================================

type Decision string

const (
	DecisionApprove Decision = "Approve"
	DecisionReject  Decision = "Reject"
)

// Decide sets the claim's status to the given decision and persists.
//
// The status is set unconditionally: there is no guard on the current state
// or the total amount, so a manager may flip a claim between Approved and
// Rejected in either direction.
func (e *Engine) Decide(ctx context.Context, claimID string, d Decision) error {
	var status Status
	switch d {
	case DecisionApprove:
		status = StatusApproved
	case DecisionReject:
		status = StatusRejected
	default:
		return &ValidationError{Field: "decision", Reason: fmt.Sprintf("unknown decision %q", d)}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.claims {
		if e.claims[i].ID != claimID {
			continue
		}
		previous := e.claims[i].Status
		e.claims[i].Status = status
		if err := e.store.Save(ctx, e.claims); err != nil {
			e.claims[i].Status = previous
			return fmt.Errorf("save claims: %w", err)
		}
		e.log.Info().
			Str("claim_id", claimID).
			Str("from", string(previous)).
			Str("to", string(status)).
			Msg("manager decision recorded")
		return nil
	}
	return ErrClaimNotFound
}
