/*
Package claim implements the work-hour claim lifecycle.

PURPOSE:
  A claim is a lecturer's request for payment for hours worked. This package
  owns the claim record, the validation and total computation that happen at
  submission, the automatic rejection rule, manager decisions, the login-time
  re-evaluation pass, and the HR report/invoice queries.

KEY CONCEPTS IN THIS FILE (types.go):
  - Claim: the persisted record, including a denormalized snapshot of the
    submitting lecturer's identity
  - Status: the three-state approval lifecycle (Pending/Approved/Rejected)
  - AutoRejectThreshold: the business rule constant - totals under 100
    currency units are rejected without human review

DESIGN PRINCIPLES:
  1. Precision: hours, rate and total use decimal.Decimal, never float64
  2. Snapshot identity: a claim copies the lecturer's name/id/email at
     submission time; later lecturer edits never rewrite history
  3. Stored total: TotalAmount is computed once at submission and persisted,
     matching the on-disk shape consumers already rely on

SEE ALSO:
  - engine.go: submission, decisions and re-evaluation
  - report.go: approved-claims report and per-lecturer invoices
  - store.go: whole-collection persistence contract
*/
package claim

import (
	"os"

	"github.com/shopspring/decimal"
)

// DateLayout is the format of Claim.DateSubmitted.
const DateLayout = "2006-01-02 15:04"

// AutoRejectThreshold is the total below which a claim is rejected without
// human review.
var AutoRejectThreshold = decimal.NewFromInt(100)

// Status is the approval lifecycle state of a claim.
//
// Allowed transitions: Pending->Approved and Pending->Rejected via a manager
// decision, and Pending->Rejected via the automatic rule (at submission or on
// lecturer login). An Approved claim is never auto-rejected.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// Claim is a single work-hour payment claim.
//
// LecturerName, LecturerID and LecturerEmail are a snapshot of the submitter's
// identity at submission time, not a live reference to the lecturer record.
// ID and DateSubmitted are set at creation and never change.
type Claim struct {
	ID               string          `json:"Id"`
	LecturerName     string          `json:"LecturerName"`
	LecturerID       string          `json:"LecturerId"`
	LecturerEmail    string          `json:"LecturerEmail"`
	HoursWorked      decimal.Decimal `json:"HoursWorked"`
	HourlyRate       decimal.Decimal `json:"HourlyRate"`
	TotalAmount      decimal.Decimal `json:"TotalAmount"`
	Notes            string          `json:"Notes"`
	Status           Status          `json:"Status"`
	DateSubmitted    string          `json:"DateSubmitted"`
	StoredFilePath   string          `json:"StoredFilePath,omitempty"`
	OriginalFileName string          `json:"OriginalFileName,omitempty"`
}

// BelongsTo reports whether the claim was submitted under the given lecturer id.
// Matching is exact and case-sensitive.
func (c Claim) BelongsTo(lecturerID string) bool {
	return c.LecturerID == lecturerID
}

// HasFile reports whether the claim carries a supporting document that still
// exists in managed storage.
func (c Claim) HasFile() bool {
	if c.StoredFilePath == "" {
		return false
	}
	_, err := os.Stat(c.StoredFilePath)
	return err == nil
}
