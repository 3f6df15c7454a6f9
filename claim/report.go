package claim

import "github.com/shopspring/decimal"

// =============================================================================
// HR REPORTING - Read-only queries over the collection
// =============================================================================

// ReportLine is one row of the approved-claims report.
type ReportLine struct {
	DateSubmitted string
	LecturerName  string
	LecturerID    string
	TotalAmount   decimal.Decimal
}

// InvoiceLine is one row of a lecturer's invoice.
type InvoiceLine struct {
	DateSubmitted string
	Notes         string
	TotalAmount   decimal.Decimal
	Status        Status
}

// Invoice is the claim report for a single lecturer.
type Invoice struct {
	LecturerID   string
	LecturerName string
	Lines        []InvoiceLine
}

// ReportApproved returns one line per Approved claim, in collection order.
// Returns ErrNoApprovedClaims (informational) instead of an empty report.
func (e *Engine) ReportApproved() ([]ReportLine, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var lines []ReportLine
	for _, c := range e.claims {
		if c.Status != StatusApproved {
			continue
		}
		lines = append(lines, ReportLine{
			DateSubmitted: c.DateSubmitted,
			LecturerName:  c.LecturerName,
			LecturerID:    c.LecturerID,
			TotalAmount:   c.TotalAmount,
		})
	}
	if len(lines) == 0 {
		return nil, ErrNoApprovedClaims
	}
	return lines, nil
}

// InvoiceFor returns the invoice for the given lecturer, claims in collection
// order. Fails with ErrLecturerNotFound when the id is not registered, and
// with ErrNoClaims (informational) when the lecturer has no claims.
func (e *Engine) InvoiceFor(lecturerID string) (Invoice, error) {
	name, ok := e.dir.FullNameOf(lecturerID)
	if !ok {
		return Invoice{}, ErrLecturerNotFound
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	inv := Invoice{LecturerID: lecturerID, LecturerName: name}
	for _, c := range e.claims {
		if !c.BelongsTo(lecturerID) {
			continue
		}
		inv.Lines = append(inv.Lines, InvoiceLine{
			DateSubmitted: c.DateSubmitted,
			Notes:         c.Notes,
			TotalAmount:   c.TotalAmount,
			Status:        c.Status,
		})
	}
	if len(inv.Lines) == 0 {
		return Invoice{}, ErrNoClaims
	}
	return inv, nil
}
