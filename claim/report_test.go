package claim_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuspay/claim-engine/claim"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// =============================================================================
// APPROVED-CLAIMS REPORT
// =============================================================================

func TestReportApproved_Empty_Informational(t *testing.T) {
	engine, _ := seededEngine(t, []claim.Claim{pendingClaim("c1", "L001", "150")}, stubDirectory{})

	lines, err := engine.ReportApproved()

	assert.Nil(t, lines)
	assert.ErrorIs(t, err, claim.ErrNoApprovedClaims)
	assert.True(t, claim.IsInformational(err))
}

func TestReportApproved_OnlyApprovedInCollectionOrder(t *testing.T) {
	a := pendingClaim("c1", "L001", "150")
	a.Status = claim.StatusApproved
	b := pendingClaim("c2", "L002", "200")
	b.Status = claim.StatusApproved
	b.LecturerName = "B. Naidoo"
	seed := []claim.Claim{a, pendingClaim("c0", "L003", "120"), b}
	engine, _ := seededEngine(t, seed, stubDirectory{})

	lines, err := engine.ReportApproved()

	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "L001", lines[0].LecturerID)
	assert.Equal(t, "B. Naidoo", lines[1].LecturerName)
	assert.True(t, lines[1].TotalAmount.Equal(dec("200")))
}

// =============================================================================
// PER-LECTURER INVOICES
// =============================================================================

func TestInvoiceFor_UnknownLecturer(t *testing.T) {
	engine, _ := seededEngine(t, nil, stubDirectory{"L001": "A. Mokoena"})

	_, err := engine.InvoiceFor("L999")

	assert.ErrorIs(t, err, claim.ErrLecturerNotFound)
	assert.False(t, claim.IsInformational(err))
}

func TestInvoiceFor_LecturerWithoutClaims_Informational(t *testing.T) {
	engine, _ := seededEngine(t, []claim.Claim{pendingClaim("c1", "L002", "150")},
		stubDirectory{"L001": "A. Mokoena"})

	_, err := engine.InvoiceFor("L001")

	assert.ErrorIs(t, err, claim.ErrNoClaims)
	assert.True(t, claim.IsInformational(err))
}

func TestInvoiceFor_LinesInCollectionOrder(t *testing.T) {
	first := pendingClaim("c1", "L001", "150")
	first.Notes = "tutorials"
	second := pendingClaim("c2", "L001", "90")
	second.Status = claim.StatusRejected
	second.Notes = "marking"
	seed := []claim.Claim{first, pendingClaim("cx", "L002", "500"), second}
	engine, _ := seededEngine(t, seed, stubDirectory{"L001": "A. Mokoena"})

	inv, err := engine.InvoiceFor("L001")

	require.NoError(t, err)
	assert.Equal(t, "A. Mokoena", inv.LecturerName)
	assert.Equal(t, "L001", inv.LecturerID)
	require.Len(t, inv.Lines, 2)
	assert.Equal(t, "tutorials", inv.Lines[0].Notes)
	assert.Equal(t, claim.StatusPending, inv.Lines[0].Status)
	assert.Equal(t, "marking", inv.Lines[1].Notes)
	assert.True(t, inv.Lines[1].TotalAmount.Equal(dec("90")))
}

// Invoices reflect the live collection: a decision made after submission
// shows up on the next invoice.
func TestInvoiceFor_ReflectsLaterDecisions(t *testing.T) {
	engine, _ := seededEngine(t, []claim.Claim{pendingClaim("c1", "L001", "150")},
		stubDirectory{"L001": "A. Mokoena"})
	ctx := context.Background()

	require.NoError(t, engine.Decide(ctx, "c1", claim.DecisionApprove))

	inv, err := engine.InvoiceFor("L001")
	require.NoError(t, err)
	assert.Equal(t, claim.StatusApproved, inv.Lines[0].Status)
}
