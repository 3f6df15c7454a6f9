/*
Package export writes HR reports to Excel workbooks.

The engine's report queries return structured line items; this package is the
rendering collaborator that turns them into .xlsx deliverables for HR. The
on-screen rendering stays with the UI collaborator.
*/
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/campuspay/claim-engine/claim"
)

// ApprovedClaims writes the approved-claims report to an .xlsx workbook at
// path, one row per report line plus a header row.
func ApprovedClaims(lines []claim.ReportLine, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Approved Claims"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("name report sheet: %w", err)
	}

	if err := setRow(f, sheet, 1, []any{"Date Submitted", "Lecturer Name", "Lecturer ID", "Total Amount"}); err != nil {
		return err
	}
	for i, line := range lines {
		total, _ := line.TotalAmount.Float64()
		row := []any{line.DateSubmitted, line.LecturerName, line.LecturerID, total}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("write report workbook: %w", err)
	}
	return nil
}

// Invoice writes a single lecturer's invoice to an .xlsx workbook at path.
// The first row carries the lecturer header, followed by a column header row
// and one row per claim.
func Invoice(inv claim.Invoice, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Invoice"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("name invoice sheet: %w", err)
	}

	title := fmt.Sprintf("Invoice / Claim Report for %s (%s)", inv.LecturerName, inv.LecturerID)
	if err := f.SetCellValue(sheet, "A1", title); err != nil {
		return fmt.Errorf("write invoice title: %w", err)
	}
	if err := setRow(f, sheet, 3, []any{"Date Submitted", "Notes", "Total Amount", "Status"}); err != nil {
		return err
	}
	for i, line := range inv.Lines {
		total, _ := line.TotalAmount.Float64()
		row := []any{line.DateSubmitted, line.Notes, total, string(line.Status)}
		if err := setRow(f, sheet, i+4, row); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("write invoice workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("build cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("write cell %s: %w", cell, err)
		}
	}
	return nil
}
