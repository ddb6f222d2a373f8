package payslip

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/jung-kurt/gofpdf"

	"github.com/workhive-hq/workhive-backend-go/internal/domain/payroll"
)

// Render produces the payslip PDF for one payroll record. The caller is
// responsible for storing the bytes.
func Render(rec *payroll.PayrollRecord) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	if rec.EmployeeName != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", *rec.EmployeeName))
		pdf.Ln(7)
	}
	if rec.EmployeeCode != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Employee Code: %s", *rec.EmployeeCode))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Period: %04d-%02d", rec.PeriodYear, rec.PeriodMonth))
	pdf.Ln(10)

	pdf.Cell(0, 8, fmt.Sprintf("Base Pay: %s", rec.BasePay.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Overtime: %s", rec.Overtime.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Bonus: %s", rec.Bonus.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Gross Pay: %s", rec.GrossPay.StringFixed(2)))
	pdf.Ln(10)

	// Stable ordering so re-renders are identical.
	codes := make([]string, 0, len(rec.StatutoryDetail))
	for code := range rec.StatutoryDetail {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		pdf.Cell(0, 8, fmt.Sprintf("Statutory (%s): -%s", code, rec.StatutoryDetail[code].StringFixed(2)))
		pdf.Ln(7)
	}

	pdf.Cell(0, 8, fmt.Sprintf("Allowances: %s", rec.Allowances.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Reimbursements: %s", rec.Reimbursements.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Deductions: -%s", rec.Deductions.StringFixed(2)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Net Pay: %s", rec.NetPay.StringFixed(2)))
	if rec.IsNegative {
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.Cell(0, 8, "Net pay is negative for this period.")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render payslip: %w", err)
	}

	return buf.Bytes(), nil
}
