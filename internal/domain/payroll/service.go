package payroll

import "context"

// PayrollService orchestrates the engine against stored employees and the
// company statutory schedule. Company scope comes from JWT claims in ctx.
type PayrollService interface {
	Generate(ctx context.Context, req GeneratePayrollRequest) (GeneratePayrollResponse, error)
	List(ctx context.Context, month, year int) ([]PayrollRecordResponse, error)
	Get(ctx context.Context, id string) (PayrollRecordResponse, error)
	Finalize(ctx context.Context, id string) (PayrollRecordResponse, error)
	Delete(ctx context.Context, id string) error
	// GeneratePayslip renders the record as a PDF, stores it, and returns
	// its URL.
	GeneratePayslip(ctx context.Context, id string) (string, error)

	GetSchedule(ctx context.Context) ([]StatutoryRuleResponse, error)
	ReplaceSchedule(ctx context.Context, req ReplaceScheduleRequest) ([]StatutoryRuleResponse, error)
}
