package payroll

import "context"

type PayrollRepository interface {
	CreateRecord(ctx context.Context, record *PayrollRecord) error
	GetRecordByID(ctx context.Context, id, companyID string) (*PayrollRecord, error)
	GetRecordByPeriod(ctx context.Context, employeeID string, month, year int) (*PayrollRecord, error)
	ListRecordsByPeriod(ctx context.Context, companyID string, month, year int) ([]PayrollRecord, error)
	MarkPaid(ctx context.Context, id, companyID, paidBy string) error
	SetPayslipURL(ctx context.Context, id, url string) error
	DeleteRecord(ctx context.Context, id, companyID string) error

	GetSchedule(ctx context.Context, companyID string) (Schedule, error)
	ReplaceSchedule(ctx context.Context, companyID string, rules []StatutoryRule) error
}
