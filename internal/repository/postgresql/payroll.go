package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/workhive-hq/workhive-backend-go/internal/domain/payroll"
	"github.com/workhive-hq/workhive-backend-go/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// ========== RECORDS ==========

const payrollRecordColumns = `
	p.id, p.employee_id, p.company_id, p.period_month, p.period_year,
	p.base_pay, p.gross_pay, p.allowances, p.deductions, p.overtime, p.bonus, p.reimbursements,
	p.statutory_detail, p.total_statutory, p.net_pay, p.is_negative,
	p.status, p.payslip_url, p.paid_at, p.paid_by, p.created_at, p.updated_at,
	e.full_name, e.employee_code
`

func scanPayrollRecord(row pgx.Row) (*payroll.PayrollRecord, error) {
	var rec payroll.PayrollRecord
	var detail []byte
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.CompanyID, &rec.PeriodMonth, &rec.PeriodYear,
		&rec.BasePay, &rec.GrossPay, &rec.Allowances, &rec.Deductions, &rec.Overtime, &rec.Bonus, &rec.Reimbursements,
		&detail, &rec.TotalStatutory, &rec.NetPay, &rec.IsNegative,
		&rec.Status, &rec.PayslipURL, &rec.PaidAt, &rec.PaidBy, &rec.CreatedAt, &rec.UpdatedAt,
		&rec.EmployeeName, &rec.EmployeeCode,
	)
	if err != nil {
		return nil, err
	}
	if len(detail) > 0 {
		if err := json.Unmarshal(detail, &rec.StatutoryDetail); err != nil {
			return nil, fmt.Errorf("failed to decode statutory detail: %w", err)
		}
	}
	return &rec, nil
}

func (r *payrollRepository) CreateRecord(ctx context.Context, rec *payroll.PayrollRecord) error {
	q := GetQuerier(ctx, r.db)

	detail, err := json.Marshal(rec.StatutoryDetail)
	if err != nil {
		return fmt.Errorf("failed to encode statutory detail: %w", err)
	}

	query := `
		INSERT INTO payroll_records (
			id, employee_id, company_id, period_month, period_year,
			base_pay, gross_pay, allowances, deductions, overtime, bonus, reimbursements,
			statutory_detail, total_statutory, net_pay, is_negative, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (employee_id, period_month, period_year) DO NOTHING
		RETURNING created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		rec.ID, rec.EmployeeID, rec.CompanyID, rec.PeriodMonth, rec.PeriodYear,
		rec.BasePay, rec.GrossPay, rec.Allowances, rec.Deductions, rec.Overtime, rec.Bonus, rec.Reimbursements,
		detail, rec.TotalStatutory, rec.NetPay, rec.IsNegative, rec.Status,
	).Scan(&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			// conflict target hit: a record for this period already exists
			return payroll.ErrPayrollRecordAlreadyExists
		}
		return fmt.Errorf("failed to create payroll record: %w", err)
	}

	return nil
}

func (r *payrollRepository) GetRecordByID(ctx context.Context, id, companyID string) (*payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollRecordColumns + `
		FROM payroll_records p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.id = $1 AND p.company_id = $2
	`

	rec, err := scanPayrollRecord(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, payroll.ErrPayrollRecordNotFound
		}
		return nil, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return rec, nil
}

func (r *payrollRepository) GetRecordByPeriod(ctx context.Context, employeeID string, month, year int) (*payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollRecordColumns + `
		FROM payroll_records p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.employee_id = $1 AND p.period_month = $2 AND p.period_year = $3
	`

	rec, err := scanPayrollRecord(q.QueryRow(ctx, query, employeeID, month, year))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, payroll.ErrPayrollRecordNotFound
		}
		return nil, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return rec, nil
}

func (r *payrollRepository) ListRecordsByPeriod(ctx context.Context, companyID string, month, year int) ([]payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollRecordColumns + `
		FROM payroll_records p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.company_id = $1 AND p.period_month = $2 AND p.period_year = $3
		ORDER BY e.employee_code
	`

	rows, err := q.Query(ctx, query, companyID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.PayrollRecord
	for rows.Next() {
		rec, err := scanPayrollRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, *rec)
	}

	return records, rows.Err()
}

func (r *payrollRepository) MarkPaid(ctx context.Context, id, companyID, paidBy string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_records
		SET status = 'paid', paid_at = NOW(), paid_by = $3, updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND status = 'draft'
	`

	tag, err := q.Exec(ctx, query, id, companyID, paidBy)
	if err != nil {
		return fmt.Errorf("failed to mark payroll record paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayrollRecordNotFound
	}

	return nil
}

func (r *payrollRepository) SetPayslipURL(ctx context.Context, id, url string) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE payroll_records SET payslip_url = $2, updated_at = NOW() WHERE id = $1`

	tag, err := q.Exec(ctx, query, id, url)
	if err != nil {
		return fmt.Errorf("failed to set payslip url: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayrollRecordNotFound
	}

	return nil
}

func (r *payrollRepository) DeleteRecord(ctx context.Context, id, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM payroll_records WHERE id = $1 AND company_id = $2 AND status = 'draft'`

	tag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete payroll record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayrollRecordNotFound
	}

	return nil
}

// ========== STATUTORY SCHEDULE ==========

func (r *payrollRepository) GetSchedule(ctx context.Context, companyID string) (payroll.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, code, name, kind, rate, brackets, priority, is_active, created_at, updated_at
		FROM statutory_rules
		WHERE company_id = $1
		ORDER BY priority, code
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return payroll.Schedule{}, fmt.Errorf("failed to get statutory schedule: %w", err)
	}
	defer rows.Close()

	var schedule payroll.Schedule
	for rows.Next() {
		var rule payroll.StatutoryRule
		var brackets []byte
		err := rows.Scan(
			&rule.ID, &rule.CompanyID, &rule.Code, &rule.Name, &rule.Kind,
			&rule.Rate, &brackets, &rule.Priority, &rule.IsActive,
			&rule.CreatedAt, &rule.UpdatedAt,
		)
		if err != nil {
			return payroll.Schedule{}, fmt.Errorf("failed to scan statutory rule: %w", err)
		}
		if len(brackets) > 0 {
			if err := json.Unmarshal(brackets, &rule.Brackets); err != nil {
				return payroll.Schedule{}, fmt.Errorf("failed to decode brackets: %w", err)
			}
		}
		schedule.Rules = append(schedule.Rules, rule)
	}

	return schedule, rows.Err()
}

func (r *payrollRepository) ReplaceSchedule(ctx context.Context, companyID string, rules []payroll.StatutoryRule) error {
	return WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		if _, err := q.Exec(txCtx, `DELETE FROM statutory_rules WHERE company_id = $1`, companyID); err != nil {
			return fmt.Errorf("failed to clear statutory schedule: %w", err)
		}

		query := `
			INSERT INTO statutory_rules (id, company_id, code, name, kind, rate, brackets, priority, is_active)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`
		for _, rule := range rules {
			brackets, err := json.Marshal(rule.Brackets)
			if err != nil {
				return fmt.Errorf("failed to encode brackets: %w", err)
			}
			if _, err := q.Exec(txCtx, query,
				rule.ID, companyID, rule.Code, rule.Name, rule.Kind,
				rule.Rate, brackets, rule.Priority, rule.IsActive,
			); err != nil {
				return fmt.Errorf("failed to insert statutory rule: %w", err)
			}
		}

		return nil
	})
}
