package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/workhive-hq/workhive-backend-go/internal/pkg/validator"
)

type GeneratePayrollRequest struct {
	Month       int      `json:"month"`
	Year        int      `json:"year"`
	EmployeeIDs []string `json:"employee_ids,omitempty"` // empty = all active employees
}

func (r *GeneratePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be a valid year"})
	}
	for _, id := range r.EmployeeIDs {
		if !validator.IsValidUUID(id) {
			errs = append(errs, validator.ValidationError{Field: "employee_ids", Message: "must contain valid UUIDs"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type StatutoryRuleRequest struct {
	Code     string              `json:"code"`
	Name     string              `json:"name"`
	Kind     string              `json:"kind"`
	Rate     *decimal.Decimal    `json:"rate,omitempty"`
	Brackets []TaxBracketRequest `json:"brackets,omitempty"`
	Priority int                 `json:"priority"`
}

type TaxBracketRequest struct {
	LowerBound decimal.Decimal  `json:"lower_bound"`
	UpperBound *decimal.Decimal `json:"upper_bound,omitempty"`
	Rate       decimal.Decimal  `json:"rate"`
}

// ReplaceScheduleRequest swaps a company's whole statutory rule set.
type ReplaceScheduleRequest struct {
	Rules []StatutoryRuleRequest `json:"rules"`
}

func (r *ReplaceScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	seen := make(map[string]bool, len(r.Rules))
	for _, rule := range r.Rules {
		if validator.IsEmpty(rule.Code) {
			errs = append(errs, validator.ValidationError{Field: "rules", Message: "every rule requires a code"})
		} else if seen[rule.Code] {
			errs = append(errs, validator.ValidationError{Field: "rules", Message: "rule codes must be unique"})
		}
		seen[rule.Code] = true

		switch StatutoryRuleKind(rule.Kind) {
		case RuleKindFlatRate:
			if rule.Rate == nil || rule.Rate.IsNegative() || rule.Rate.GreaterThan(decimal.NewFromInt(1)) {
				errs = append(errs, validator.ValidationError{Field: "rules", Message: "flat_rate rules require a rate between 0 and 1"})
			}
		case RuleKindProgressive:
			if len(rule.Brackets) == 0 {
				errs = append(errs, validator.ValidationError{Field: "rules", Message: "progressive rules require at least one bracket"})
			}
			prev := decimal.NewFromInt(-1)
			for _, b := range rule.Brackets {
				if b.LowerBound.IsNegative() || b.Rate.IsNegative() {
					errs = append(errs, validator.ValidationError{Field: "rules", Message: "bracket bounds and rates must be non-negative"})
				}
				if b.LowerBound.LessThanOrEqual(prev) {
					errs = append(errs, validator.ValidationError{Field: "rules", Message: "brackets must be ordered by ascending lower bound"})
				}
				if b.UpperBound != nil && b.UpperBound.LessThanOrEqual(b.LowerBound) {
					errs = append(errs, validator.ValidationError{Field: "rules", Message: "bracket upper bound must exceed its lower bound"})
				}
				prev = b.LowerBound
			}
		default:
			errs = append(errs, validator.ValidationError{Field: "rules", Message: "kind must be 'flat_rate' or 'progressive'"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayrollRecordResponse struct {
	ID          string `json:"id"`
	EmployeeID  string `json:"employee_id"`
	PeriodMonth int    `json:"period_month"`
	PeriodYear  int    `json:"period_year"`

	BasePay         decimal.Decimal            `json:"base_pay"`
	GrossPay        decimal.Decimal            `json:"gross_pay"`
	Allowances      decimal.Decimal            `json:"allowances"`
	Deductions      decimal.Decimal            `json:"deductions"`
	Overtime        decimal.Decimal            `json:"overtime"`
	Bonus           decimal.Decimal            `json:"bonus"`
	Reimbursements  decimal.Decimal            `json:"reimbursements"`
	StatutoryDetail map[string]decimal.Decimal `json:"statutory_detail"`
	TotalStatutory  decimal.Decimal            `json:"total_statutory"`
	NetPay          decimal.Decimal            `json:"net_pay"`
	IsNegative      bool                       `json:"is_negative"`

	Status     string     `json:"status"`
	PayslipURL *string    `json:"payslip_url,omitempty"`
	PaidAt     *time.Time `json:"paid_at,omitempty"`

	EmployeeName *string `json:"employee_name,omitempty"`
	EmployeeCode *string `json:"employee_code,omitempty"`
}

type GeneratePayrollResponse struct {
	Generated int                     `json:"generated"`
	Skipped   int                     `json:"skipped"`
	Records   []PayrollRecordResponse `json:"records"`
}

type StatutoryRuleResponse struct {
	ID       string              `json:"id"`
	Code     string              `json:"code"`
	Name     string              `json:"name"`
	Kind     string              `json:"kind"`
	Rate     *decimal.Decimal    `json:"rate,omitempty"`
	Brackets []TaxBracketRequest `json:"brackets,omitempty"`
	Priority int                 `json:"priority"`
	IsActive bool                `json:"is_active"`
}
