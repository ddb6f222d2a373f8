package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatutoryRuleKind enum
type StatutoryRuleKind string

const (
	RuleKindFlatRate    StatutoryRuleKind = "flat_rate"
	RuleKindProgressive StatutoryRuleKind = "progressive"
)

// TaxBracket is one slice of a progressive schedule. UpperBound nil means
// the bracket is open-ended.
type TaxBracket struct {
	LowerBound decimal.Decimal  `json:"lower_bound"`
	UpperBound *decimal.Decimal `json:"upper_bound,omitempty"`
	Rate       decimal.Decimal  `json:"rate"`
}

// StatutoryRule is one statutory deduction derived from gross pay. Rules are
// configuration data per company; the engine never hard-codes a schedule.
type StatutoryRule struct {
	ID        string
	CompanyID string
	Code      string // e.g. "pension", "income_tax"
	Name      string
	Kind      StatutoryRuleKind
	Rate      decimal.Decimal // flat_rate only, fraction of gross (0.10 = 10%)
	Brackets  []TaxBracket    // progressive only, ordered by lower bound
	Priority  int
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Schedule is the full statutory rule set applied to one payroll computation.
type Schedule struct {
	Rules []StatutoryRule
}

// PayrollStatus enum
type PayrollStatus string

const (
	PayrollStatusDraft PayrollStatus = "draft"
	PayrollStatusPaid  PayrollStatus = "paid"
)

// PayrollRecord - persisted engine output for one employee and period
type PayrollRecord struct {
	ID          string
	EmployeeID  string
	CompanyID   string
	PeriodMonth int
	PeriodYear  int

	BasePay         decimal.Decimal
	GrossPay        decimal.Decimal
	Allowances      decimal.Decimal
	Deductions      decimal.Decimal
	Overtime        decimal.Decimal
	Bonus           decimal.Decimal
	Reimbursements  decimal.Decimal
	StatutoryDetail map[string]decimal.Decimal // rule code -> amount
	TotalStatutory  decimal.Decimal
	NetPay          decimal.Decimal
	IsNegative      bool // net pay went below zero; caller decides policy

	Status     PayrollStatus
	PayslipURL *string
	PaidAt     *time.Time
	PaidBy     *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}
