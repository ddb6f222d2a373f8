package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/workhive-hq/workhive-backend-go/internal/domain/employee"
	"github.com/workhive-hq/workhive-backend-go/internal/pkg/validator"
)

// Input carries everything one payroll computation needs. Required monetary
// fields are pointers so "missing" is distinguishable from zero.
type Input struct {
	EmployeeID string
	WorkerType employee.WorkerType

	Salary      *decimal.Decimal // salaried, contractor
	HourlyRate  *decimal.Decimal // hourly
	HoursWorked *decimal.Decimal // hourly

	Allowances     decimal.Decimal
	Deductions     decimal.Decimal
	Overtime       decimal.Decimal
	Bonus          decimal.Decimal
	Reimbursements decimal.Decimal
}

// Result is the engine output. All amounts are rounded to 2 decimal places.
type Result struct {
	EmployeeID      string
	BasePay         decimal.Decimal
	GrossPay        decimal.Decimal
	StatutoryDetail map[string]decimal.Decimal
	TotalStatutory  decimal.Decimal
	NetPay          decimal.Decimal
	IsNegative      bool
}

// Compute derives one payroll result from an input and a statutory schedule.
// Pure: no I/O, no clock, no randomness. Same input, same output.
//
//	base  = salary                      (salaried, contractor)
//	      = hourlyRate * hoursWorked    (hourly)
//	gross = base + overtime + bonus
//	net   = gross + allowances + reimbursements - deductions - statutory
//
// Statutory deductions come from the schedule, applied in priority order.
// A negative net is returned flagged, never clamped to zero.
func Compute(input Input, schedule Schedule) (Result, error) {
	if err := validateInput(input); err != nil {
		return Result{}, err
	}

	var base decimal.Decimal
	switch input.WorkerType {
	case employee.WorkerTypeSalaried, employee.WorkerTypeContractor:
		base = *input.Salary
	case employee.WorkerTypeHourly:
		base = input.HourlyRate.Mul(*input.HoursWorked)
	}

	gross := base.Add(input.Overtime).Add(input.Bonus)

	detail := make(map[string]decimal.Decimal, len(schedule.Rules))
	totalStatutory := decimal.Zero
	for _, rule := range schedule.Rules {
		if !rule.IsActive {
			continue
		}
		amount := applyRule(rule, gross).Round(2)
		detail[rule.Code] = amount
		totalStatutory = totalStatutory.Add(amount)
	}

	net := gross.
		Add(input.Allowances).
		Add(input.Reimbursements).
		Sub(input.Deductions).
		Sub(totalStatutory)

	return Result{
		EmployeeID:      input.EmployeeID,
		BasePay:         base.Round(2),
		GrossPay:        gross.Round(2),
		StatutoryDetail: detail,
		TotalStatutory:  totalStatutory.Round(2),
		NetPay:          net.Round(2),
		IsNegative:      net.IsNegative(),
	}, nil
}

func validateInput(input Input) error {
	var errs validator.ValidationErrors

	switch input.WorkerType {
	case employee.WorkerTypeSalaried, employee.WorkerTypeContractor:
		if input.Salary == nil {
			errs = append(errs, validator.ValidationError{Field: "salary", Message: "is required for this worker type"})
		} else if input.Salary.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "salary", Message: "must be non-negative"})
		}
	case employee.WorkerTypeHourly:
		if input.HourlyRate == nil {
			errs = append(errs, validator.ValidationError{Field: "hourly_rate", Message: "is required for this worker type"})
		} else if input.HourlyRate.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "hourly_rate", Message: "must be non-negative"})
		}
		if input.HoursWorked == nil {
			errs = append(errs, validator.ValidationError{Field: "hours_worked", Message: "is required for this worker type"})
		} else if input.HoursWorked.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "hours_worked", Message: "must be non-negative"})
		}
	default:
		errs = append(errs, validator.ValidationError{Field: "worker_type", Message: "is not a recognized worker type"})
	}

	for field, amount := range map[string]decimal.Decimal{
		"allowances":     input.Allowances,
		"deductions":     input.Deductions,
		"overtime":       input.Overtime,
		"bonus":          input.Bonus,
		"reimbursements": input.Reimbursements,
	} {
		if amount.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be non-negative"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// applyRule computes one rule's deduction from gross pay.
func applyRule(rule StatutoryRule, gross decimal.Decimal) decimal.Decimal {
	switch rule.Kind {
	case RuleKindFlatRate:
		return gross.Mul(rule.Rate)
	case RuleKindProgressive:
		total := decimal.Zero
		for _, bracket := range rule.Brackets {
			if gross.LessThanOrEqual(bracket.LowerBound) {
				break
			}
			upper := gross
			if bracket.UpperBound != nil && bracket.UpperBound.LessThan(gross) {
				upper = *bracket.UpperBound
			}
			total = total.Add(upper.Sub(bracket.LowerBound).Mul(bracket.Rate))
		}
		return total
	}
	return decimal.Zero
}
