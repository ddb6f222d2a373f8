package employee

import (
	"github.com/shopspring/decimal"
	"github.com/workhive-hq/workhive-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	EmployeeCode string  `json:"employee_code"`
	FullName     string  `json:"full_name"`
	Email        string  `json:"email"`
	WorkerType   string  `json:"worker_type"`
	HireDate     *string `json:"hire_date,omitempty"`

	Salary      *decimal.Decimal `json:"salary,omitempty"`
	HourlyRate  *decimal.Decimal `json:"hourly_rate,omitempty"`
	HoursWorked *decimal.Decimal `json:"hours_worked,omitempty"`

	Allowances     *decimal.Decimal `json:"allowances,omitempty"`
	Deductions     *decimal.Decimal `json:"deductions,omitempty"`
	Overtime       *decimal.Decimal `json:"overtime,omitempty"`
	Bonus          *decimal.Decimal `json:"bonus,omitempty"`
	Reimbursements *decimal.Decimal `json:"reimbursements,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "is required"})
	}
	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "is required"})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email address"})
	}
	if !validator.IsInSlice(r.WorkerType, ValidWorkerTypes()) {
		errs = append(errs, validator.ValidationError{Field: "worker_type", Message: "must be 'salaried', 'hourly' or 'contractor'"})
	}
	if r.HireDate != nil {
		if _, ok := validator.IsValidDate(*r.HireDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "must be formatted as YYYY-MM-DD"})
		}
	}

	switch WorkerType(r.WorkerType) {
	case WorkerTypeSalaried, WorkerTypeContractor:
		if r.Salary == nil {
			errs = append(errs, validator.ValidationError{Field: "salary", Message: "is required for this worker type"})
		} else if r.Salary.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "salary", Message: "must be non-negative"})
		}
	case WorkerTypeHourly:
		if r.HourlyRate == nil {
			errs = append(errs, validator.ValidationError{Field: "hourly_rate", Message: "is required for this worker type"})
		} else if r.HourlyRate.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "hourly_rate", Message: "must be non-negative"})
		}
		if r.HoursWorked != nil && r.HoursWorked.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "hours_worked", Message: "must be non-negative"})
		}
	}

	for field, amount := range map[string]*decimal.Decimal{
		"allowances":     r.Allowances,
		"deductions":     r.Deductions,
		"overtime":       r.Overtime,
		"bonus":          r.Bonus,
		"reimbursements": r.Reimbursements,
	} {
		if amount != nil && amount.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be non-negative"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID       string
	FullName *string `json:"full_name,omitempty"`
	Status   *string `json:"status,omitempty"`

	Salary      *decimal.Decimal `json:"salary,omitempty"`
	HourlyRate  *decimal.Decimal `json:"hourly_rate,omitempty"`
	HoursWorked *decimal.Decimal `json:"hours_worked,omitempty"`

	Allowances     *decimal.Decimal `json:"allowances,omitempty"`
	Deductions     *decimal.Decimal `json:"deductions,omitempty"`
	Overtime       *decimal.Decimal `json:"overtime,omitempty"`
	Bonus          *decimal.Decimal `json:"bonus,omitempty"`
	Reimbursements *decimal.Decimal `json:"reimbursements,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Status != nil && !validator.IsInSlice(*r.Status, []string{
		string(EmploymentStatusActive), string(EmploymentStatusResigned), string(EmploymentStatusTerminated),
	}) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be 'active', 'resigned' or 'terminated'"})
	}

	for field, amount := range map[string]*decimal.Decimal{
		"salary":         r.Salary,
		"hourly_rate":    r.HourlyRate,
		"hours_worked":   r.HoursWorked,
		"allowances":     r.Allowances,
		"deductions":     r.Deductions,
		"overtime":       r.Overtime,
		"bonus":          r.Bonus,
		"reimbursements": r.Reimbursements,
	} {
		if amount != nil && amount.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be non-negative"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID           string `json:"id"`
	CompanyID    string `json:"company_id"`
	EmployeeCode string `json:"employee_code"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	WorkerType   string `json:"worker_type"`
	Status       string `json:"status"`

	Salary      *decimal.Decimal `json:"salary,omitempty"`
	HourlyRate  *decimal.Decimal `json:"hourly_rate,omitempty"`
	HoursWorked *decimal.Decimal `json:"hours_worked,omitempty"`

	Allowances     decimal.Decimal `json:"allowances"`
	Deductions     decimal.Decimal `json:"deductions"`
	Overtime       decimal.Decimal `json:"overtime"`
	Bonus          decimal.Decimal `json:"bonus"`
	Reimbursements decimal.Decimal `json:"reimbursements"`

	HireDate string `json:"hire_date"`
}
