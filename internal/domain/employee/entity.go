package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkerType discriminates how base pay is derived. Exactly one of the
// salary / hourly field sets is meaningful for a given worker type.
type WorkerType string

const (
	WorkerTypeSalaried   WorkerType = "salaried"
	WorkerTypeHourly     WorkerType = "hourly"
	WorkerTypeContractor WorkerType = "contractor" // contract amount reuses the salary field
)

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)

type Employee struct {
	ID           string
	CompanyID    string
	EmployeeCode string
	FullName     string
	Email        string
	WorkerType   WorkerType
	Status       EmploymentStatus

	// Base pay inputs; which are required depends on WorkerType.
	Salary      *decimal.Decimal
	HourlyRate  *decimal.Decimal
	HoursWorked *decimal.Decimal

	// Adjustments applied regardless of worker type.
	Allowances     decimal.Decimal
	Deductions     decimal.Decimal
	Overtime       decimal.Decimal
	Bonus          decimal.Decimal
	Reimbursements decimal.Decimal

	HireDate  time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// ValidWorkerTypes lists every accepted worker type value.
func ValidWorkerTypes() []string {
	return []string{
		string(WorkerTypeSalaried),
		string(WorkerTypeHourly),
		string(WorkerTypeContractor),
	}
}
