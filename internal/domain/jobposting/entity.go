package jobposting

import (
	"time"

	"github.com/shopspring/decimal"
)

// PostingStatus enum
type PostingStatus string

const (
	PostingStatusPublished PostingStatus = "published"
	PostingStatusClosed    PostingStatus = "closed"
)

// EmploymentType enum
type EmploymentType string

const (
	EmploymentTypeFullTime EmploymentType = "full_time"
	EmploymentTypePartTime EmploymentType = "part_time"
	EmploymentTypeContract EmploymentType = "contract"
	EmploymentTypeIntern   EmploymentType = "internship"
)

func ValidEmploymentTypes() []string {
	return []string{
		string(EmploymentTypeFullTime),
		string(EmploymentTypePartTime),
		string(EmploymentTypeContract),
		string(EmploymentTypeIntern),
	}
}

// JobPosting - a published vacancy. Creation consumes one unit of the
// company's posting quota.
type JobPosting struct {
	ID          string
	CompanyID   string
	Title       string
	Description string
	Location    string
	Employment  EmploymentType
	SalaryMin   *decimal.Decimal
	SalaryMax   *decimal.Decimal
	Status      PostingStatus
	PostedBy    string
	PostedAt    time.Time
	ClosedAt    *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
