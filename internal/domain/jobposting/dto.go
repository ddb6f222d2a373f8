package jobposting

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/workhive-hq/workhive-backend-go/internal/pkg/validator"
)

type CreateJobPostingRequest struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Location    string           `json:"location"`
	Employment  string           `json:"employment_type"`
	SalaryMin   *decimal.Decimal `json:"salary_min,omitempty"`
	SalaryMax   *decimal.Decimal `json:"salary_max,omitempty"`
}

func (r *CreateJobPostingRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "is required"})
	}
	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{Field: "description", Message: "is required"})
	}
	if !validator.IsInSlice(r.Employment, ValidEmploymentTypes()) {
		errs = append(errs, validator.ValidationError{Field: "employment_type", Message: "must be 'full_time', 'part_time', 'contract' or 'internship'"})
	}
	if r.SalaryMin != nil && r.SalaryMin.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "salary_min", Message: "must be non-negative"})
	}
	if r.SalaryMax != nil && r.SalaryMax.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "salary_max", Message: "must be non-negative"})
	}
	if r.SalaryMin != nil && r.SalaryMax != nil && r.SalaryMax.LessThan(*r.SalaryMin) {
		errs = append(errs, validator.ValidationError{Field: "salary_max", Message: "must be greater than or equal to salary_min"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type JobPostingResponse struct {
	ID          string           `json:"id"`
	CompanyID   string           `json:"company_id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Location    string           `json:"location"`
	Employment  string           `json:"employment_type"`
	SalaryMin   *decimal.Decimal `json:"salary_min,omitempty"`
	SalaryMax   *decimal.Decimal `json:"salary_max,omitempty"`
	Status      string           `json:"status"`
	PostedAt    time.Time        `json:"posted_at"`
	ClosedAt    *time.Time       `json:"closed_at,omitempty"`
}

type CreateJobPostingResponse struct {
	Posting           JobPostingResponse `json:"posting"`
	PostingsRemaining int                `json:"postings_remaining"`
}
