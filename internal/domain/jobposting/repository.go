package jobposting

import "context"

type JobPostingRepository interface {
	// Create inserts the posting row. Callers run it inside the same
	// transaction as the quota decrement; the insert must never happen
	// when the decrement did not succeed.
	Create(ctx context.Context, posting *JobPosting) error
	GetByID(ctx context.Context, id, companyID string) (*JobPosting, error)
	ListByCompanyID(ctx context.Context, companyID string) ([]JobPosting, error)
	ListPublishedByCompanyID(ctx context.Context, companyID string) ([]JobPosting, error)
	Close(ctx context.Context, id, companyID string) error
}
