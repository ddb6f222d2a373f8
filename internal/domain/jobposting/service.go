package jobposting

import "context"

type JobPostingService interface {
	// Create consumes one posting from the company quota and publishes the
	// posting in the same transaction. Quota exhaustion surfaces as
	// subscription.ErrQuotaExhausted, never as a store error.
	Create(ctx context.Context, req CreateJobPostingRequest) (CreateJobPostingResponse, error)
	List(ctx context.Context) ([]JobPostingResponse, error)
	// ListPublished serves the public job board for one company, cached in
	// Redis with a short TTL.
	ListPublished(ctx context.Context, companyID string) ([]JobPostingResponse, error)
	Get(ctx context.Context, id string) (JobPostingResponse, error)
	Close(ctx context.Context, id string) (JobPostingResponse, error)
}
