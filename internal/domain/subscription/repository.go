package subscription

import (
	"context"
	"time"
)

// PlanRepository handles subscription plan data operations
type PlanRepository interface {
	GetByID(ctx context.Context, id string) (Plan, error)
	ListActive(ctx context.Context) ([]Plan, error)
}

// SubscriptionRepository handles subscription data operations
type SubscriptionRepository interface {
	GetByCompanyID(ctx context.Context, companyID string) (Subscription, error)
	UpdateStatus(ctx context.Context, id string, status SubscriptionStatus) error

	// TryConsumeJobPosting atomically decrements the company's posting
	// counter. Returns (false, nil) when the counter is absent or zero; a
	// non-nil error means the store failed and nothing can be said about
	// the quota.
	TryConsumeJobPosting(ctx context.Context, companyID string) (bool, error)

	// ReplenishJobPostings resets the counter to the plan allotment and
	// activates the subscription for the paid period.
	ReplenishJobPostings(ctx context.Context, subscriptionID string, allotment int, periodStart, periodEnd time.Time) error

	// UpdateExpiredToStatus bulk-expires subscriptions past their period end.
	UpdateExpiredToStatus(ctx context.Context, cutoff time.Time, fromStatuses []SubscriptionStatus, toStatus SubscriptionStatus) (int64, error)
}

// InvoiceRepository handles invoice data operations
type InvoiceRepository interface {
	GetByProviderID(ctx context.Context, providerInvoiceID string) (Invoice, error)
	UpdateStatus(ctx context.Context, id string, status InvoiceStatus) error
	UpdatePayment(ctx context.Context, id string, status InvoiceStatus, paidAt time.Time, method, channel string) error
}
