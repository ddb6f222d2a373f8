package subscription

import "errors"

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrPlanNotFound         = errors.New("plan not found")
	ErrInvoiceNotFound      = errors.New("invoice not found")
	ErrSubscriptionInactive = errors.New("subscription is not active")
	// ErrQuotaExhausted is the normal no-postings-left outcome, distinct from
	// any store error.
	ErrQuotaExhausted = errors.New("job posting quota exhausted")
)
