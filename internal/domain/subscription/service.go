package subscription

import (
	"context"

	"github.com/workhive-hq/workhive-backend-go/internal/pkg/payment"
)

// SubscriptionService handles subscription business logic
type SubscriptionService interface {
	// GetPlans retrieves all active plans
	GetPlans(ctx context.Context) ([]PlanResponse, error)

	// GetMySubscription retrieves the caller's company subscription
	GetMySubscription(ctx context.Context) (SubscriptionResponse, error)

	// HandleInvoiceWebhook processes a payment-processor invoice callback.
	// Paid invoices activate the subscription and replenish the job-posting
	// counter to the plan allotment; expired/failed only update the invoice.
	// Unknown invoice ids are logged and swallowed so the webhook stays 2xx.
	HandleInvoiceWebhook(ctx context.Context, payload payment.InvoiceWebhookPayload) error

	// ExpireOverdue sweeps subscriptions past their period end to expired.
	ExpireOverdue(ctx context.Context) (int64, error)
}
