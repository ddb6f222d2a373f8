package subscription

import (
	"time"

	"github.com/shopspring/decimal"
)

// SubscriptionStatus enum
type SubscriptionStatus string

const (
	StatusTrial     SubscriptionStatus = "trial"
	StatusActive    SubscriptionStatus = "active"
	StatusPastDue   SubscriptionStatus = "past_due"
	StatusCancelled SubscriptionStatus = "cancelled"
	StatusExpired   SubscriptionStatus = "expired"
)

// InvoiceStatus enum
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusExpired InvoiceStatus = "expired"
	InvoiceStatusFailed  InvoiceStatus = "failed"
)

// Plan represents a subscription plan
type Plan struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Price               decimal.Decimal `json:"price"`
	TierLevel           int             `json:"tier_level"`
	JobPostingAllotment int             `json:"job_posting_allotment"`
	IsActive            bool            `json:"is_active"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// Subscription represents a company's subscription. JobPostingsRemaining is
// the per-tenant posting counter: consumed by job-posting creation, refilled
// only by the payment webhook.
type Subscription struct {
	ID                   string             `json:"id"`
	CompanyID            string             `json:"company_id"`
	PlanID               string             `json:"plan_id"`
	Status               SubscriptionStatus `json:"status"`
	JobPostingsRemaining int                `json:"job_postings_remaining"`
	CurrentPeriodStart   time.Time          `json:"current_period_start"`
	CurrentPeriodEnd     time.Time          `json:"current_period_end"`
	CreatedAt            time.Time          `json:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at"`

	// Joined data
	Plan *Plan `json:"plan,omitempty"`
}

// Invoice represents a payment invoice tracked for webhook reconciliation.
type Invoice struct {
	ID                 string          `json:"id"`
	CompanyID          string          `json:"company_id"`
	SubscriptionID     string          `json:"subscription_id"`
	ProviderInvoiceID  *string         `json:"provider_invoice_id,omitempty"`
	ProviderInvoiceURL *string         `json:"provider_invoice_url,omitempty"`
	Amount             decimal.Decimal `json:"amount"`
	PeriodStart        time.Time       `json:"period_start"`
	PeriodEnd          time.Time       `json:"period_end"`
	Status             InvoiceStatus   `json:"status"`
	IssueDate          time.Time       `json:"issue_date"`
	PaidAt             *time.Time      `json:"paid_at,omitempty"`
	PaymentMethod      *string         `json:"payment_method,omitempty"`
	PaymentChannel     *string         `json:"payment_channel,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// IsActive checks if subscription is in an active state (active or trial)
func (s *Subscription) IsActive() bool {
	return s.Status == StatusActive || s.Status == StatusTrial || s.Status == StatusPastDue
}

// IsExpired checks if the subscription period has ended
func (s *Subscription) IsExpired() bool {
	return time.Now().After(s.CurrentPeriodEnd)
}
