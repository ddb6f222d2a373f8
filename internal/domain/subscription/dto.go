package subscription

import (
	"time"

	"github.com/shopspring/decimal"
)

// ==================== Response DTOs ====================

// PlanResponse represents a plan in API responses
type PlanResponse struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Price               decimal.Decimal `json:"price"`
	TierLevel           int             `json:"tier_level"`
	JobPostingAllotment int             `json:"job_posting_allotment"`
}

// SubscriptionResponse represents a subscription in API responses
type SubscriptionResponse struct {
	ID                   string    `json:"id"`
	Status               string    `json:"status"`
	JobPostingsRemaining int       `json:"job_postings_remaining"`
	CurrentPeriodStart   time.Time `json:"current_period_start"`
	CurrentPeriodEnd     time.Time `json:"current_period_end"`
	Plan                 *PlanResponse `json:"plan,omitempty"`
}
