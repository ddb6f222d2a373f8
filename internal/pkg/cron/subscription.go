package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/workhive-hq/workhive-backend-go/internal/domain/subscription"
)

// SubscriptionJobs contains subscription-related cron jobs
type SubscriptionJobs struct {
	subscriptionService subscription.SubscriptionService
}

// NewSubscriptionJobs creates subscription cron jobs
func NewSubscriptionJobs(subscriptionService subscription.SubscriptionService) *SubscriptionJobs {
	return &SubscriptionJobs{
		subscriptionService: subscriptionService,
	}
}

// RegisterJobs registers all subscription-related cron jobs
func (j *SubscriptionJobs) RegisterJobs(scheduler *Scheduler) {
	// Expire subscriptions past their period end every hour
	scheduler.AddJob(
		"expire_overdue_subscriptions",
		1*time.Hour,
		j.ExpireOverdueSubscriptions,
	)
}

// ExpireOverdueSubscriptions sweeps active/trial/past_due subscriptions whose
// period has ended to expired
func (j *SubscriptionJobs) ExpireOverdueSubscriptions(ctx context.Context) error {
	expired, err := j.subscriptionService.ExpireOverdue(ctx)
	if err != nil {
		return err
	}
	if expired > 0 {
		slog.Info("Expired overdue subscriptions", "count", expired)
	}
	return nil
}
