package cron

import (
	"context"
	"time"

	"github.com/workhive-hq/workhive-backend-go/internal/domain/verification"
)

// VerificationJobs contains verification-related cron jobs
type VerificationJobs struct {
	verificationService verification.VerificationService
}

// NewVerificationJobs creates verification cron jobs
func NewVerificationJobs(verificationService verification.VerificationService) *VerificationJobs {
	return &VerificationJobs{
		verificationService: verificationService,
	}
}

// RegisterJobs registers all verification-related cron jobs
func (j *VerificationJobs) RegisterJobs(scheduler *Scheduler) {
	// Recompute every company aggregate nightly, guarding against drift
	// between stored progress and the document map
	scheduler.AddJob(
		"reconcile_verification_aggregates",
		24*time.Hour,
		j.ReconcileAggregates,
	)
}

// ReconcileAggregates recomputes progress and status from the document map
func (j *VerificationJobs) ReconcileAggregates(ctx context.Context) error {
	return j.verificationService.ReconcileAll(ctx)
}
