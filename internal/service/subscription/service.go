package subscription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"

	"github.com/workhive-hq/workhive-backend-go/internal/domain/notification"
	"github.com/workhive-hq/workhive-backend-go/internal/domain/subscription"
	"github.com/workhive-hq/workhive-backend-go/internal/pkg/payment"
)

type SubscriptionServiceImpl struct {
	subscriptionRepo    subscription.SubscriptionRepository
	planRepo            subscription.PlanRepository
	invoiceRepo         subscription.InvoiceRepository
	notificationService notification.NotificationService
	logger              *slog.Logger
}

func NewSubscriptionService(
	subscriptionRepo subscription.SubscriptionRepository,
	planRepo subscription.PlanRepository,
	invoiceRepo subscription.InvoiceRepository,
	notificationService notification.NotificationService,
	logger *slog.Logger,
) subscription.SubscriptionService {
	return &SubscriptionServiceImpl{
		subscriptionRepo:    subscriptionRepo,
		planRepo:            planRepo,
		invoiceRepo:         invoiceRepo,
		notificationService: notificationService,
		logger:              logger,
	}
}

// Helper to get company_id from JWT context
func getClaimsFromContext(ctx context.Context) (companyID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}

	return companyID, nil
}

func toPlanResponse(p *subscription.Plan) subscription.PlanResponse {
	return subscription.PlanResponse{
		ID:                  p.ID,
		Name:                p.Name,
		Price:               p.Price,
		TierLevel:           p.TierLevel,
		JobPostingAllotment: p.JobPostingAllotment,
	}
}

func (s *SubscriptionServiceImpl) GetPlans(ctx context.Context) ([]subscription.PlanResponse, error) {
	plans, err := s.planRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]subscription.PlanResponse, 0, len(plans))
	for i := range plans {
		responses = append(responses, toPlanResponse(&plans[i]))
	}

	return responses, nil
}

func (s *SubscriptionServiceImpl) GetMySubscription(ctx context.Context) (subscription.SubscriptionResponse, error) {
	companyID, err := getClaimsFromContext(ctx)
	if err != nil {
		return subscription.SubscriptionResponse{}, err
	}

	sub, err := s.subscriptionRepo.GetByCompanyID(ctx, companyID)
	if err != nil {
		return subscription.SubscriptionResponse{}, err
	}

	resp := subscription.SubscriptionResponse{
		ID:                   sub.ID,
		Status:               string(sub.Status),
		JobPostingsRemaining: sub.JobPostingsRemaining,
		CurrentPeriodStart:   sub.CurrentPeriodStart,
		CurrentPeriodEnd:     sub.CurrentPeriodEnd,
	}
	if sub.Plan != nil {
		plan := toPlanResponse(sub.Plan)
		resp.Plan = &plan
	}

	return resp, nil
}

// HandleInvoiceWebhook applies a payment-processor callback. A paid invoice
// activates the subscription and resets job_postings_remaining to the plan
// allotment - the only write path that ever increases the counter. Unknown
// invoice ids are logged and swallowed so the processor is not retried
// forever over an invoice this system never issued.
func (s *SubscriptionServiceImpl) HandleInvoiceWebhook(ctx context.Context, payload payment.InvoiceWebhookPayload) error {
	invoice, err := s.invoiceRepo.GetByProviderID(ctx, payload.ID)
	if err != nil {
		if errors.Is(err, subscription.ErrInvoiceNotFound) {
			s.logger.Warn("webhook for unknown invoice ignored", slog.String("provider_invoice_id", payload.ID))
			return nil
		}
		return err
	}

	switch payload.Status {
	case "PAID", "SETTLED":
		if invoice.Status == subscription.InvoiceStatusPaid {
			// processor retried a webhook we already applied
			return nil
		}

		paidAt := time.Now()
		if payload.PaidAt != "" {
			if parsed, err := time.Parse(time.RFC3339, payload.PaidAt); err == nil {
				paidAt = parsed
			}
		}
		if err := s.invoiceRepo.UpdatePayment(ctx, invoice.ID, subscription.InvoiceStatusPaid, paidAt, payload.PaymentMethod, payload.PaymentChannel); err != nil {
			return err
		}

		sub, err := s.subscriptionRepo.GetByCompanyID(ctx, invoice.CompanyID)
		if err != nil {
			return err
		}
		plan, err := s.planRepo.GetByID(ctx, sub.PlanID)
		if err != nil {
			return err
		}

		if err := s.subscriptionRepo.ReplenishJobPostings(ctx, sub.ID, plan.JobPostingAllotment, invoice.PeriodStart, invoice.PeriodEnd); err != nil {
			return err
		}

		s.logger.Info("subscription replenished",
			slog.String("company_id", invoice.CompanyID),
			slog.Int("job_postings", plan.JobPostingAllotment),
		)

		s.notifyPaid(ctx, invoice.CompanyID, plan.JobPostingAllotment)

	case "EXPIRED":
		return s.invoiceRepo.UpdateStatus(ctx, invoice.ID, subscription.InvoiceStatusExpired)

	case "FAILED":
		return s.invoiceRepo.UpdateStatus(ctx, invoice.ID, subscription.InvoiceStatusFailed)

	default:
		s.logger.Warn("webhook with unhandled status ignored",
			slog.String("provider_invoice_id", payload.ID),
			slog.String("status", payload.Status),
		)
	}

	return nil
}

func (s *SubscriptionServiceImpl) ExpireOverdue(ctx context.Context) (int64, error) {
	return s.subscriptionRepo.UpdateExpiredToStatus(ctx, time.Now(),
		[]subscription.SubscriptionStatus{subscription.StatusActive, subscription.StatusTrial, subscription.StatusPastDue},
		subscription.StatusExpired,
	)
}

func (s *SubscriptionServiceImpl) notifyPaid(ctx context.Context, companyID string, allotment int) {
	n := &notification.Notification{
		ID:          uuid.NewString(),
		CompanyID:   companyID,
		RecipientID: companyID,
		Type:        notification.TypeQuotaReplenished,
		Title:       "Subscription renewed",
		Message:     fmt.Sprintf("Payment received. Job posting quota reset to %d.", allotment),
	}
	if err := s.notificationService.Notify(ctx, n); err != nil {
		s.logger.Warn("failed to create notification", slog.String("error", err.Error()))
	}
}
