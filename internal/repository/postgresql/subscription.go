package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/workhive-hq/workhive-backend-go/internal/domain/subscription"
	"github.com/workhive-hq/workhive-backend-go/internal/pkg/database"
)

// ========== PLANS ==========

type planRepository struct {
	db *database.DB
}

func NewPlanRepository(db *database.DB) subscription.PlanRepository {
	return &planRepository{db: db}
}

const planColumns = `id, name, price, tier_level, job_posting_allotment, is_active, created_at, updated_at`

func scanPlan(row pgx.Row) (subscription.Plan, error) {
	var p subscription.Plan
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.TierLevel, &p.JobPostingAllotment, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *planRepository) GetByID(ctx context.Context, id string) (subscription.Plan, error) {
	q := GetQuerier(ctx, r.db)

	p, err := scanPlan(q.QueryRow(ctx, `SELECT `+planColumns+` FROM plans WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return subscription.Plan{}, subscription.ErrPlanNotFound
		}
		return subscription.Plan{}, fmt.Errorf("failed to get plan: %w", err)
	}

	return p, nil
}

func (r *planRepository) ListActive(ctx context.Context) ([]subscription.Plan, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+planColumns+` FROM plans WHERE is_active = true ORDER BY tier_level`)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer rows.Close()

	var plans []subscription.Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		plans = append(plans, p)
	}

	return plans, rows.Err()
}

// ========== SUBSCRIPTIONS ==========

type subscriptionRepository struct {
	db *database.DB
}

func NewSubscriptionRepository(db *database.DB) subscription.SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) GetByCompanyID(ctx context.Context, companyID string) (subscription.Subscription, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.company_id, s.plan_id, s.status, s.job_postings_remaining,
			   s.current_period_start, s.current_period_end, s.created_at, s.updated_at,
			   p.id, p.name, p.price, p.tier_level, p.job_posting_allotment, p.is_active, p.created_at, p.updated_at
		FROM subscriptions s
		JOIN plans p ON p.id = s.plan_id
		WHERE s.company_id = $1
	`

	var s subscription.Subscription
	var p subscription.Plan
	err := q.QueryRow(ctx, query, companyID).Scan(
		&s.ID, &s.CompanyID, &s.PlanID, &s.Status, &s.JobPostingsRemaining,
		&s.CurrentPeriodStart, &s.CurrentPeriodEnd, &s.CreatedAt, &s.UpdatedAt,
		&p.ID, &p.Name, &p.Price, &p.TierLevel, &p.JobPostingAllotment, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return subscription.Subscription{}, subscription.ErrSubscriptionNotFound
		}
		return subscription.Subscription{}, fmt.Errorf("failed to get subscription: %w", err)
	}
	s.Plan = &p

	return s, nil
}

func (r *subscriptionRepository) UpdateStatus(ctx context.Context, id string, status subscription.SubscriptionStatus) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE subscriptions SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update subscription status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return subscription.ErrSubscriptionNotFound
	}

	return nil
}

// TryConsumeJobPosting is the quota decrement. The conditional UPDATE is a
// single atomic read-modify-write inside the database; two racing callers can
// never both pass the remaining > 0 check for the last unit. Zero rows
// affected means the quota is exhausted (or no subscription row exists),
// which is a normal outcome, not an error.
func (r *subscriptionRepository) TryConsumeJobPosting(ctx context.Context, companyID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE subscriptions
		SET job_postings_remaining = job_postings_remaining - 1, updated_at = NOW()
		WHERE company_id = $1 AND job_postings_remaining > 0
	`

	tag, err := q.Exec(ctx, query, companyID)
	if err != nil {
		return false, fmt.Errorf("failed to consume job posting quota: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

func (r *subscriptionRepository) ReplenishJobPostings(ctx context.Context, subscriptionID string, allotment int, periodStart, periodEnd time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE subscriptions
		SET status = 'active', job_postings_remaining = $2,
			current_period_start = $3, current_period_end = $4, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, subscriptionID, allotment, periodStart, periodEnd)
	if err != nil {
		return fmt.Errorf("failed to replenish job postings: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return subscription.ErrSubscriptionNotFound
	}

	return nil
}

func (r *subscriptionRepository) UpdateExpiredToStatus(ctx context.Context, cutoff time.Time, fromStatuses []subscription.SubscriptionStatus, toStatus subscription.SubscriptionStatus) (int64, error) {
	q := GetQuerier(ctx, r.db)

	statuses := make([]string, len(fromStatuses))
	for i, s := range fromStatuses {
		statuses[i] = string(s)
	}

	query := `
		UPDATE subscriptions
		SET status = $1, updated_at = NOW()
		WHERE current_period_end < $2 AND status = ANY($3)
	`

	tag, err := q.Exec(ctx, query, toStatus, cutoff, statuses)
	if err != nil {
		return 0, fmt.Errorf("failed to expire subscriptions: %w", err)
	}

	return tag.RowsAffected(), nil
}

// ========== INVOICES ==========

type invoiceRepository struct {
	db *database.DB
}

func NewInvoiceRepository(db *database.DB) subscription.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) GetByProviderID(ctx context.Context, providerInvoiceID string) (subscription.Invoice, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, subscription_id, provider_invoice_id, provider_invoice_url,
			   amount, period_start, period_end, status, issue_date, paid_at,
			   payment_method, payment_channel, created_at, updated_at
		FROM invoices
		WHERE provider_invoice_id = $1
	`

	var inv subscription.Invoice
	err := q.QueryRow(ctx, query, providerInvoiceID).Scan(
		&inv.ID, &inv.CompanyID, &inv.SubscriptionID, &inv.ProviderInvoiceID, &inv.ProviderInvoiceURL,
		&inv.Amount, &inv.PeriodStart, &inv.PeriodEnd, &inv.Status, &inv.IssueDate, &inv.PaidAt,
		&inv.PaymentMethod, &inv.PaymentChannel, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return subscription.Invoice{}, subscription.ErrInvoiceNotFound
		}
		return subscription.Invoice{}, fmt.Errorf("failed to get invoice: %w", err)
	}

	return inv, nil
}

func (r *invoiceRepository) UpdateStatus(ctx context.Context, id string, status subscription.InvoiceStatus) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE invoices SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update invoice status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return subscription.ErrInvoiceNotFound
	}

	return nil
}

func (r *invoiceRepository) UpdatePayment(ctx context.Context, id string, status subscription.InvoiceStatus, paidAt time.Time, method, channel string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE invoices
		SET status = $2, paid_at = $3, payment_method = $4, payment_channel = $5, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, status, paidAt, method, channel)
	if err != nil {
		return fmt.Errorf("failed to update invoice payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return subscription.ErrInvoiceNotFound
	}

	return nil
}
