package subscription

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workhive-hq/workhive-backend-go/internal/domain/notification"
	"github.com/workhive-hq/workhive-backend-go/internal/domain/subscription"
	"github.com/workhive-hq/workhive-backend-go/internal/pkg/payment"
)

type fakeSubscriptionRepo struct {
	sub         subscription.Subscription
	replenished []int
}

func (f *fakeSubscriptionRepo) GetByCompanyID(ctx context.Context, companyID string) (subscription.Subscription, error) {
	return f.sub, nil
}

func (f *fakeSubscriptionRepo) UpdateStatus(ctx context.Context, id string, status subscription.SubscriptionStatus) error {
	return nil
}

func (f *fakeSubscriptionRepo) TryConsumeJobPosting(ctx context.Context, companyID string) (bool, error) {
	return false, nil
}

func (f *fakeSubscriptionRepo) ReplenishJobPostings(ctx context.Context, subscriptionID string, allotment int, periodStart, periodEnd time.Time) error {
	f.replenished = append(f.replenished, allotment)
	return nil
}

func (f *fakeSubscriptionRepo) UpdateExpiredToStatus(ctx context.Context, cutoff time.Time, fromStatuses []subscription.SubscriptionStatus, toStatus subscription.SubscriptionStatus) (int64, error) {
	return 0, nil
}

type fakePlanRepo struct {
	plan subscription.Plan
}

func (f *fakePlanRepo) GetByID(ctx context.Context, id string) (subscription.Plan, error) {
	return f.plan, nil
}

func (f *fakePlanRepo) ListActive(ctx context.Context) ([]subscription.Plan, error) {
	return []subscription.Plan{f.plan}, nil
}

type fakeInvoiceRepo struct {
	invoice        *subscription.Invoice
	statusUpdates  []subscription.InvoiceStatus
	paymentUpdates []subscription.InvoiceStatus
}

func (f *fakeInvoiceRepo) GetByProviderID(ctx context.Context, providerInvoiceID string) (subscription.Invoice, error) {
	if f.invoice == nil {
		return subscription.Invoice{}, subscription.ErrInvoiceNotFound
	}
	return *f.invoice, nil
}

func (f *fakeInvoiceRepo) UpdateStatus(ctx context.Context, id string, status subscription.InvoiceStatus) error {
	f.statusUpdates = append(f.statusUpdates, status)
	return nil
}

func (f *fakeInvoiceRepo) UpdatePayment(ctx context.Context, id string, status subscription.InvoiceStatus, paidAt time.Time, method, channel string) error {
	f.paymentUpdates = append(f.paymentUpdates, status)
	return nil
}

type fakeNotifier struct {
	sent []*notification.Notification
}

func (f *fakeNotifier) Notify(ctx context.Context, n *notification.Notification) error {
	f.sent = append(f.sent, n)
	return nil
}

func (f *fakeNotifier) List(ctx context.Context, limit int) ([]notification.NotificationResponse, error) {
	return nil, nil
}

func (f *fakeNotifier) MarkRead(ctx context.Context, id string) error {
	return nil
}

func (f *fakeNotifier) Subscribe(ctx context.Context) (<-chan notification.NotificationResponse, func(), error) {
	return nil, func() {}, nil
}

func newWebhookFixture(invoiceStatus subscription.InvoiceStatus) (*fakeSubscriptionRepo, *fakeInvoiceRepo, *fakeNotifier, subscription.SubscriptionService) {
	subRepo := &fakeSubscriptionRepo{sub: subscription.Subscription{
		ID:        "sub-1",
		CompanyID: "company-1",
		PlanID:    "plan-1",
		Status:    subscription.StatusPastDue,
	}}
	planRepo := &fakePlanRepo{plan: subscription.Plan{ID: "plan-1", JobPostingAllotment: 10}}
	invoiceRepo := &fakeInvoiceRepo{invoice: &subscription.Invoice{
		ID:          "inv-1",
		CompanyID:   "company-1",
		Status:      invoiceStatus,
		PeriodStart: time.Now(),
		PeriodEnd:   time.Now().AddDate(0, 1, 0),
	}}
	notifier := &fakeNotifier{}
	svc := NewSubscriptionService(subRepo, planRepo, invoiceRepo, notifier, slog.Default())
	return subRepo, invoiceRepo, notifier, svc
}

func TestHandleInvoiceWebhook_PaidReplenishesQuota(t *testing.T) {
	t.Parallel()

	subRepo, invoiceRepo, notifier, svc := newWebhookFixture(subscription.InvoiceStatusPending)

	err := svc.HandleInvoiceWebhook(context.Background(), payment.InvoiceWebhookPayload{
		ID:     "xnd-1",
		Status: "PAID",
		PaidAt: time.Now().Format(time.RFC3339),
	})
	require.NoError(t, err)

	require.Len(t, invoiceRepo.paymentUpdates, 1)
	assert.Equal(t, subscription.InvoiceStatusPaid, invoiceRepo.paymentUpdates[0])
	require.Len(t, subRepo.replenished, 1)
	assert.Equal(t, 10, subRepo.replenished[0])
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, notification.TypeQuotaReplenished, notifier.sent[0].Type)
}

func TestHandleInvoiceWebhook_RetryOfPaidInvoiceIsIdempotent(t *testing.T) {
	t.Parallel()

	subRepo, invoiceRepo, _, svc := newWebhookFixture(subscription.InvoiceStatusPaid)

	err := svc.HandleInvoiceWebhook(context.Background(), payment.InvoiceWebhookPayload{
		ID:     "xnd-1",
		Status: "PAID",
	})
	require.NoError(t, err)

	assert.Empty(t, invoiceRepo.paymentUpdates)
	assert.Empty(t, subRepo.replenished)
}

func TestHandleInvoiceWebhook_UnknownInvoiceAcknowledged(t *testing.T) {
	t.Parallel()

	subRepo := &fakeSubscriptionRepo{}
	invoiceRepo := &fakeInvoiceRepo{}
	svc := NewSubscriptionService(subRepo, &fakePlanRepo{}, invoiceRepo, &fakeNotifier{}, slog.Default())

	err := svc.HandleInvoiceWebhook(context.Background(), payment.InvoiceWebhookPayload{
		ID:     "never-issued",
		Status: "PAID",
	})
	require.NoError(t, err)
	assert.Empty(t, invoiceRepo.paymentUpdates)
	assert.Empty(t, subRepo.replenished)
}

func TestHandleInvoiceWebhook_ExpiredOnlyUpdatesInvoice(t *testing.T) {
	t.Parallel()

	subRepo, invoiceRepo, _, svc := newWebhookFixture(subscription.InvoiceStatusPending)

	err := svc.HandleInvoiceWebhook(context.Background(), payment.InvoiceWebhookPayload{
		ID:     "xnd-1",
		Status: "EXPIRED",
	})
	require.NoError(t, err)

	require.Len(t, invoiceRepo.statusUpdates, 1)
	assert.Equal(t, subscription.InvoiceStatusExpired, invoiceRepo.statusUpdates[0])
	assert.Empty(t, subRepo.replenished)
}
