package notification

import (
	"context"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workhive-hq/workhive-backend-go/internal/domain/notification"
	"github.com/workhive-hq/workhive-backend-go/internal/pkg/jwt"
	"github.com/workhive-hq/workhive-backend-go/internal/pkg/sse"
)

type fakeNotificationRepo struct {
	created   []*notification.Notification
	readIDs   []string
	byCompany map[string][]notification.Notification
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n *notification.Notification) error {
	f.created = append(f.created, n)
	return nil
}

func (f *fakeNotificationRepo) ListByRecipient(ctx context.Context, recipientID string, limit int) ([]notification.Notification, error) {
	items := f.byCompany[recipientID]
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (f *fakeNotificationRepo) MarkRead(ctx context.Context, id, recipientID string) error {
	f.readIDs = append(f.readIDs, id)
	return nil
}

func authedContext(t *testing.T, companyID string) context.Context {
	t.Helper()
	svc := jwt.NewJWTService("test-secret", "1h")
	tokenString, _, err := svc.GenerateAccessToken("user-1", "admin@example.com", &companyID, "admin")
	require.NoError(t, err)
	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestNotify_PersistsAndPublishes(t *testing.T) {
	t.Parallel()

	repo := &fakeNotificationRepo{}
	hub := sse.NewHub()
	svc := NewNotificationService(repo, hub)

	ch, cleanup := hub.Subscribe("company-1")
	defer cleanup()

	err := svc.Notify(context.Background(), &notification.Notification{
		ID:          "n-1",
		CompanyID:   "company-1",
		RecipientID: "company-1",
		Type:        notification.TypeCompanyVerified,
		Title:       "Company verified",
	})
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	assert.False(t, repo.created[0].CreatedAt.IsZero())

	require.Len(t, ch, 1)
	event := <-ch
	resp, ok := event.Data.(notification.NotificationResponse)
	require.True(t, ok)
	assert.Equal(t, "n-1", resp.ID)
	assert.Equal(t, notification.TypeCompanyVerified, resp.Type)
}

func TestList_ScopedToCallerCompany(t *testing.T) {
	t.Parallel()

	repo := &fakeNotificationRepo{byCompany: map[string][]notification.Notification{
		"company-1": {{ID: "n-1"}, {ID: "n-2"}},
		"company-2": {{ID: "other"}},
	}}
	svc := NewNotificationService(repo, sse.NewHub())

	responses, err := svc.List(authedContext(t, "company-1"), 20)
	require.NoError(t, err)
	require.Len(t, responses, 2)
	assert.Equal(t, "n-1", responses[0].ID)
}

func TestList_RejectsUnauthenticatedContext(t *testing.T) {
	t.Parallel()

	svc := NewNotificationService(&fakeNotificationRepo{}, sse.NewHub())

	_, err := svc.List(context.Background(), 20)
	assert.Error(t, err)
}

func TestSubscribe_DeliversNotifyEvents(t *testing.T) {
	t.Parallel()

	repo := &fakeNotificationRepo{}
	hub := sse.NewHub()
	svc := NewNotificationService(repo, hub)

	ctx := authedContext(t, "company-1")
	events, cleanup, err := svc.Subscribe(ctx)
	require.NoError(t, err)
	defer cleanup()

	err = svc.Notify(context.Background(), &notification.Notification{
		ID:          "n-9",
		CompanyID:   "company-1",
		RecipientID: "company-1",
		Type:        notification.TypeQuotaReplenished,
	})
	require.NoError(t, err)

	resp := <-events
	assert.Equal(t, "n-9", resp.ID)
}
