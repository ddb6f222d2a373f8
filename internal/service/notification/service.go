package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/workhive-hq/workhive-backend-go/internal/domain/notification"
	"github.com/workhive-hq/workhive-backend-go/internal/pkg/sse"
)

type NotificationServiceImpl struct {
	notificationRepo notification.NotificationRepository
	hub              *sse.Hub
}

func NewNotificationService(notificationRepo notification.NotificationRepository, hub *sse.Hub) notification.NotificationService {
	return &NotificationServiceImpl{
		notificationRepo: notificationRepo,
		hub:              hub,
	}
}

// Helper to get company_id from JWT context. Notifications are scoped to the
// company, so every admin of the company sees the same feed.
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

func toResponse(n *notification.Notification) notification.NotificationResponse {
	return notification.NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Data:      n.Data,
		IsRead:    n.IsRead,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}

func (s *NotificationServiceImpl) Notify(ctx context.Context, n *notification.Notification) error {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		return err
	}

	s.hub.Publish(n.RecipientID, sse.Event{
		RecipientID: n.RecipientID,
		Event:       "notification",
		Data:        toResponse(n),
	})

	return nil
}

func (s *NotificationServiceImpl) List(ctx context.Context, limit int) ([]notification.NotificationResponse, error) {
	companyID, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if limit < 1 || limit > 100 {
		limit = 20
	}

	notifications, err := s.notificationRepo.ListByRecipient(ctx, companyID, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]notification.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		responses = append(responses, toResponse(&notifications[i]))
	}

	return responses, nil
}

func (s *NotificationServiceImpl) MarkRead(ctx context.Context, id string) error {
	companyID, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	return s.notificationRepo.MarkRead(ctx, id, companyID)
}

func (s *NotificationServiceImpl) Subscribe(ctx context.Context) (<-chan notification.NotificationResponse, func(), error) {
	companyID, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, nil, err
	}

	ch, cleanup := s.hub.Subscribe(companyID)

	out := make(chan notification.NotificationResponse, 10)
	go func() {
		defer close(out)
		for {
			select {
			case event, ok := <-ch:
				if !ok {
					return
				}
				if resp, ok := event.Data.(notification.NotificationResponse); ok {
					out <- resp
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, cleanup, nil
}
