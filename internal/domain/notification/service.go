package notification

import "context"

// NotificationService persists notifications and pushes them to the
// recipient's open SSE streams.
type NotificationService interface {
	// Notify stores the notification and publishes it to live subscribers.
	Notify(ctx context.Context, n *Notification) error

	// List returns the caller's most recent notifications.
	List(ctx context.Context, limit int) ([]NotificationResponse, error)

	// MarkRead marks one of the caller's notifications as read.
	MarkRead(ctx context.Context, id string) error

	// Subscribe opens a live notification feed for the caller. The cleanup
	// function must be called when the consumer disconnects.
	Subscribe(ctx context.Context) (<-chan NotificationResponse, func(), error)
}
