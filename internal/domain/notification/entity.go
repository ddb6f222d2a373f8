package notification

import (
	"time"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeDocumentApproved NotificationType = "document_approved"
	TypeDocumentRejected NotificationType = "document_rejected"
	TypeCompanyVerified  NotificationType = "company_verified"
	TypePayrollGenerated NotificationType = "payroll_generated"
	TypeSubscriptionPaid NotificationType = "subscription_paid"
	TypeQuotaReplenished NotificationType = "quota_replenished"
)

// Notification represents a notification entity. Delivery is fire-and-forget:
// failures are logged, never propagated to the triggering operation.
type Notification struct {
	ID          string
	CompanyID   string
	RecipientID string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
