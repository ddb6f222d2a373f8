package verification

import (
	"context"
	"io"
)

type VerificationService interface {
	// Upload stores the file, replaces the live document for its type, and
	// recomputes the aggregate.
	Upload(ctx context.Context, req UploadDocumentRequest, file io.Reader, contentType string) (VerificationResponse, error)
	// Approve and Reject act on the exact document version the reviewer
	// was shown; a superseded id fails with ErrDocumentSuperseded.
	Approve(ctx context.Context, req ReviewDocumentRequest) (VerificationResponse, error)
	Reject(ctx context.Context, req ReviewDocumentRequest) (VerificationResponse, error)
	Get(ctx context.Context) (VerificationResponse, error)
	// ReconcileAll recomputes every company's aggregate from its document
	// map. Run by the nightly cron as a drift guard.
	ReconcileAll(ctx context.Context) error
}
