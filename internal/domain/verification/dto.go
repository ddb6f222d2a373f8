package verification

import (
	"time"

	"github.com/workhive-hq/workhive-backend-go/internal/pkg/validator"
)

// UploadDocumentRequest - metadata side of a multipart upload. The file part
// is handled by the service through FileStorage.
type UploadDocumentRequest struct {
	DocumentType string `json:"document_type"`
	FileName     string `json:"-"`
}

func (r *UploadDocumentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FileName) {
		errs = append(errs, validator.ValidationError{Field: "file", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ReviewDocumentRequest targets the exact document version the reviewer saw.
type ReviewDocumentRequest struct {
	DocumentID string `json:"document_id"`
	Reason     string `json:"reason,omitempty"`
}

func (r *ReviewDocumentRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.DocumentID) {
		errs = append(errs, validator.ValidationError{Field: "document_id", Message: "must be a valid UUID"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DocumentResponse struct {
	ID           string  `json:"id"`
	DocumentType string  `json:"document_type"`
	Label        string  `json:"label"`
	Weight       int     `json:"weight"`
	Status       string  `json:"status"`
	URL          string  `json:"url"`
	Name         string  `json:"name"`
	UploadedAt   string  `json:"uploaded_at"`
	ReviewedAt   *string `json:"reviewed_at,omitempty"`
	Reason       *string `json:"rejection_reason,omitempty"`
}

type ChecklistItemResponse struct {
	DocumentType string            `json:"document_type"`
	Label        string            `json:"label"`
	Weight       int               `json:"weight"`
	Document     *DocumentResponse `json:"document,omitempty"` // nil = not uploaded
}

type VerificationResponse struct {
	CompanyID  string                  `json:"company_id"`
	Progress   int                     `json:"progress"`
	Status     string                  `json:"status"`
	VerifiedAt *time.Time              `json:"verified_at,omitempty"`
	Checklist  []ChecklistItemResponse `json:"checklist"`
}
