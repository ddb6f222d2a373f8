package verification

import "time"

// DocumentType is the fixed checklist of company documents required before a
// company may be marked verified. Weights are percentage points and sum to 100.
type DocumentType string

const (
	DocumentTypeBusinessRegistration DocumentType = "business_registration"
	DocumentTypeTaxCertificate       DocumentType = "tax_certificate"
	DocumentTypeDirectorID           DocumentType = "director_id"
	DocumentTypeProofOfAddress       DocumentType = "proof_of_address"
)

type documentTypeInfo struct {
	Weight int
	Label  string
}

var documentTypes = map[DocumentType]documentTypeInfo{
	DocumentTypeBusinessRegistration: {Weight: 30, Label: "Business Registration Certificate"},
	DocumentTypeTaxCertificate:       {Weight: 25, Label: "Tax Registration Certificate"},
	DocumentTypeDirectorID:           {Weight: 25, Label: "Director Identity Document"},
	DocumentTypeProofOfAddress:       {Weight: 20, Label: "Proof of Business Address"},
}

// RequiredDocumentTypes returns the checklist in a stable order.
func RequiredDocumentTypes() []DocumentType {
	return []DocumentType{
		DocumentTypeBusinessRegistration,
		DocumentTypeTaxCertificate,
		DocumentTypeDirectorID,
		DocumentTypeProofOfAddress,
	}
}

func (t DocumentType) IsValid() bool {
	_, ok := documentTypes[t]
	return ok
}

func (t DocumentType) Weight() int {
	return documentTypes[t].Weight
}

func (t DocumentType) Label() string {
	return documentTypes[t].Label
}

// DocumentStatus enum. A type with no document at all is "not uploaded";
// that state has no row, so no constant.
type DocumentStatus string

const (
	DocumentStatusPending  DocumentStatus = "pending"
	DocumentStatusApproved DocumentStatus = "approved"
	DocumentStatusRejected DocumentStatus = "rejected"
)

// Document - current document for one (company, type). Re-upload replaces the
// row; only the latest rejection reason survives a replacement.
type Document struct {
	ID           string
	CompanyID    string
	DocumentType DocumentType
	Status       DocumentStatus

	URL        string
	Name       string
	UploadedAt time.Time
	UploadedBy string

	ReviewedAt      *time.Time
	ReviewedBy      *string
	RejectionReason *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// VerificationStatus enum for the per-company aggregate.
type VerificationStatus string

const (
	StatusNotStarted    VerificationStatus = "not_started"
	StatusInProgress    VerificationStatus = "in_progress"
	StatusPendingReview VerificationStatus = "pending_review"
	StatusVerified      VerificationStatus = "verified"
)

// CompanyVerification aggregate, one per company. Progress and status are
// always derived from the document map, never patched incrementally.
type CompanyVerification struct {
	CompanyID  string
	Progress   int
	Status     VerificationStatus
	VerifiedAt *time.Time
	UpdatedAt  time.Time

	Documents map[DocumentType]*Document
}
