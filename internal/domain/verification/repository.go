package verification

import "context"

type VerificationRepository interface {
	// GetDocuments returns the live document per type for a company.
	GetDocuments(ctx context.Context, companyID string) (map[DocumentType]*Document, error)
	GetDocumentByID(ctx context.Context, id string) (*Document, error)
	// UpsertDocument replaces the live document for its (company, type) pair.
	UpsertDocument(ctx context.Context, doc *Document) error
	UpdateDocumentStatus(ctx context.Context, doc *Document) error

	GetAggregate(ctx context.Context, companyID string) (*CompanyVerification, error)
	SaveAggregate(ctx context.Context, agg *CompanyVerification) error
	// ListCompanyIDsWithDocuments feeds the nightly reconcile sweep.
	ListCompanyIDsWithDocuments(ctx context.Context) ([]string, error)
}
