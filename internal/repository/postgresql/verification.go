package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/workhive-hq/workhive-backend-go/internal/domain/verification"
	"github.com/workhive-hq/workhive-backend-go/internal/pkg/database"
)

type verificationRepository struct {
	db *database.DB
}

func NewVerificationRepository(db *database.DB) verification.VerificationRepository {
	return &verificationRepository{db: db}
}

const documentColumns = `
	id, company_id, document_type, status, url, name, uploaded_at, uploaded_by,
	reviewed_at, reviewed_by, rejection_reason, created_at, updated_at
`

func scanDocument(row pgx.Row) (*verification.Document, error) {
	var d verification.Document
	err := row.Scan(
		&d.ID, &d.CompanyID, &d.DocumentType, &d.Status, &d.URL, &d.Name, &d.UploadedAt, &d.UploadedBy,
		&d.ReviewedAt, &d.ReviewedBy, &d.RejectionReason, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *verificationRepository) GetDocuments(ctx context.Context, companyID string) (map[verification.DocumentType]*verification.Document, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + documentColumns + `
		FROM verification_documents
		WHERE company_id = $1
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get verification documents: %w", err)
	}
	defer rows.Close()

	docs := make(map[verification.DocumentType]*verification.Document)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan verification document: %w", err)
		}
		docs[d.DocumentType] = d
	}

	return docs, rows.Err()
}

func (r *verificationRepository) GetDocumentByID(ctx context.Context, id string) (*verification.Document, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + documentColumns + `
		FROM verification_documents
		WHERE id = $1
	`

	d, err := scanDocument(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, verification.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to get verification document: %w", err)
	}

	return d, nil
}

// UpsertDocument replaces the live row for (company, type). A fresh id means
// any review action still pointing at the old row fails as superseded.
func (r *verificationRepository) UpsertDocument(ctx context.Context, doc *verification.Document) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO verification_documents (
			id, company_id, document_type, status, url, name, uploaded_at, uploaded_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (company_id, document_type) DO UPDATE SET
			id = EXCLUDED.id,
			status = EXCLUDED.status,
			url = EXCLUDED.url,
			name = EXCLUDED.name,
			uploaded_at = EXCLUDED.uploaded_at,
			uploaded_by = EXCLUDED.uploaded_by,
			reviewed_at = NULL,
			reviewed_by = NULL,
			rejection_reason = NULL,
			updated_at = NOW()
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		doc.ID, doc.CompanyID, doc.DocumentType, doc.Status, doc.URL, doc.Name, doc.UploadedAt, doc.UploadedBy,
	).Scan(&doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert verification document: %w", err)
	}

	return nil
}

func (r *verificationRepository) UpdateDocumentStatus(ctx context.Context, doc *verification.Document) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE verification_documents
		SET status = $2, reviewed_at = $3, reviewed_by = $4, rejection_reason = $5, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, doc.ID, doc.Status, doc.ReviewedAt, doc.ReviewedBy, doc.RejectionReason)
	if err != nil {
		return fmt.Errorf("failed to update verification document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// the reviewed row was replaced by a newer upload
		return verification.ErrDocumentSuperseded
	}

	return nil
}

func (r *verificationRepository) GetAggregate(ctx context.Context, companyID string) (*verification.CompanyVerification, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT company_id, progress, status, verified_at, updated_at
		FROM company_verifications
		WHERE company_id = $1
	`

	var agg verification.CompanyVerification
	err := q.QueryRow(ctx, query, companyID).Scan(
		&agg.CompanyID, &agg.Progress, &agg.Status, &agg.VerifiedAt, &agg.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, verification.ErrVerificationNotFound
		}
		return nil, fmt.Errorf("failed to get company verification: %w", err)
	}

	return &agg, nil
}

func (r *verificationRepository) SaveAggregate(ctx context.Context, agg *verification.CompanyVerification) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO company_verifications (company_id, progress, status, verified_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (company_id) DO UPDATE SET
			progress = EXCLUDED.progress,
			status = EXCLUDED.status,
			verified_at = EXCLUDED.verified_at,
			updated_at = NOW()
	`

	if _, err := q.Exec(ctx, query, agg.CompanyID, agg.Progress, agg.Status, agg.VerifiedAt); err != nil {
		return fmt.Errorf("failed to save company verification: %w", err)
	}

	return nil
}

func (r *verificationRepository) ListCompanyIDsWithDocuments(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT DISTINCT company_id FROM verification_documents`)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies with documents: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan company id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
