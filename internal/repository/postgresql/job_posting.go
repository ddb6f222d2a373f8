package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/workhive-hq/workhive-backend-go/internal/domain/jobposting"
	"github.com/workhive-hq/workhive-backend-go/internal/pkg/database"
)

type jobPostingRepository struct {
	db *database.DB
}

func NewJobPostingRepository(db *database.DB) jobposting.JobPostingRepository {
	return &jobPostingRepository{db: db}
}

const jobPostingColumns = `
	id, company_id, title, description, location, employment_type,
	salary_min, salary_max, status, posted_by, posted_at, closed_at,
	created_at, updated_at
`

func scanJobPosting(row pgx.Row) (*jobposting.JobPosting, error) {
	var p jobposting.JobPosting
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.Title, &p.Description, &p.Location, &p.Employment,
		&p.SalaryMin, &p.SalaryMax, &p.Status, &p.PostedBy, &p.PostedAt, &p.ClosedAt,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *jobPostingRepository) Create(ctx context.Context, p *jobposting.JobPosting) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO job_postings (
			id, company_id, title, description, location, employment_type,
			salary_min, salary_max, status, posted_by, posted_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		p.ID, p.CompanyID, p.Title, p.Description, p.Location, p.Employment,
		p.SalaryMin, p.SalaryMax, p.Status, p.PostedBy, p.PostedAt,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create job posting: %w", err)
	}

	return nil
}

func (r *jobPostingRepository) GetByID(ctx context.Context, id, companyID string) (*jobposting.JobPosting, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + jobPostingColumns + `
		FROM job_postings
		WHERE id = $1 AND company_id = $2
	`

	p, err := scanJobPosting(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, jobposting.ErrPostingNotFound
		}
		return nil, fmt.Errorf("failed to get job posting: %w", err)
	}

	return p, nil
}

func (r *jobPostingRepository) ListByCompanyID(ctx context.Context, companyID string) ([]jobposting.JobPosting, error) {
	return r.list(ctx, companyID, false)
}

func (r *jobPostingRepository) ListPublishedByCompanyID(ctx context.Context, companyID string) ([]jobposting.JobPosting, error) {
	return r.list(ctx, companyID, true)
}

func (r *jobPostingRepository) list(ctx context.Context, companyID string, publishedOnly bool) ([]jobposting.JobPosting, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + jobPostingColumns + `
		FROM job_postings
		WHERE company_id = $1
	`
	if publishedOnly {
		query += ` AND status = 'published'`
	}
	query += ` ORDER BY posted_at DESC`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list job postings: %w", err)
	}
	defer rows.Close()

	var postings []jobposting.JobPosting
	for rows.Next() {
		p, err := scanJobPosting(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job posting: %w", err)
		}
		postings = append(postings, *p)
	}

	return postings, rows.Err()
}

func (r *jobPostingRepository) Close(ctx context.Context, id, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE job_postings
		SET status = 'closed', closed_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND status = 'published'
	`

	tag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to close job posting: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// distinguish missing from already closed
		var status string
		err := q.QueryRow(ctx, `SELECT status FROM job_postings WHERE id = $1 AND company_id = $2`, id, companyID).Scan(&status)
		if err == pgx.ErrNoRows {
			return jobposting.ErrPostingNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to check job posting status: %w", err)
		}
		return jobposting.ErrPostingAlreadyClosed
	}

	return nil
}
