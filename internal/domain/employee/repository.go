package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, e *Employee) error
	GetByID(ctx context.Context, id, companyID string) (*Employee, error)
	GetActiveByCompanyID(ctx context.Context, companyID string) ([]Employee, error)
	ListByCompanyID(ctx context.Context, companyID string) ([]Employee, error)
	Update(ctx context.Context, e *Employee) error
	SoftDelete(ctx context.Context, id, companyID string) error
}
