package employee

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/workhive-hq/workhive-backend-go/internal/domain/employee"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{employeeRepo: employeeRepo}
}

// Helper to get company_id from JWT context
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

func toResponse(e *employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:           e.ID,
		CompanyID:    e.CompanyID,
		EmployeeCode: e.EmployeeCode,
		FullName:     e.FullName,
		Email:        e.Email,
		WorkerType:   string(e.WorkerType),
		Status:       string(e.Status),

		Salary:      e.Salary,
		HourlyRate:  e.HourlyRate,
		HoursWorked: e.HoursWorked,

		Allowances:     e.Allowances,
		Deductions:     e.Deductions,
		Overtime:       e.Overtime,
		Bonus:          e.Bonus,
		Reimbursements: e.Reimbursements,

		HireDate: e.HireDate.Format("2006-01-02"),
	}
}

func orZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	companyID, err := getClaimsFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	hireDate := time.Now()
	if req.HireDate != nil {
		hireDate, _ = time.Parse("2006-01-02", *req.HireDate)
	}

	e := &employee.Employee{
		ID:           uuid.NewString(),
		CompanyID:    companyID,
		EmployeeCode: req.EmployeeCode,
		FullName:     req.FullName,
		Email:        req.Email,
		WorkerType:   employee.WorkerType(req.WorkerType),
		Status:       employee.EmploymentStatusActive,

		Salary:      req.Salary,
		HourlyRate:  req.HourlyRate,
		HoursWorked: req.HoursWorked,

		Allowances:     orZero(req.Allowances),
		Deductions:     orZero(req.Deductions),
		Overtime:       orZero(req.Overtime),
		Bonus:          orZero(req.Bonus),
		Reimbursements: orZero(req.Reimbursements),

		HireDate: hireDate,
	}

	if err := s.employeeRepo.Create(ctx, e); err != nil {
		return employee.EmployeeResponse{}, err
	}

	return toResponse(e), nil
}

func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	companyID, err := getClaimsFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	e, err := s.employeeRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return toResponse(e), nil
}

func (s *EmployeeServiceImpl) List(ctx context.Context) ([]employee.EmployeeResponse, error) {
	companyID, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	employees, err := s.employeeRepo.ListByCompanyID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for i := range employees {
		responses = append(responses, toResponse(&employees[i]))
	}

	return responses, nil
}

func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	companyID, err := getClaimsFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	e, err := s.employeeRepo.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.FullName != nil {
		e.FullName = *req.FullName
	}
	if req.Status != nil {
		e.Status = employee.EmploymentStatus(*req.Status)
	}
	if req.Salary != nil {
		e.Salary = req.Salary
	}
	if req.HourlyRate != nil {
		e.HourlyRate = req.HourlyRate
	}
	if req.HoursWorked != nil {
		e.HoursWorked = req.HoursWorked
	}
	if req.Allowances != nil {
		e.Allowances = *req.Allowances
	}
	if req.Deductions != nil {
		e.Deductions = *req.Deductions
	}
	if req.Overtime != nil {
		e.Overtime = *req.Overtime
	}
	if req.Bonus != nil {
		e.Bonus = *req.Bonus
	}
	if req.Reimbursements != nil {
		e.Reimbursements = *req.Reimbursements
	}

	if err := s.employeeRepo.Update(ctx, e); err != nil {
		return employee.EmployeeResponse{}, err
	}

	return toResponse(e), nil
}

func (s *EmployeeServiceImpl) Delete(ctx context.Context, id string) error {
	companyID, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	return s.employeeRepo.SoftDelete(ctx, id, companyID)
}
