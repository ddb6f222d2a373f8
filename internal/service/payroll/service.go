package payroll

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/workhive-hq/workhive-backend-go/internal/domain/employee"
	"github.com/workhive-hq/workhive-backend-go/internal/domain/notification"
	"github.com/workhive-hq/workhive-backend-go/internal/domain/payroll"
	"github.com/workhive-hq/workhive-backend-go/internal/pkg/payslip"
	"github.com/workhive-hq/workhive-backend-go/internal/pkg/storage"
)

type PayrollServiceImpl struct {
	payrollRepo         payroll.PayrollRepository
	employeeRepo        employee.EmployeeRepository
	notificationService notification.NotificationService
	fileStorage         storage.FileStorage
	logger              *slog.Logger
}

func NewPayrollService(
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	notificationService notification.NotificationService,
	fileStorage storage.FileStorage,
	logger *slog.Logger,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		payrollRepo:         payrollRepo,
		employeeRepo:        employeeRepo,
		notificationService: notificationService,
		fileStorage:         fileStorage,
		logger:              logger,
	}
}

// Helper to get company_id and user_id from JWT context
func getClaimsFromContext(ctx context.Context) (companyID, userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	userID, _ = claims["user_id"].(string)

	return companyID, userID, nil
}

func toRecordResponse(rec *payroll.PayrollRecord) payroll.PayrollRecordResponse {
	return payroll.PayrollRecordResponse{
		ID:          rec.ID,
		EmployeeID:  rec.EmployeeID,
		PeriodMonth: rec.PeriodMonth,
		PeriodYear:  rec.PeriodYear,

		BasePay:         rec.BasePay,
		GrossPay:        rec.GrossPay,
		Allowances:      rec.Allowances,
		Deductions:      rec.Deductions,
		Overtime:        rec.Overtime,
		Bonus:           rec.Bonus,
		Reimbursements:  rec.Reimbursements,
		StatutoryDetail: rec.StatutoryDetail,
		TotalStatutory:  rec.TotalStatutory,
		NetPay:          rec.NetPay,
		IsNegative:      rec.IsNegative,

		Status:     string(rec.Status),
		PayslipURL: rec.PayslipURL,
		PaidAt:     rec.PaidAt,

		EmployeeName: rec.EmployeeName,
		EmployeeCode: rec.EmployeeCode,
	}
}

// ========== PAYROLL RUNS ==========

func (s *PayrollServiceImpl) Generate(ctx context.Context, req payroll.GeneratePayrollRequest) (payroll.GeneratePayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.GeneratePayrollResponse{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.GeneratePayrollResponse{}, err
	}

	schedule, err := s.payrollRepo.GetSchedule(ctx, companyID)
	if err != nil {
		return payroll.GeneratePayrollResponse{}, err
	}

	employees, err := s.employeeRepo.GetActiveByCompanyID(ctx, companyID)
	if err != nil {
		return payroll.GeneratePayrollResponse{}, err
	}
	if len(req.EmployeeIDs) > 0 {
		selected := make(map[string]bool, len(req.EmployeeIDs))
		for _, id := range req.EmployeeIDs {
			selected[id] = true
		}
		filtered := employees[:0]
		for _, e := range employees {
			if selected[e.ID] {
				filtered = append(filtered, e)
			}
		}
		employees = filtered
	}

	var resp payroll.GeneratePayrollResponse
	for i := range employees {
		e := &employees[i]

		result, err := payroll.Compute(payroll.Input{
			EmployeeID:     e.ID,
			WorkerType:     e.WorkerType,
			Salary:         e.Salary,
			HourlyRate:     e.HourlyRate,
			HoursWorked:    e.HoursWorked,
			Allowances:     e.Allowances,
			Deductions:     e.Deductions,
			Overtime:       e.Overtime,
			Bonus:          e.Bonus,
			Reimbursements: e.Reimbursements,
		}, schedule)
		if err != nil {
			// bad inputs on one employee must not sink the whole run
			s.logger.Warn("skipping employee in payroll run",
				slog.String("employee_id", e.ID),
				slog.String("reason", err.Error()),
			)
			resp.Skipped++
			continue
		}

		rec := &payroll.PayrollRecord{
			ID:          uuid.NewString(),
			EmployeeID:  e.ID,
			CompanyID:   companyID,
			PeriodMonth: req.Month,
			PeriodYear:  req.Year,

			BasePay:         result.BasePay,
			GrossPay:        result.GrossPay,
			Allowances:      e.Allowances,
			Deductions:      e.Deductions,
			Overtime:        e.Overtime,
			Bonus:           e.Bonus,
			Reimbursements:  e.Reimbursements,
			StatutoryDetail: result.StatutoryDetail,
			TotalStatutory:  result.TotalStatutory,
			NetPay:          result.NetPay,
			IsNegative:      result.IsNegative,

			Status: payroll.PayrollStatusDraft,

			EmployeeName: &e.FullName,
			EmployeeCode: &e.EmployeeCode,
		}

		if err := s.payrollRepo.CreateRecord(ctx, rec); err != nil {
			if errors.Is(err, payroll.ErrPayrollRecordAlreadyExists) {
				resp.Skipped++
				continue
			}
			return payroll.GeneratePayrollResponse{}, err
		}

		resp.Generated++
		resp.Records = append(resp.Records, toRecordResponse(rec))
	}

	s.notify(ctx, companyID, companyID, notification.TypePayrollGenerated,
		"Payroll generated",
		fmt.Sprintf("Payroll for %04d-%02d: %d generated, %d skipped", req.Year, req.Month, resp.Generated, resp.Skipped),
	)

	return resp, nil
}

func (s *PayrollServiceImpl) List(ctx context.Context, month, year int) ([]payroll.PayrollRecordResponse, error) {
	if month < 1 || month > 12 || year < 2000 || year > 2100 {
		return nil, payroll.ErrInvalidPeriod
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.payrollRepo.ListRecordsByPeriod(ctx, companyID, month, year)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.PayrollRecordResponse, 0, len(records))
	for i := range records {
		responses = append(responses, toRecordResponse(&records[i]))
	}

	return responses, nil
}

func (s *PayrollServiceImpl) Get(ctx context.Context, id string) (payroll.PayrollRecordResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	rec, err := s.payrollRepo.GetRecordByID(ctx, id, companyID)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	return toRecordResponse(rec), nil
}

func (s *PayrollServiceImpl) Finalize(ctx context.Context, id string) (payroll.PayrollRecordResponse, error) {
	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	rec, err := s.payrollRepo.GetRecordByID(ctx, id, companyID)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	if rec.Status == payroll.PayrollStatusPaid {
		return payroll.PayrollRecordResponse{}, payroll.ErrPayrollRecordAlreadyPaid
	}

	if err := s.payrollRepo.MarkPaid(ctx, id, companyID, userID); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	rec, err = s.payrollRepo.GetRecordByID(ctx, id, companyID)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	return toRecordResponse(rec), nil
}

func (s *PayrollServiceImpl) Delete(ctx context.Context, id string) error {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	rec, err := s.payrollRepo.GetRecordByID(ctx, id, companyID)
	if err != nil {
		return err
	}
	if rec.Status == payroll.PayrollStatusPaid {
		return payroll.ErrCannotDeletePaidRecord
	}

	return s.payrollRepo.DeleteRecord(ctx, id, companyID)
}

func (s *PayrollServiceImpl) GeneratePayslip(ctx context.Context, id string) (string, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return "", err
	}

	rec, err := s.payrollRepo.GetRecordByID(ctx, id, companyID)
	if err != nil {
		return "", err
	}

	pdf, err := payslip.Render(rec)
	if err != nil {
		return "", err
	}

	path := fmt.Sprintf("payslips/%s/%04d-%02d/%s.pdf", companyID, rec.PeriodYear, rec.PeriodMonth, rec.ID)
	stored, err := s.fileStorage.Upload(ctx, bytes.NewReader(pdf), path, "application/pdf")
	if err != nil {
		return "", fmt.Errorf("failed to store payslip: %w", err)
	}

	url, err := s.fileStorage.GetURL(ctx, stored, 24*time.Hour)
	if err != nil {
		return "", err
	}

	if err := s.payrollRepo.SetPayslipURL(ctx, rec.ID, url); err != nil {
		return "", err
	}

	return url, nil
}

// ========== STATUTORY SCHEDULE ==========

func toRuleResponse(rule *payroll.StatutoryRule) payroll.StatutoryRuleResponse {
	resp := payroll.StatutoryRuleResponse{
		ID:       rule.ID,
		Code:     rule.Code,
		Name:     rule.Name,
		Kind:     string(rule.Kind),
		Priority: rule.Priority,
		IsActive: rule.IsActive,
	}
	if rule.Kind == payroll.RuleKindFlatRate {
		rate := rule.Rate
		resp.Rate = &rate
	}
	for _, b := range rule.Brackets {
		resp.Brackets = append(resp.Brackets, payroll.TaxBracketRequest{
			LowerBound: b.LowerBound,
			UpperBound: b.UpperBound,
			Rate:       b.Rate,
		})
	}
	return resp
}

func (s *PayrollServiceImpl) GetSchedule(ctx context.Context) ([]payroll.StatutoryRuleResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	schedule, err := s.payrollRepo.GetSchedule(ctx, companyID)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.StatutoryRuleResponse, 0, len(schedule.Rules))
	for i := range schedule.Rules {
		responses = append(responses, toRuleResponse(&schedule.Rules[i]))
	}

	return responses, nil
}

func (s *PayrollServiceImpl) ReplaceSchedule(ctx context.Context, req payroll.ReplaceScheduleRequest) ([]payroll.StatutoryRuleResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	rules := make([]payroll.StatutoryRule, 0, len(req.Rules))
	for _, r := range req.Rules {
		rule := payroll.StatutoryRule{
			ID:        uuid.NewString(),
			CompanyID: companyID,
			Code:      r.Code,
			Name:      r.Name,
			Kind:      payroll.StatutoryRuleKind(r.Kind),
			Priority:  r.Priority,
			IsActive:  true,
		}
		if r.Rate != nil {
			rule.Rate = *r.Rate
		} else {
			rule.Rate = decimal.Zero
		}
		for _, b := range r.Brackets {
			rule.Brackets = append(rule.Brackets, payroll.TaxBracket{
				LowerBound: b.LowerBound,
				UpperBound: b.UpperBound,
				Rate:       b.Rate,
			})
		}
		rules = append(rules, rule)
	}

	if err := s.payrollRepo.ReplaceSchedule(ctx, companyID, rules); err != nil {
		return nil, err
	}

	responses := make([]payroll.StatutoryRuleResponse, 0, len(rules))
	for i := range rules {
		responses = append(responses, toRuleResponse(&rules[i]))
	}

	return responses, nil
}

// notify is fire-and-forget: failures are logged, never propagated.
func (s *PayrollServiceImpl) notify(ctx context.Context, companyID, recipientID string, nType notification.NotificationType, title, message string) {
	if recipientID == "" {
		return
	}
	n := &notification.Notification{
		ID:          uuid.NewString(),
		CompanyID:   companyID,
		RecipientID: recipientID,
		Type:        nType,
		Title:       title,
		Message:     message,
	}
	if err := s.notificationService.Notify(ctx, n); err != nil {
		s.logger.Warn("failed to create notification", slog.String("error", err.Error()))
	}
}
