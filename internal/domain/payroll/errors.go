package payroll

import "errors"

var (
	ErrScheduleNotFound           = errors.New("statutory schedule not found")
	ErrPayrollRecordNotFound      = errors.New("payroll record not found")
	ErrPayrollRecordAlreadyExists = errors.New("payroll record already exists for this period")
	ErrPayrollRecordAlreadyPaid   = errors.New("payroll record already paid, cannot modify")
	ErrCannotDeletePaidRecord     = errors.New("cannot delete paid payroll record")
	ErrInvalidPeriod              = errors.New("invalid payroll period")
	ErrEmployeeNotFound           = errors.New("employee not found")
)
