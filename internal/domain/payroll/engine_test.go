package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workhive-hq/workhive-backend-go/internal/domain/employee"
	"github.com/workhive-hq/workhive-backend-go/internal/pkg/validator"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func flatTenPercent() Schedule {
	return Schedule{Rules: []StatutoryRule{
		{Code: "income_tax", Name: "Income Tax", Kind: RuleKindFlatRate, Rate: dec("0.10"), IsActive: true},
	}}
}

func TestCompute_HourlyWithOvertime(t *testing.T) {
	t.Parallel()

	input := Input{
		EmployeeID:  "emp-1",
		WorkerType:  employee.WorkerTypeHourly,
		HourlyRate:  decPtr("50"),
		HoursWorked: decPtr("160"),
		Overtime:    dec("200"),
		Allowances:  dec("100"),
	}

	result, err := Compute(input, flatTenPercent())
	require.NoError(t, err)

	assert.True(t, result.BasePay.Equal(dec("8000")), "base = 50 * 160, got %s", result.BasePay)
	assert.True(t, result.GrossPay.Equal(dec("8200")), "gross = base + overtime, got %s", result.GrossPay)
	assert.True(t, result.TotalStatutory.Equal(dec("820")), "statutory = 10%% of gross, got %s", result.TotalStatutory)
	assert.True(t, result.NetPay.Equal(dec("7480")), "net = gross + allowances - statutory, got %s", result.NetPay)
	assert.False(t, result.IsNegative)
	require.Contains(t, result.StatutoryDetail, "income_tax")
	assert.True(t, result.StatutoryDetail["income_tax"].Equal(dec("820")))
}

func TestCompute_SalariedWithAdjustments(t *testing.T) {
	t.Parallel()

	input := Input{
		EmployeeID:     "emp-2",
		WorkerType:     employee.WorkerTypeSalaried,
		Salary:         decPtr("5000"),
		Allowances:     dec("300"),
		Deductions:     dec("150"),
		Bonus:          dec("500"),
		Reimbursements: dec("75.50"),
	}

	result, err := Compute(input, flatTenPercent())
	require.NoError(t, err)

	// gross = 5000 + 500 = 5500; statutory = 550
	// net = 5500 + 300 + 75.50 - 150 - 550 = 5175.50
	assert.True(t, result.GrossPay.Equal(dec("5500")))
	assert.True(t, result.TotalStatutory.Equal(dec("550")))
	assert.True(t, result.NetPay.Equal(dec("5175.50")), "got %s", result.NetPay)
}

func TestCompute_ContractorUsesSalaryAsBase(t *testing.T) {
	t.Parallel()

	input := Input{
		EmployeeID: "emp-3",
		WorkerType: employee.WorkerTypeContractor,
		Salary:     decPtr("12000"),
	}

	result, err := Compute(input, Schedule{})
	require.NoError(t, err)
	assert.True(t, result.BasePay.Equal(dec("12000")))
	assert.True(t, result.NetPay.Equal(dec("12000")))
	assert.Empty(t, result.StatutoryDetail)
}

func TestCompute_ProgressiveBrackets(t *testing.T) {
	t.Parallel()

	schedule := Schedule{Rules: []StatutoryRule{
		{
			Code: "income_tax", Kind: RuleKindProgressive, IsActive: true,
			Brackets: []TaxBracket{
				{LowerBound: dec("0"), UpperBound: decPtr("1000"), Rate: dec("0")},
				{LowerBound: dec("1000"), UpperBound: decPtr("5000"), Rate: dec("0.10")},
				{LowerBound: dec("5000"), Rate: dec("0.20")},
			},
		},
	}}

	input := Input{
		EmployeeID: "emp-4",
		WorkerType: employee.WorkerTypeSalaried,
		Salary:     decPtr("8000"),
	}

	result, err := Compute(input, schedule)
	require.NoError(t, err)

	// 0% on first 1000, 10% on 1000..5000 (400), 20% on 5000..8000 (600)
	assert.True(t, result.TotalStatutory.Equal(dec("1000")), "got %s", result.TotalStatutory)
	assert.True(t, result.NetPay.Equal(dec("7000")), "got %s", result.NetPay)
}

func TestCompute_ProgressiveGrossBelowFirstBracket(t *testing.T) {
	t.Parallel()

	schedule := Schedule{Rules: []StatutoryRule{
		{
			Code: "income_tax", Kind: RuleKindProgressive, IsActive: true,
			Brackets: []TaxBracket{
				{LowerBound: dec("1000"), Rate: dec("0.10")},
			},
		},
	}}

	input := Input{
		EmployeeID: "emp-5",
		WorkerType: employee.WorkerTypeSalaried,
		Salary:     decPtr("800"),
	}

	result, err := Compute(input, schedule)
	require.NoError(t, err)
	assert.True(t, result.TotalStatutory.IsZero())
	assert.True(t, result.StatutoryDetail["income_tax"].IsZero())
}

func TestCompute_MultipleRulesEachFromGross(t *testing.T) {
	t.Parallel()

	schedule := Schedule{Rules: []StatutoryRule{
		{Code: "pension", Kind: RuleKindFlatRate, Rate: dec("0.05"), Priority: 1, IsActive: true},
		{Code: "health", Kind: RuleKindFlatRate, Rate: dec("0.02"), Priority: 2, IsActive: true},
	}}

	input := Input{
		EmployeeID: "emp-6",
		WorkerType: employee.WorkerTypeSalaried,
		Salary:     decPtr("1000"),
	}

	result, err := Compute(input, schedule)
	require.NoError(t, err)

	// Each rule applies to gross independently, not to the running remainder.
	assert.True(t, result.StatutoryDetail["pension"].Equal(dec("50")))
	assert.True(t, result.StatutoryDetail["health"].Equal(dec("20")))
	assert.True(t, result.TotalStatutory.Equal(dec("70")))
	assert.True(t, result.NetPay.Equal(dec("930")))
}

func TestCompute_InactiveRuleSkipped(t *testing.T) {
	t.Parallel()

	schedule := Schedule{Rules: []StatutoryRule{
		{Code: "pension", Kind: RuleKindFlatRate, Rate: dec("0.05"), IsActive: false},
	}}

	result, err := Compute(Input{
		EmployeeID: "emp-7",
		WorkerType: employee.WorkerTypeSalaried,
		Salary:     decPtr("1000"),
	}, schedule)
	require.NoError(t, err)
	assert.NotContains(t, result.StatutoryDetail, "pension")
	assert.True(t, result.NetPay.Equal(dec("1000")))
}

func TestCompute_RoundsToTwoDecimalPlaces(t *testing.T) {
	t.Parallel()

	schedule := Schedule{Rules: []StatutoryRule{
		{Code: "tax", Kind: RuleKindFlatRate, Rate: dec("0.0333"), IsActive: true},
	}}

	input := Input{
		EmployeeID:  "emp-8",
		WorkerType:  employee.WorkerTypeHourly,
		HourlyRate:  decPtr("33.335"),
		HoursWorked: decPtr("37.5"),
	}

	result, err := Compute(input, schedule)
	require.NoError(t, err)

	// raw base 1250.0625 rounds half away from zero
	assert.True(t, result.BasePay.Equal(dec("1250.06")), "got %s", result.BasePay)
	assert.Equal(t, int32(-2), result.NetPay.Exponent())
	assert.Equal(t, int32(-2), result.TotalStatutory.Exponent())
}

func TestCompute_NegativeNetFlaggedNotClamped(t *testing.T) {
	t.Parallel()

	input := Input{
		EmployeeID: "emp-9",
		WorkerType: employee.WorkerTypeSalaried,
		Salary:     decPtr("100"),
		Deductions: dec("500"),
	}

	result, err := Compute(input, flatTenPercent())
	require.NoError(t, err)
	assert.True(t, result.IsNegative)
	assert.True(t, result.NetPay.Equal(dec("-410")), "got %s", result.NetPay)
}

func TestCompute_Deterministic(t *testing.T) {
	t.Parallel()

	input := Input{
		EmployeeID:  "emp-10",
		WorkerType:  employee.WorkerTypeHourly,
		HourlyRate:  decPtr("41.75"),
		HoursWorked: decPtr("152.5"),
		Overtime:    dec("312.40"),
		Allowances:  dec("90"),
	}

	first, err := Compute(input, flatTenPercent())
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Compute(input, flatTenPercent())
		require.NoError(t, err)
		assert.True(t, first.NetPay.Equal(again.NetPay))
		assert.True(t, first.TotalStatutory.Equal(again.TotalStatutory))
	}
}

func TestCompute_ValidationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input Input
		field string
	}{
		{
			name:  "salaried missing salary",
			input: Input{WorkerType: employee.WorkerTypeSalaried},
			field: "salary",
		},
		{
			name:  "contractor missing salary",
			input: Input{WorkerType: employee.WorkerTypeContractor},
			field: "salary",
		},
		{
			name:  "hourly missing rate",
			input: Input{WorkerType: employee.WorkerTypeHourly, HoursWorked: decPtr("160")},
			field: "hourly_rate",
		},
		{
			name:  "hourly missing hours",
			input: Input{WorkerType: employee.WorkerTypeHourly, HourlyRate: decPtr("50")},
			field: "hours_worked",
		},
		{
			name:  "negative hours",
			input: Input{WorkerType: employee.WorkerTypeHourly, HourlyRate: decPtr("50"), HoursWorked: decPtr("-1")},
			field: "hours_worked",
		},
		{
			name:  "negative deductions",
			input: Input{WorkerType: employee.WorkerTypeSalaried, Salary: decPtr("1000"), Deductions: dec("-10")},
			field: "deductions",
		},
		{
			name:  "unknown worker type",
			input: Input{WorkerType: employee.WorkerType("freelance")},
			field: "worker_type",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Compute(tt.input, flatTenPercent())
			require.Error(t, err)

			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs.ToMap(), tt.field)
		})
	}
}
