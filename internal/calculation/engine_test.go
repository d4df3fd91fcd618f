package calculation

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halewood/loansim/internal/domain"
)

// testParams is the reference scenario: plan-2 style loan, 30 year write-off.
func testParams() domain.LoanParameters {
	return domain.LoanParameters{
		StartDate:          time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC),
		WriteOffDate:       time.Date(2054, time.September, 1, 0, 0, 0, 0, time.UTC),
		Principal:          decimal.NewFromInt(40000),
		InitialSalary:      decimal.NewFromInt(30000),
		SalaryGrowth:       decimal.NewFromFloat(0.05),
		GrowthMode:         domain.GrowthPercentage,
		RepaymentThreshold: decimal.NewFromInt(27295),
		RepaymentRate:      decimal.NewFromFloat(0.09),
		AnnualInterestRate: decimal.NewFromFloat(0.043),
	}
}

func TestNewEngine(t *testing.T) {
	engine := NewEngine()

	assert.NotNil(t, engine.TaxCalc, "Should initialize tax calculator")
	assert.NotNil(t, engine.NICalc, "Should initialize national insurance calculator")
	assert.NotNil(t, engine.Logger, "Should initialize logger")
}

type recordingLogger struct {
	NopLogger
	infos int
}

func (l *recordingLogger) Infof(format string, args ...any) { l.infos++ }

func TestEngine_SetLogger(t *testing.T) {
	engine := NewEngine()

	custom := &recordingLogger{}
	engine.SetLogger(custom)
	assert.Equal(t, custom, engine.Logger, "Should set custom logger")

	engine.SetLogger(nil)
	assert.IsType(t, NopLogger{}, engine.Logger, "Nil should restore no-op logger")
}

func TestEngine_Simulate_ReferenceScenario(t *testing.T) {
	engine := NewEngine()

	result, err := engine.Simulate(context.Background(), testParams(), domain.RepaymentPlan{})
	require.NoError(t, err)

	assert.NotEmpty(t, result.History, "Should record monthly history")
	assert.Equal(t, result.MonthsElapsed, len(result.History), "One snapshot per month")

	// Interest exceeds repayment capacity at the starting salary, so the
	// balance rises before salary growth turns the trend around.
	first := result.History[0].Balance
	early := result.History[12].Balance
	assert.True(t, early.GreaterThan(first), "Balance should rise while repayments lag interest")

	// Terminates either by full repayment or at the write-off boundary.
	if result.RepaidInFull {
		assert.True(t, result.Balance.IsZero(), "RepaidInFull implies zero balance")
	} else {
		last := result.History[len(result.History)-1]
		assert.True(t, last.Date.Before(testParams().WriteOffDate), "Recorded periods stop at write-off")
		assert.True(t, result.Balance.GreaterThan(decimal.Zero))
	}
}

func TestEngine_Simulate_Monotonicity(t *testing.T) {
	engine := NewEngine()

	result, err := engine.Simulate(context.Background(), testParams(), domain.RepaymentPlan{
		MonthlyFixed: decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.History)

	for i := 1; i < len(result.History); i++ {
		prev, cur := result.History[i-1], result.History[i]
		assert.True(t, cur.TotalRepaid.GreaterThanOrEqual(prev.TotalRepaid),
			"TotalRepaid must be non-decreasing at month %d", i)
		assert.True(t, cur.NetSalaryLost.GreaterThanOrEqual(prev.NetSalaryLost),
			"NetSalaryLost must be non-decreasing at month %d", i)
		assert.False(t, cur.Balance.IsNegative(), "Balance must never be negative at month %d", i)
		assert.True(t, cur.Date.After(prev.Date), "History must be chronological at month %d", i)
	}
}

func TestEngine_Simulate_UpfrontPayoffBoundary(t *testing.T) {
	engine := NewEngine()
	params := testParams()

	result, err := engine.Simulate(context.Background(), params, domain.RepaymentPlan{
		Upfront: decimal.NewFromInt(50000),
	})
	require.NoError(t, err)

	// An upfront payment covering the whole principal never enters the
	// monthly loop, so RepaidInFull stays false despite the zero balance.
	assert.True(t, result.Balance.IsZero(), "Upfront should clear the balance")
	assert.Equal(t, 0, result.MonthsElapsed, "Loop should never run")
	assert.False(t, result.RepaidInFull, "RepaidInFull is only set inside the loop")
	assert.Empty(t, result.History)
	assert.True(t, result.TotalRepaid.Equal(params.Principal), "Upfront is capped at the principal")
}

func TestEngine_Simulate_WriteOffTermination(t *testing.T) {
	engine := NewEngine()
	params := testParams()
	params.Principal = decimal.NewFromInt(500000)
	params.WriteOffDate = params.StartDate.AddDate(2, 0, 0)

	result, err := engine.Simulate(context.Background(), params, domain.RepaymentPlan{})
	require.NoError(t, err)

	assert.True(t, result.Balance.GreaterThan(decimal.Zero), "Balance survives write-off")
	assert.False(t, result.RepaidInFull)
	assert.LessOrEqual(t, result.MonthsElapsed, 25, "Must stop at the write-off boundary")
	assert.Greater(t, result.MonthsElapsed, 0)
}

func TestEngine_Simulate_FullRepaymentClampsToZero(t *testing.T) {
	engine := NewEngine()
	params := testParams()
	params.Principal = decimal.NewFromInt(2000)

	result, err := engine.Simulate(context.Background(), params, domain.RepaymentPlan{
		MonthlyFixed: decimal.NewFromInt(500),
	})
	require.NoError(t, err)

	assert.True(t, result.RepaidInFull)
	assert.True(t, result.Balance.IsZero(), "Balance must be exactly zero, got %s", result.Balance)
	assert.NotEmpty(t, result.History, "The completing period is still recorded")
}

func TestEngine_Simulate_Determinism(t *testing.T) {
	engine := NewEngine()
	plan := domain.RepaymentPlan{Upfront: decimal.NewFromInt(1000), MonthlyFixed: decimal.NewFromInt(50)}

	first, err := engine.Simulate(context.Background(), testParams(), plan)
	require.NoError(t, err)
	second, err := engine.Simulate(context.Background(), testParams(), plan)
	require.NoError(t, err)

	assert.Equal(t, first.MonthsElapsed, second.MonthsElapsed)
	assert.True(t, first.Balance.Equal(second.Balance))
	assert.True(t, first.TotalRepaid.Equal(second.TotalRepaid))
	assert.True(t, first.NetSalaryLost.Equal(second.NetSalaryLost))
	require.Equal(t, len(first.History), len(second.History))
	for i := range first.History {
		assert.True(t, first.History[i].Balance.Equal(second.History[i].Balance), "month %d", i)
	}
}

func TestEngine_Simulate_DegradesOnMalformedDates(t *testing.T) {
	engine := NewEngine()
	params := testParams()
	params.WriteOffDate = params.StartDate.AddDate(-1, 0, 0)

	result, err := engine.Simulate(context.Background(), params, domain.RepaymentPlan{})
	require.NoError(t, err)

	assert.Equal(t, 0, result.MonthsElapsed)
	assert.Empty(t, result.History)
	assert.True(t, result.Balance.Equal(params.Principal))
}

func TestEngine_Simulate_SalaryGrowthAtYearBoundary(t *testing.T) {
	engine := NewEngine()
	params := testParams()
	// Start in September: the first raise lands at the January crossing,
	// four months in, not after twelve.
	params.WriteOffDate = params.StartDate.AddDate(0, 8, 0)

	result, err := engine.Simulate(context.Background(), params, domain.RepaymentPlan{})
	require.NoError(t, err)
	require.Greater(t, len(result.History), 5)

	sept := result.History[0].Salary
	assert.True(t, result.History[3].Salary.Equal(sept), "No raise before the year boundary")

	grown := sept.Mul(decimal.NewFromFloat(1.05))
	assert.True(t, result.History[5].Salary.Equal(grown),
		"Salary should grow once at the January crossing, got %s", result.History[5].Salary)
}

func TestEngine_Simulate_FixedAmountGrowth(t *testing.T) {
	engine := NewEngine()
	params := testParams()
	params.GrowthMode = domain.GrowthFixedAmount
	params.SalaryGrowth = decimal.NewFromInt(2000)
	params.WriteOffDate = params.StartDate.AddDate(1, 6, 0)

	result, err := engine.Simulate(context.Background(), params, domain.RepaymentPlan{})
	require.NoError(t, err)
	require.Greater(t, len(result.History), 6)

	grown := params.InitialSalary.Add(decimal.NewFromInt(2000))
	assert.True(t, result.History[6].Salary.Equal(grown),
		"Fixed-amount growth should add the configured amount, got %s", result.History[6].Salary)
}

func TestEngine_Simulate_ContextCancellation(t *testing.T) {
	engine := NewEngine()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := engine.Simulate(ctx, testParams(), domain.RepaymentPlan{})
	assert.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result)
}

func TestSummarize(t *testing.T) {
	plan := domain.RepaymentPlan{
		Upfront:      decimal.NewFromInt(1000),
		MonthlyFixed: decimal.NewFromInt(100),
	}
	result := &domain.SimulationResult{
		Balance:       decimal.NewFromInt(5000),
		TotalRepaid:   decimal.NewFromInt(20000),
		NetSalaryLost: decimal.NewFromInt(3000),
		MonthsElapsed: 25,
	}

	summary := Summarize(result, plan)

	assert.Equal(t, 25, summary.MonthsRepaying)
	assert.Equal(t, 3, summary.YearsRepaying, "25 months rounds up to 3 years")
	assert.True(t, summary.TotalRepaid.Equal(result.TotalRepaid))
	assert.True(t, summary.RemainingBalance.Equal(result.Balance))

	// Net loss plus the plan outlay only: 3000 + 1000 + 100*25.
	expected := decimal.NewFromInt(6500)
	assert.True(t, expected.Equal(summary.TotalNetLossPlusRepayments),
		"expected %s, got %s", expected, summary.TotalNetLossPlusRepayments)
}

func TestSummarize_WholeYears(t *testing.T) {
	result := &domain.SimulationResult{MonthsElapsed: 24}
	summary := Summarize(result, domain.RepaymentPlan{})
	assert.Equal(t, 2, summary.YearsRepaying, "24 months is exactly 2 years")

	zero := Summarize(&domain.SimulationResult{}, domain.RepaymentPlan{})
	assert.Equal(t, 0, zero.YearsRepaying)
}
