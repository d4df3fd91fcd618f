package breakeven

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halewood/loansim/internal/calculation"
	"github.com/halewood/loansim/internal/domain"
)

func solverParams() domain.LoanParameters {
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

func TestSolver_SolveMonthlyFixed_Converges(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewEngine())

	// Clear a 40k loan within ten years.
	result, err := solver.SolveMonthlyFixed(context.Background(), solverParams(), domain.RepaymentPlan{}, 120)
	require.NoError(t, err)

	assert.True(t, result.Converged)
	assert.True(t, result.MonthlyFixed.GreaterThan(decimal.Zero))
	assert.LessOrEqual(t, result.MonthsElapsed, 120)
	assert.Greater(t, result.Iterations, 1)

	// The solved payment really does clear the loan in time, and a clearly
	// smaller payment does not.
	engine := calculation.NewEngine()
	run, err := engine.Simulate(context.Background(), solverParams(), domain.RepaymentPlan{MonthlyFixed: result.MonthlyFixed})
	require.NoError(t, err)
	assert.True(t, run.RepaidInFull)
	assert.LessOrEqual(t, run.MonthsElapsed, 120)

	smaller := result.MonthlyFixed.Sub(decimal.NewFromInt(50))
	if smaller.GreaterThan(decimal.Zero) {
		weak, err := engine.Simulate(context.Background(), solverParams(), domain.RepaymentPlan{MonthlyFixed: smaller})
		require.NoError(t, err)
		assert.True(t, !weak.RepaidInFull || weak.MonthsElapsed > 120,
			"A materially smaller payment should miss the target")
	}
}

func TestSolver_SolveMonthlyFixed_AlreadyAchievable(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewEngine())
	params := solverParams()
	params.Principal = decimal.NewFromInt(1000)

	base := domain.RepaymentPlan{MonthlyFixed: decimal.NewFromInt(200)}
	result, err := solver.SolveMonthlyFixed(context.Background(), params, base, 0)
	require.NoError(t, err)

	assert.True(t, result.MonthlyFixed.Equal(base.MonthlyFixed),
		"The base payment already meets the target, nothing to solve")
	assert.Equal(t, 1, result.Iterations)
	assert.True(t, result.Converged)
}

func TestSolver_SolveMonthlyFixed_NotAchievable(t *testing.T) {
	engine := calculation.NewEngine()
	solver := NewSolver(engine, SolverOptions{
		MaxIterations: 50,
		Tolerance:     decimal.NewFromFloat(0.50),
		PaymentCap:    decimal.NewFromInt(100),
	})

	// A 40k loan cannot clear in six months under a 100/month cap.
	_, err := solver.SolveMonthlyFixed(context.Background(), solverParams(), domain.RepaymentPlan{}, 6)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotAchievable)

	var beErr *BreakEvenError
	require.ErrorAs(t, err, &beErr)
	assert.Equal(t, "solve-monthly-fixed", beErr.Operation)
}

func TestSolver_SolveMonthlyFixed_NegativeTarget(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewEngine())

	_, err := solver.SolveMonthlyFixed(context.Background(), solverParams(), domain.RepaymentPlan{}, -1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be non-negative")
}

func TestSolver_SolveMonthlyFixed_ContextCancelled(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewEngine())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := solver.SolveMonthlyFixed(ctx, solverParams(), domain.RepaymentPlan{}, 120)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSolver_SolveMonthlyFixed_KeepsBaseUpfront(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewEngine())

	base := domain.RepaymentPlan{Upfront: decimal.NewFromInt(20000)}
	withUpfront, err := solver.SolveMonthlyFixed(context.Background(), solverParams(), base, 120)
	require.NoError(t, err)

	without, err := solver.SolveMonthlyFixed(context.Background(), solverParams(), domain.RepaymentPlan{}, 120)
	require.NoError(t, err)

	assert.True(t, withUpfront.MonthlyFixed.LessThan(without.MonthlyFixed),
		"A large upfront payment should shrink the required monthly amount")
}
