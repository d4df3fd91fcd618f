// Package breakeven solves for the smallest fixed monthly payment that
// clears a loan by a target horizon, by bisection over repeated simulation
// runs.
package breakeven

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/halewood/loansim/internal/calculation"
	"github.com/halewood/loansim/internal/domain"
)

// Solver finds minimal fixed monthly payments.
type Solver struct {
	CalcEngine *calculation.Engine
	Options    SolverOptions
}

// NewSolver creates a solver with the given options.
func NewSolver(calcEngine *calculation.Engine, options SolverOptions) *Solver {
	return &Solver{CalcEngine: calcEngine, Options: options}
}

// NewDefaultSolver creates a solver with default options.
func NewDefaultSolver(calcEngine *calculation.Engine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// SolveMonthlyFixed finds the smallest plan.MonthlyFixed that repays the
// loan in full within targetMonths. A targetMonths of zero means "by the
// write-off date". The base plan's upfront payment is kept in every probe.
//
// The search brackets upward by doubling until a payment meets the target,
// then bisects to within Options.Tolerance. Each probe is one full
// simulation, run sequentially; ctx is checked per probe.
func (s *Solver) SolveMonthlyFixed(ctx context.Context, params domain.LoanParameters, basePlan domain.RepaymentPlan, targetMonths int) (*Result, error) {
	if targetMonths < 0 {
		return nil, &BreakEvenError{
			Operation: "solve-monthly-fixed",
			Message:   fmt.Sprintf("target months must be non-negative, got %d", targetMonths),
		}
	}

	iterations := 0
	meets := func(monthlyFixed decimal.Decimal) (bool, *domain.SimulationResult, error) {
		iterations++
		plan := basePlan
		plan.MonthlyFixed = monthlyFixed
		result, err := s.CalcEngine.Simulate(ctx, params, plan)
		if err != nil {
			return false, nil, &BreakEvenError{Operation: "solve-monthly-fixed", Message: "simulation failed", Cause: err}
		}
		ok := result.RepaidInFull && (targetMonths == 0 || result.MonthsElapsed <= targetMonths)
		return ok, result, nil
	}

	// The loan may already clear at the base payment.
	low := basePlan.MonthlyFixed
	okLow, resultLow, err := meets(low)
	if err != nil {
		return nil, err
	}
	if okLow {
		return &Result{
			MonthlyFixed:  low,
			MonthsElapsed: resultLow.MonthsElapsed,
			TotalRepaid:   resultLow.TotalRepaid,
			Iterations:    iterations,
			Converged:     true,
		}, nil
	}

	// Bracket: double the payment until the target is met or the cap hit.
	high := decimal.Max(low.Mul(decimal.NewFromInt(2)), decimal.NewFromInt(100))
	var resultHigh *domain.SimulationResult
	for {
		if iterations >= s.Options.MaxIterations {
			return nil, &BreakEvenError{
				Operation: "solve-monthly-fixed",
				Message:   fmt.Sprintf("no bracket found within %d iterations", s.Options.MaxIterations),
			}
		}
		if high.GreaterThan(s.Options.PaymentCap) {
			return nil, &BreakEvenError{
				Operation: "solve-monthly-fixed",
				Message:   fmt.Sprintf("payment cap %s reached", s.Options.PaymentCap.StringFixed(2)),
				Cause:     ErrNotAchievable,
			}
		}
		ok, result, err := meets(high)
		if err != nil {
			return nil, err
		}
		if ok {
			resultHigh = result
			break
		}
		high = high.Mul(decimal.NewFromInt(2))
	}

	// Bisect between the failing low and the succeeding high.
	for high.Sub(low).GreaterThan(s.Options.Tolerance) && iterations < s.Options.MaxIterations {
		mid := low.Add(high).Div(decimal.NewFromInt(2))
		ok, result, err := meets(mid)
		if err != nil {
			return nil, err
		}
		if ok {
			high = mid
			resultHigh = result
		} else {
			low = mid
		}
	}

	return &Result{
		MonthlyFixed:  high,
		MonthsElapsed: resultHigh.MonthsElapsed,
		TotalRepaid:   resultHigh.TotalRepaid,
		Iterations:    iterations,
		Converged:     high.Sub(low).LessThanOrEqual(s.Options.Tolerance),
	}, nil
}
