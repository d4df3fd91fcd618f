// Package compare re-simulates a single loan under each configured
// repayment plan, strictly sequentially, and reports every plan against the
// no-voluntary-payment baseline.
package compare

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/halewood/loansim/internal/calculation"
	"github.com/halewood/loansim/internal/domain"
)

// CompareEngine orchestrates plan comparison.
type CompareEngine struct {
	CalcEngine *calculation.Engine
}

// NewCompareEngine creates a new comparison engine.
func NewCompareEngine(calcEngine *calculation.Engine) *CompareEngine {
	return &CompareEngine{CalcEngine: calcEngine}
}

// ComparePlans simulates the baseline and then every plan in order. Each run
// is a complete synchronous Simulate call on the same loan parameters.
func (ce *CompareEngine) ComparePlans(ctx context.Context, params domain.LoanParameters, plans []domain.RepaymentPlan) (*ComparisonSet, error) {
	baseline, err := ce.runPlan(ctx, params, domain.RepaymentPlan{Name: "baseline"})
	if err != nil {
		return nil, fmt.Errorf("failed to simulate baseline: %w", err)
	}

	set := &ComparisonSet{Baseline: baseline}
	for _, plan := range plans {
		metrics, err := ce.runPlan(ctx, params, plan)
		if err != nil {
			return nil, fmt.Errorf("failed to simulate plan %q: %w", plan.Name, err)
		}
		metrics.MonthsDelta = metrics.Summary.MonthsRepaying - baseline.Summary.MonthsRepaying
		metrics.TotalCostDelta = metrics.TotalCost.Sub(baseline.TotalCost)
		metrics.RepaidDelta = metrics.Summary.TotalRepaid.Sub(baseline.Summary.TotalRepaid)
		set.Plans = append(set.Plans, metrics)
	}

	set.Recommendations = set.GenerateRecommendations(params)
	return set, nil
}

func (ce *CompareEngine) runPlan(ctx context.Context, params domain.LoanParameters, plan domain.RepaymentPlan) (PlanMetrics, error) {
	result, err := ce.CalcEngine.Simulate(ctx, params, plan)
	if err != nil {
		return PlanMetrics{}, err
	}

	summary := calculation.Summarize(result, plan)
	months := decimal.NewFromInt(int64(result.MonthsElapsed))
	planOutlay := plan.Upfront.Add(plan.MonthlyFixed.Mul(months))

	// Interest is the cash paid beyond the principal that was cleared.
	principalCleared := params.Principal.Sub(result.Balance)
	interestPaid := result.TotalRepaid.Sub(principalCleared)
	if interestPaid.IsNegative() {
		interestPaid = decimal.Zero
	}

	return PlanMetrics{
		PlanName:     plan.Name,
		Plan:         plan,
		Summary:      summary,
		RepaidInFull: result.RepaidInFull,
		PlanOutlay:   planOutlay,
		InterestPaid: interestPaid,
		TotalCost:    summary.TotalNetLossPlusRepayments,
	}, nil
}
