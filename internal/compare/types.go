package compare

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/halewood/loansim/internal/domain"
)

// PlanMetrics holds the outcome of simulating one repayment plan.
type PlanMetrics struct {
	PlanName     string               `json:"planName"`
	Plan         domain.RepaymentPlan `json:"plan"`
	Summary      domain.Summary       `json:"summary"`
	RepaidInFull bool                 `json:"repaidInFull"`

	// PlanOutlay is the plan's own cash: upfront + monthlyFixed x months.
	PlanOutlay decimal.Decimal `json:"planOutlay"`
	// InterestPaid is total cash in minus principal actually cleared.
	InterestPaid decimal.Decimal `json:"interestPaid"`
	// TotalCost mirrors Summary.TotalNetLossPlusRepayments.
	TotalCost decimal.Decimal `json:"totalCost"`

	// Deltas against the baseline (no voluntary payments). Negative months
	// and cost deltas mean the plan finishes sooner or costs less.
	MonthsDelta    int             `json:"monthsDelta"`
	TotalCostDelta decimal.Decimal `json:"totalCostDelta"`
	RepaidDelta    decimal.Decimal `json:"repaidDelta"`
}

// ComparisonSet is the full output of a plan comparison run.
type ComparisonSet struct {
	Baseline        PlanMetrics   `json:"baseline"`
	Plans           []PlanMetrics `json:"plans"`
	Recommendations []string      `json:"recommendations"`
}

// GenerateRecommendations derives plain-language guidance from the computed
// metrics.
func (cs *ComparisonSet) GenerateRecommendations(params domain.LoanParameters) []string {
	var recs []string

	if len(cs.Plans) == 0 {
		return recs
	}

	cheapest := lo.MinBy(cs.Plans, func(a, b PlanMetrics) bool {
		return a.TotalCost.LessThan(b.TotalCost)
	})
	if cheapest.TotalCost.LessThan(cs.Baseline.TotalCost) {
		saving := cs.Baseline.TotalCost.Sub(cheapest.TotalCost)
		recs = append(recs, fmt.Sprintf("Plan %q has the lowest total cost, saving £%s against the baseline.",
			cheapest.PlanName, saving.StringFixed(2)))
	} else {
		recs = append(recs, "No plan beats the baseline on total cost; voluntary payments are not worthwhile under these assumptions.")
	}

	fastest := lo.MinBy(cs.Plans, func(a, b PlanMetrics) bool {
		return a.Summary.MonthsRepaying < b.Summary.MonthsRepaying
	})
	if fastest.RepaidInFull && !cs.Baseline.RepaidInFull {
		recs = append(recs, fmt.Sprintf("Plan %q clears the loan before write-off; the baseline does not.", fastest.PlanName))
	}

	for _, p := range cs.Plans {
		if p.Plan.Upfront.GreaterThanOrEqual(params.Principal) {
			recs = append(recs, fmt.Sprintf("Plan %q's upfront payment alone clears the full principal.", p.PlanName))
		}
	}

	return recs
}
