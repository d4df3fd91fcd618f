package breakeven

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrNotAchievable is returned when no monthly payment under the search cap
// can repay the loan by the target.
var ErrNotAchievable = errors.New("target not achievable within payment cap")

// SolverOptions bound the binary search.
type SolverOptions struct {
	// MaxIterations caps both the bracketing and bisection phases.
	MaxIterations int
	// Tolerance is the payment-amount convergence bound, in pounds.
	Tolerance decimal.Decimal
	// PaymentCap is the largest monthly fixed payment the solver will try.
	PaymentCap decimal.Decimal
}

// DefaultSolverOptions returns the standard search bounds.
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		MaxIterations: 100,
		Tolerance:     decimal.NewFromFloat(0.50),
		PaymentCap:    decimal.NewFromInt(100000),
	}
}

// Result is the outcome of a successful solve.
type Result struct {
	// MonthlyFixed is the smallest payment found that meets the target.
	MonthlyFixed decimal.Decimal `json:"monthlyFixed"`
	// MonthsElapsed and TotalRepaid describe the simulation at that payment.
	MonthsElapsed int             `json:"monthsElapsed"`
	TotalRepaid   decimal.Decimal `json:"totalRepaid"`
	Iterations    int             `json:"iterations"`
	Converged     bool            `json:"converged"`
}

// BreakEvenError wraps solver failures with the operation that failed.
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
