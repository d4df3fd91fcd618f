package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// GrowthMode selects how the annual salary increase is applied.
type GrowthMode string

const (
	// GrowthPercentage applies the increase multiplicatively: salary *= (1 + g).
	GrowthPercentage GrowthMode = "percentage"
	// GrowthFixedAmount applies the increase additively: salary += g.
	GrowthFixedAmount GrowthMode = "fixed-amount"
)

// IsValid reports whether the mode is one of the supported values.
func (m GrowthMode) IsValid() bool {
	return m == GrowthPercentage || m == GrowthFixedAmount
}

// RepaymentPlan holds the payer-chosen voluntary payments layered on top of
// income-based repayment. The zero value means no voluntary payments.
// Immutable for the life of a simulation run.
type RepaymentPlan struct {
	Name         string          `yaml:"name" json:"name,omitempty"`
	Upfront      decimal.Decimal `yaml:"upfront" json:"upfront"`
	MonthlyFixed decimal.Decimal `yaml:"monthlyFixed" json:"monthlyFixed"`
}

// IsZero reports whether the plan adds nothing beyond income-based repayment.
func (p RepaymentPlan) IsZero() bool {
	return p.Upfront.IsZero() && p.MonthlyFixed.IsZero()
}

// LoanParameters is the engine configuration, immutable once a simulation
// starts. WriteOffDate must be strictly after StartDate for any repayment to
// occur; the engine degrades to a zero-length history otherwise.
type LoanParameters struct {
	StartDate          time.Time       `yaml:"startDate" json:"startDate"`
	WriteOffDate       time.Time       `yaml:"writeOffDate" json:"writeOffDate"`
	Principal          decimal.Decimal `yaml:"principal" json:"principal"`
	InitialSalary      decimal.Decimal `yaml:"initialSalary" json:"initialSalary"`
	SalaryGrowth       decimal.Decimal `yaml:"salaryGrowth" json:"salaryGrowth"`
	GrowthMode         GrowthMode      `yaml:"growthMode" json:"growthMode"`
	RepaymentThreshold decimal.Decimal `yaml:"repaymentThreshold" json:"repaymentThreshold"`
	RepaymentRate      decimal.Decimal `yaml:"repaymentRate" json:"repaymentRate"`
	AnnualInterestRate decimal.Decimal `yaml:"annualInterestRate" json:"annualInterestRate"`
}

// MonthSnapshot is one history entry, recording the state at the start of a
// simulated month, before that period's repayment and interest are applied.
// AfterTaxSalary is the annual after-tax salary under the repayment scenario.
type MonthSnapshot struct {
	Date           time.Time       `json:"date"`
	Salary         decimal.Decimal `json:"salary"`
	Balance        decimal.Decimal `json:"balance"`
	TotalRepaid    decimal.Decimal `json:"totalRepaid"`
	NetSalaryLost  decimal.Decimal `json:"netSalaryLost"`
	AfterTaxSalary decimal.Decimal `json:"afterTaxSalary"`
}

// SimulationResult is the full outcome of one simulation run. Every run
// builds a fresh result; the engine holds no state across calls.
type SimulationResult struct {
	// Balance is the outstanding principal at termination, never negative
	// and exactly zero when RepaidInFull is true.
	Balance decimal.Decimal `json:"balance"`
	// TotalRepaid is all cash applied to the balance, including the upfront
	// payment. Non-decreasing across the history.
	TotalRepaid decimal.Decimal `json:"totalRepaid"`
	// NetSalaryLost is the cumulative after-tax income forgone due to
	// income-based repayment. Non-decreasing across the history.
	NetSalaryLost decimal.Decimal `json:"netSalaryLost"`
	// MonthsElapsed counts completed monthly periods.
	MonthsElapsed int `json:"monthsElapsed"`
	// RepaidInFull is set only by the monthly loop's balance-exhaustion
	// check. An upfront payment that clears the whole principal before the
	// loop starts leaves it false even though Balance is zero.
	RepaidInFull bool `json:"repaidInFull"`
	// History holds one snapshot per simulated month, in chronological order.
	History []MonthSnapshot `json:"history"`
}

// HasHistory reports whether the run recorded any monthly periods.
func (r *SimulationResult) HasHistory() bool {
	return r != nil && len(r.History) > 0
}

// Summary reduces a simulation result to scalar totals for reporting.
type Summary struct {
	TotalRepaid      decimal.Decimal `json:"totalRepaid" yaml:"totalRepaid"`
	NetSalaryLost    decimal.Decimal `json:"netSalaryLost" yaml:"netSalaryLost"`
	RemainingBalance decimal.Decimal `json:"remainingBalance" yaml:"remainingBalance"`
	RepaidInFull     bool            `json:"repaidInFull" yaml:"repaidInFull"`
	MonthsRepaying   int             `json:"monthsRepaying" yaml:"monthsRepaying"`
	YearsRepaying    int             `json:"yearsRepaying" yaml:"yearsRepaying"`
	// TotalNetLossPlusRepayments is NetSalaryLost plus the plan's own outlay
	// (upfront + monthlyFixed x months). Income-based cash repayments are
	// deliberately not part of this figure.
	TotalNetLossPlusRepayments decimal.Decimal `json:"totalNetLossPlusRepayments" yaml:"totalNetLossPlusRepayments"`
}
