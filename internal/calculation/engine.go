package calculation

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/halewood/loansim/internal/dateutil"
	"github.com/halewood/loansim/internal/domain"
)

// Engine runs month-by-month loan amortization projections. It holds only
// configuration and a logger; every Simulate call builds a fresh result, so
// an instance can be reused sequentially across runs and plans.
type Engine struct {
	TaxCalc *IncomeTaxCalculator
	NICalc  *NationalInsuranceCalculator
	Logger  Logger
	Debug   bool
}

// NewEngine creates a simulation engine with the fixed fiscal tables.
func NewEngine() *Engine {
	return &Engine{
		TaxCalc: NewIncomeTaxCalculator(),
		NICalc:  NewNationalInsuranceCalculator(),
		Logger:  NopLogger{},
	}
}

// SetLogger replaces the engine logger. A nil logger restores the no-op one.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	e.Logger = l
}

// AfterTax returns the annual take-home for a gross annual salary: gross
// minus income tax minus National Insurance.
func (e *Engine) AfterTax(grossAnnualSalary decimal.Decimal) decimal.Decimal {
	return grossAnnualSalary.
		Sub(e.TaxCalc.Calculate(grossAnnualSalary)).
		Sub(e.NICalc.Calculate(grossAnnualSalary))
}

// Simulate advances the loan one calendar month at a time until the balance
// is exhausted or the write-off date is reached, and returns the full run.
//
// The loop applies, in order within each period: history snapshot, net-salary
// loss accrual, cash repayment (capped at the balance), monthly interest on
// the post-repayment balance, the once-per-calendar-year salary increase, and
// the step to the next month end. Interest compounds monthly at
// AnnualInterestRate/12.
//
// Malformed parameters (write-off date not after the start date, zero months
// of runway) are not rejected here; the loop condition is simply false and
// the result carries an empty history. Input validation belongs to the
// config layer.
func (e *Engine) Simulate(ctx context.Context, params domain.LoanParameters, plan domain.RepaymentPlan) (*domain.SimulationResult, error) {
	result := &domain.SimulationResult{
		Balance: params.Principal,
		History: []domain.MonthSnapshot{},
	}

	salary := params.InitialSalary
	currentDate := params.StartDate
	lastRaiseYear := currentDate.Year()

	// Upfront payment lands before the loop. When it clears the whole
	// principal the loop never runs and RepaidInFull stays false; only the
	// monthly balance-exhaustion check sets that flag.
	if plan.Upfront.GreaterThan(decimal.Zero) {
		applied := decimal.Min(plan.Upfront, result.Balance)
		result.Balance = result.Balance.Sub(applied)
		result.TotalRepaid = result.TotalRepaid.Add(applied)
		e.Logger.Debugf("applied upfront payment %s, balance now %s", applied.StringFixed(2), result.Balance.StringFixed(2))
	}

	one := decimal.NewFromInt(1)
	annualGrowthFactor := one.Add(params.SalaryGrowth)
	monthlyInterestFactor := one.Add(params.AnnualInterestRate.Div(twelve))

	for result.Balance.GreaterThan(decimal.Zero) && currentDate.Before(params.WriteOffDate) {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("simulation cancelled after %d months: %w", result.MonthsElapsed, ctx.Err())
		default:
		}

		annualRepayment := AnnualIncomeRepayment(salary, params.RepaymentThreshold, params.RepaymentRate)
		afterTaxWithRepayment := e.AfterTax(salary.Sub(annualRepayment))

		// Snapshot the state before this period's changes.
		result.History = append(result.History, domain.MonthSnapshot{
			Date:           currentDate,
			Salary:         salary,
			Balance:        result.Balance,
			TotalRepaid:    result.TotalRepaid,
			NetSalaryLost:  result.NetSalaryLost,
			AfterTaxSalary: afterTaxWithRepayment,
		})

		// Net salary lost: the repayment reduces taxable income, so the
		// monthly loss is the gap between the two after-tax scenarios.
		monthlyLoss := e.AfterTax(salary).Sub(afterTaxWithRepayment).Div(twelve)
		result.NetSalaryLost = result.NetSalaryLost.Add(monthlyLoss)

		// Cash repayment, capped so the balance never goes negative.
		repayment := annualRepayment.Div(twelve).Add(plan.MonthlyFixed)
		actual := decimal.Min(repayment, result.Balance)
		result.Balance = result.Balance.Sub(actual)
		result.TotalRepaid = result.TotalRepaid.Add(actual)

		// Interest accrues on the post-repayment balance.
		result.Balance = result.Balance.Mul(monthlyInterestFactor)

		// Salary increases at most once per calendar year, keyed by the
		// date's year: a mid-year start gets its first raise at the next
		// January crossing, not after twelve elapsed months.
		if currentDate.Year() > lastRaiseYear {
			switch params.GrowthMode {
			case domain.GrowthFixedAmount:
				salary = salary.Add(params.SalaryGrowth)
			default:
				salary = salary.Mul(annualGrowthFactor)
			}
			lastRaiseYear = currentDate.Year()
			if e.Debug {
				e.Logger.Debugf("salary increased to %s in %d", salary.StringFixed(2), lastRaiseYear)
			}
		}

		result.MonthsElapsed++
		currentDate = dateutil.NextMonthEnd(currentDate)

		// The terminal check runs after the date and counter advance so the
		// period that completed repayment is still recorded.
		if result.Balance.LessThanOrEqual(decimal.Zero) {
			result.Balance = decimal.Zero
			result.RepaidInFull = true
			break
		}
	}

	e.Logger.Infof("simulation finished: %d months, repaid %s, remaining %s, repaidInFull=%v",
		result.MonthsElapsed, result.TotalRepaid.StringFixed(2), result.Balance.StringFixed(2), result.RepaidInFull)

	return result, nil
}

// Summarize reduces a simulation result to the reporting totals.
//
// TotalNetLossPlusRepayments adds the plan's own outlay (upfront plus
// monthlyFixed for every elapsed month) to the cumulative net salary lost.
// Income-based cash repayments are intentionally excluded from this figure.
func Summarize(result *domain.SimulationResult, plan domain.RepaymentPlan) domain.Summary {
	months := result.MonthsElapsed
	years := months / 12
	if months%12 != 0 {
		years++
	}

	planOutlay := plan.Upfront.Add(plan.MonthlyFixed.Mul(decimal.NewFromInt(int64(months))))

	return domain.Summary{
		TotalRepaid:                result.TotalRepaid,
		NetSalaryLost:              result.NetSalaryLost,
		RemainingBalance:           result.Balance,
		RepaidInFull:               result.RepaidInFull,
		MonthsRepaying:             months,
		YearsRepaying:              years,
		TotalNetLossPlusRepayments: result.NetSalaryLost.Add(planOutlay),
	}
}
