package calculation

import (
	"github.com/shopspring/decimal"
)

var twelve = decimal.NewFromInt(12)

// AnnualIncomeRepayment returns the income-based repayment due for a year at
// the given gross annual salary: max(0, salary - threshold) * rate.
func AnnualIncomeRepayment(grossAnnualSalary, threshold, rate decimal.Decimal) decimal.Decimal {
	excess := grossAnnualSalary.Sub(threshold)
	if excess.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return excess.Mul(rate)
}

// MonthlyIncomeRepayment is the annual figure divided by 12. It is always
// derived from the annualized amount, never recomputed from a monthly
// salary, to stay consistent with the annual threshold.
func MonthlyIncomeRepayment(grossAnnualSalary, threshold, rate decimal.Decimal) decimal.Decimal {
	return AnnualIncomeRepayment(grossAnnualSalary, threshold, rate).Div(twelve)
}
