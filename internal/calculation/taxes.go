package calculation

import (
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Income Tax: UK 2023/24 bands held constant for all projection years
//    - Personal allowance: 12,570 (no taper modeled above 100,000)
//    - No inflation indexing applied to future years
//
// 2. National Insurance: Class 1 employee contributions, annualized
//    - Primary threshold 12,570, upper earnings limit 50,270
//    - 12% between the thresholds, 2% above
//
// 3. Income-based loan repayment reduces taxable income; both calculators
//    operate on annual gross figures only.

// TaxBracket is one marginal band of a progressive tax table. Max is ignored
// for the top band, which is unbounded.
type TaxBracket struct {
	Min  decimal.Decimal
	Max  decimal.Decimal
	Rate decimal.Decimal
}

// IncomeTaxCalculator computes progressive income tax from an ordered band
// table. The bands are data so that an alternate fiscal regime can be swapped
// in without touching the simulation loop.
type IncomeTaxCalculator struct {
	Brackets []TaxBracket
}

// NewIncomeTaxCalculator creates a calculator loaded with the fixed 2023/24
// UK bands.
func NewIncomeTaxCalculator() *IncomeTaxCalculator {
	return &IncomeTaxCalculator{
		Brackets: []TaxBracket{
			{decimal.Zero, decimal.NewFromInt(12570), decimal.Zero},
			{decimal.NewFromInt(12570), decimal.NewFromInt(50270), decimal.NewFromFloat(0.20)},
			{decimal.NewFromInt(50270), decimal.NewFromInt(125140), decimal.NewFromFloat(0.40)},
			{decimal.NewFromInt(125140), decimal.Decimal{}, decimal.NewFromFloat(0.45)}, // unbounded
		},
	}
}

// Calculate returns the income tax due on a gross annual salary. Salaries at
// or below the personal allowance pay nothing; the top band has no upper
// bound.
func (itc *IncomeTaxCalculator) Calculate(grossAnnualSalary decimal.Decimal) decimal.Decimal {
	var totalTax decimal.Decimal

	remaining := grossAnnualSalary
	for i, bracket := range itc.Brackets {
		bandWidth := remaining
		if i < len(itc.Brackets)-1 {
			bandWidth = decimal.Min(bracket.Max.Sub(bracket.Min), remaining)
		}
		if bandWidth.LessThanOrEqual(decimal.Zero) {
			break
		}
		totalTax = totalTax.Add(bandWidth.Mul(bracket.Rate))
		remaining = remaining.Sub(bandWidth)
	}

	return totalTax
}

// NIBand is one marginal segment of the National Insurance table.
type NIBand struct {
	Threshold decimal.Decimal
	Rate      decimal.Decimal
}

// NationalInsuranceCalculator computes annual Class 1 employee contributions
// as linear segments above each threshold.
type NationalInsuranceCalculator struct {
	PrimaryThreshold decimal.Decimal
	UpperLimit       decimal.Decimal
	MainRate         decimal.Decimal
	UpperRate        decimal.Decimal
}

// NewNationalInsuranceCalculator creates a calculator with the fixed 2023/24
// thresholds.
func NewNationalInsuranceCalculator() *NationalInsuranceCalculator {
	return &NationalInsuranceCalculator{
		PrimaryThreshold: decimal.NewFromInt(12570),
		UpperLimit:       decimal.NewFromInt(50270),
		MainRate:         decimal.NewFromFloat(0.12),
		UpperRate:        decimal.NewFromFloat(0.02),
	}
}

// Calculate returns the annual contribution for a gross annual salary. The
// result is never negative.
func (nic *NationalInsuranceCalculator) Calculate(grossAnnualSalary decimal.Decimal) decimal.Decimal {
	if grossAnnualSalary.LessThanOrEqual(nic.PrimaryThreshold) {
		return decimal.Zero
	}

	mainBand := decimal.Min(grossAnnualSalary, nic.UpperLimit).Sub(nic.PrimaryThreshold)
	contribution := mainBand.Mul(nic.MainRate)

	if grossAnnualSalary.GreaterThan(nic.UpperLimit) {
		contribution = contribution.Add(grossAnnualSalary.Sub(nic.UpperLimit).Mul(nic.UpperRate))
	}

	return contribution
}
