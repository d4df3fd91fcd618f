package output

import (
	"github.com/samber/lo"

	"github.com/halewood/loansim/internal/domain"
	"github.com/halewood/loansim/internal/tui/components"
	"github.com/halewood/loansim/internal/tui/tuistyles"
)

// RenderBalanceChart renders the balance and cumulative-repaid series as an
// ASCII chart. Values are held until the next monthly point. With no history
// it reports "No data to display" instead of failing.
func RenderBalanceChart(result *domain.SimulationResult) string {
	chart := components.NewASCIIChart("Loan balance over time").
		WithSize(72, 16).
		WithAxisLabels("Month", "£")

	if result.HasHistory() {
		chart.AddSeries("Balance", seriesOf(result, func(s domain.MonthSnapshot) float64 {
			return s.Balance.InexactFloat64()
		}), tuistyles.ColorChartLine1)
		chart.AddSeries("Total repaid", seriesOf(result, func(s domain.MonthSnapshot) float64 {
			return s.TotalRepaid.InexactFloat64()
		}), tuistyles.ColorChartLine2)
		chart.WithLabels(yearLabels(result))
	}

	return chart.Render()
}

// RenderSalaryChart renders gross salary, after-tax salary and cumulative
// net-salary-lost.
func RenderSalaryChart(result *domain.SimulationResult) string {
	chart := components.NewASCIIChart("Salary and repayment cost").
		WithSize(72, 16).
		WithAxisLabels("Month", "£")

	if result.HasHistory() {
		chart.AddSeries("Salary", seriesOf(result, func(s domain.MonthSnapshot) float64 {
			return s.Salary.InexactFloat64()
		}), tuistyles.ColorChartLine1)
		chart.AddSeries("After tax", seriesOf(result, func(s domain.MonthSnapshot) float64 {
			return s.AfterTaxSalary.InexactFloat64()
		}), tuistyles.ColorChartLine3)
		chart.AddSeries("Net salary lost", seriesOf(result, func(s domain.MonthSnapshot) float64 {
			return s.NetSalaryLost.InexactFloat64()
		}), tuistyles.ColorChartLine4)
		chart.WithLabels(yearLabels(result))
	}

	return chart.Render()
}

func seriesOf(result *domain.SimulationResult, pick func(domain.MonthSnapshot) float64) []float64 {
	return lo.Map(result.History, func(s domain.MonthSnapshot, _ int) float64 {
		return pick(s)
	})
}

func yearLabels(result *domain.SimulationResult) []string {
	return lo.Map(result.History, func(s domain.MonthSnapshot, _ int) string {
		return s.Date.Format("2006-01")
	})
}
