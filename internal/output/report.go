package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/halewood/loansim/internal/domain"
)

// ReportGenerator renders a simulation result in the supported formats.
type ReportGenerator struct{}

// NewReportGenerator creates a new report generator.
func NewReportGenerator() *ReportGenerator {
	return &ReportGenerator{}
}

// GenerateReport renders the result and summary in the requested format.
func GenerateReport(result *domain.SimulationResult, summary domain.Summary, format string) (string, error) {
	rg := NewReportGenerator()

	switch format {
	case "console", "":
		return rg.GenerateConsoleReport(result, summary), nil
	case "csv":
		return rg.GenerateCSVReport(result)
	case "json":
		return rg.GenerateJSONReport(result, summary)
	case "yaml":
		return rg.GenerateYAMLReport(result, summary)
	default:
		return "", fmt.Errorf("unsupported format: %s (expected console, csv, json or yaml)", format)
	}
}

// GenerateConsoleReport renders the human-readable summary, one label per
// line with monetary values at two decimal places.
func (rg *ReportGenerator) GenerateConsoleReport(result *domain.SimulationResult, summary domain.Summary) string {
	var b strings.Builder

	b.WriteString("STUDENT LOAN REPAYMENT PROJECTION\n")
	b.WriteString("=================================\n\n")

	if !result.HasHistory() {
		b.WriteString("No monthly periods were simulated.\n\n")
	} else {
		first := result.History[0]
		last := result.History[len(result.History)-1]
		b.WriteString(fmt.Sprintf("Simulated from:       %s\n", first.Date.Format("2006-01-02")))
		b.WriteString(fmt.Sprintf("Last period:          %s\n\n", last.Date.Format("2006-01-02")))
	}

	repaidInFull := "no"
	if summary.RepaidInFull {
		repaidInFull = "yes"
	}

	b.WriteString(fmt.Sprintf("Total repaid:                      %s\n", FormatCurrency(summary.TotalRepaid)))
	b.WriteString(fmt.Sprintf("Net salary lost:                   %s\n", FormatCurrency(summary.NetSalaryLost)))
	b.WriteString(fmt.Sprintf("Remaining balance:                 %s\n", FormatCurrency(summary.RemainingBalance)))
	b.WriteString(fmt.Sprintf("Repaid in full:                    %s\n", repaidInFull))
	b.WriteString(fmt.Sprintf("Months repaying:                   %d\n", summary.MonthsRepaying))
	b.WriteString(fmt.Sprintf("Years repaying:                    %d\n", summary.YearsRepaying))
	b.WriteString(fmt.Sprintf("Net loss + plan payments:          %s\n", FormatCurrency(summary.TotalNetLossPlusRepayments)))

	return b.String()
}

// GenerateCSVReport renders the monthly history as CSV, one row per period.
func (rg *ReportGenerator) GenerateCSVReport(result *domain.SimulationResult) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"date", "salary", "balance", "totalRepaid", "netSalaryLost", "afterTaxSalary"}
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}

	rows := lo.Map(result.History, func(s domain.MonthSnapshot, _ int) []string {
		return []string{
			s.Date.Format("2006-01-02"),
			s.Salary.StringFixed(2),
			s.Balance.StringFixed(2),
			s.TotalRepaid.StringFixed(2),
			s.NetSalaryLost.StringFixed(2),
			s.AfterTaxSalary.StringFixed(2),
		}
	})
	if err := w.WriteAll(rows); err != nil {
		return "", fmt.Errorf("failed to write CSV rows: %w", err)
	}

	w.Flush()
	return buf.String(), w.Error()
}

type report struct {
	Summary domain.Summary         `json:"summary" yaml:"summary"`
	History []domain.MonthSnapshot `json:"history" yaml:"history"`
}

// GenerateJSONReport renders the summary and full history as indented JSON.
func (rg *ReportGenerator) GenerateJSONReport(result *domain.SimulationResult, summary domain.Summary) (string, error) {
	data, err := json.MarshalIndent(report{Summary: summary, History: result.History}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return string(data), nil
}

// GenerateYAMLReport renders the summary and full history as YAML.
func (rg *ReportGenerator) GenerateYAMLReport(result *domain.SimulationResult, summary domain.Summary) (string, error) {
	data, err := yaml.Marshal(report{Summary: summary, History: result.History})
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	return string(data), nil
}

// FormatCurrency formats a decimal as pounds sterling.
func FormatCurrency(amount decimal.Decimal) string {
	return "£" + amount.StringFixed(2)
}

// FormatPercentage formats a fractional rate as a percentage.
func FormatPercentage(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}

// FormatMonths renders a month count as "Ny Nm".
func FormatMonths(months int) string {
	return strconv.Itoa(months/12) + "y " + strconv.Itoa(months%12) + "m"
}
