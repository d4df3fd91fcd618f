package compare

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/halewood/loansim/internal/tui/tuistyles"
)

// FormatComparison renders a comparison set in the requested format.
func FormatComparison(set *ComparisonSet, format string) (string, error) {
	switch format {
	case "table", "":
		return formatTable(set), nil
	case "csv":
		return formatCSV(set)
	case "json":
		data, err := json.MarshalIndent(set, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal comparison: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported format: %s (expected table, csv or json)", format)
	}
}

func formatTable(set *ComparisonSet) string {
	var b strings.Builder

	b.WriteString(tuistyles.TableHeaderStyle.Render("REPAYMENT PLAN COMPARISON"))
	b.WriteString("\n\n")

	header := fmt.Sprintf("%-16s %10s %8s %12s %12s %12s %10s",
		"Plan", "Months", "Years", "Repaid", "Total cost", "Cost delta", "Cleared")
	b.WriteString(tuistyles.TableHeaderStyle.Render(header))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", len(header)))
	b.WriteString("\n")

	writeRow := func(m PlanMetrics, delta string) {
		cleared := "no"
		if m.RepaidInFull {
			cleared = "yes"
		}
		row := fmt.Sprintf("%-16s %10d %8d %12s %12s %12s %10s",
			m.PlanName,
			m.Summary.MonthsRepaying,
			m.Summary.YearsRepaying,
			m.Summary.TotalRepaid.StringFixed(2),
			m.TotalCost.StringFixed(2),
			delta,
			cleared)
		b.WriteString(row)
		b.WriteString("\n")
	}

	writeRow(set.Baseline, "-")
	for _, m := range set.Plans {
		writeRow(m, signedAmount(m.TotalCostDelta))
	}

	if len(set.Recommendations) > 0 {
		b.WriteString("\n")
		b.WriteString(tuistyles.TableHeaderStyle.Render("RECOMMENDATIONS"))
		b.WriteString("\n")
		for _, rec := range set.Recommendations {
			b.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorInfo).Render("  • " + rec))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func formatCSV(set *ComparisonSet) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"plan", "months", "years", "totalRepaid", "netSalaryLost", "planOutlay", "totalCost", "costDelta", "repaidInFull"}
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}

	all := append([]PlanMetrics{set.Baseline}, set.Plans...)
	rows := lo.Map(all, func(m PlanMetrics, _ int) []string {
		return []string{
			m.PlanName,
			strconv.Itoa(m.Summary.MonthsRepaying),
			strconv.Itoa(m.Summary.YearsRepaying),
			m.Summary.TotalRepaid.StringFixed(2),
			m.Summary.NetSalaryLost.StringFixed(2),
			m.PlanOutlay.StringFixed(2),
			m.TotalCost.StringFixed(2),
			m.TotalCostDelta.StringFixed(2),
			strconv.FormatBool(m.RepaidInFull),
		}
	})
	if err := w.WriteAll(rows); err != nil {
		return "", fmt.Errorf("failed to write CSV rows: %w", err)
	}

	w.Flush()
	return buf.String(), w.Error()
}

func signedAmount(d decimal.Decimal) string {
	if d.GreaterThan(decimal.Zero) {
		return "+" + d.StringFixed(2)
	}
	return d.StringFixed(2)
}
