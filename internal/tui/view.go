package tui

import (
	"fmt"
	"strings"

	"github.com/halewood/loansim/internal/output"
	"github.com/halewood/loansim/internal/tui/tuistyles"
)

// View renders the active scene.
func (m Model) View() string {
	var content string
	switch m.scene {
	case SceneResults:
		content = m.viewResults()
	default:
		content = m.viewParameters()
	}
	return tuistyles.AppStyle.Render(content)
}

func (m Model) viewParameters() string {
	var b strings.Builder

	b.WriteString(tuistyles.TitleStyle.Render("Student Loan Explorer"))
	b.WriteString("\n")
	b.WriteString(tuistyles.SubtitleStyle.Render("Edit the scenario, then press enter to simulate"))
	b.WriteString("\n\n")

	for i := 0; i < fieldCount; i++ {
		label := tuistyles.MetricLabelStyle.Render(fieldLabels[i])
		if i == m.focused {
			label = tuistyles.SelectedItemStyle.Render(fieldLabels[i])
			label = fmt.Sprintf("%-28s", label)
		}
		b.WriteString(fmt.Sprintf("%s %s\n", label, m.inputs[i].View()))
	}

	if m.running {
		b.WriteString("\n")
		b.WriteString(tuistyles.InfoStyle.Render("Simulating..."))
	}
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(tuistyles.ErrorStyle.Render("Error: " + m.err.Error()))
	}

	b.WriteString("\n\n")
	b.WriteString(m.helpLine("↑/↓ move", "enter run", "q quit"))
	return b.String()
}

func (m Model) viewResults() string {
	var b strings.Builder

	b.WriteString(tuistyles.TitleStyle.Render("Projection Results"))
	b.WriteString("\n\n")

	metric := func(label, value string) {
		b.WriteString(tuistyles.MetricLabelStyle.Render(label))
		b.WriteString(" ")
		b.WriteString(tuistyles.MetricValueStyle.Render(value))
		b.WriteString("\n")
	}

	repaid := tuistyles.MetricNegativeStyle.Render("written off")
	if m.summary.RepaidInFull {
		repaid = tuistyles.MetricPositiveStyle.Render("repaid in full")
	}

	metric("Outcome", repaid)
	metric("Total repaid", output.FormatCurrency(m.summary.TotalRepaid))
	metric("Net salary lost", output.FormatCurrency(m.summary.NetSalaryLost))
	metric("Remaining balance", output.FormatCurrency(m.summary.RemainingBalance))
	metric("Time repaying", output.FormatMonths(m.summary.MonthsRepaying))
	metric("Net loss + plan payments", output.FormatCurrency(m.summary.TotalNetLossPlusRepayments))

	b.WriteString("\n")
	if m.showSalary {
		b.WriteString(output.RenderSalaryChart(m.result))
	} else {
		b.WriteString(output.RenderBalanceChart(m.result))
	}

	b.WriteString("\n\n")
	b.WriteString(m.helpLine("e edit", "c toggle chart", "q quit"))
	return b.String()
}

func (m Model) helpLine(entries ...string) string {
	parts := make([]string, len(entries))
	for i, e := range entries {
		k, desc, found := strings.Cut(e, " ")
		if !found {
			parts[i] = tuistyles.HelpDescStyle.Render(e)
			continue
		}
		parts[i] = tuistyles.HelpKeyStyle.Render(k) + " " + tuistyles.HelpDescStyle.Render(desc)
	}
	return strings.Join(parts, "  •  ")
}
