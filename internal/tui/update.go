package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/halewood/loansim/internal/calculation"
	"github.com/halewood/loansim/internal/config"
	"github.com/halewood/loansim/internal/domain"
)

// Update routes messages to the active scene.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case simulationDoneMsg:
		m.running = false
		m.err = msg.err
		if msg.err == nil {
			m.result = msg.result
			m.summary = msg.summary
			m.scene = SceneResults
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		switch m.scene {
		case SceneParameters:
			return m.updateParameters(msg)
		case SceneResults:
			return m.updateResults(msg)
		}
	}

	return m, nil
}

func (m Model) updateParameters(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.focused = (m.focused + fieldCount - 1) % fieldCount
		return m.refocus(), nil

	case key.Matches(msg, m.keys.Down):
		m.focused = (m.focused + 1) % fieldCount
		return m.refocus(), nil

	case key.Matches(msg, m.keys.Run):
		params, plan, err := m.parseForm()
		if err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.running = true
		return m, runSimulationCmd(m.engine, params, plan)
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Edit):
		m.scene = SceneParameters
		return m, nil
	case key.Matches(msg, m.keys.Charts):
		m.showSalary = !m.showSalary
		return m, nil
	}
	return m, nil
}

func (m Model) refocus() Model {
	for i := range m.inputs {
		if i == m.focused {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m
}

// parseForm converts the text fields into engine parameters, reporting the
// first field that fails to parse.
func (m Model) parseForm() (domain.LoanParameters, domain.RepaymentPlan, error) {
	var params domain.LoanParameters
	var plan domain.RepaymentPlan

	dec := func(field int) (decimal.Decimal, error) {
		v, err := decimal.NewFromString(m.inputs[field].Value())
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("%s: %w", fieldLabels[field], err)
		}
		return v, nil
	}

	var err error
	if params.Principal, err = dec(fieldPrincipal); err != nil {
		return params, plan, err
	}
	if params.InitialSalary, err = dec(fieldSalary); err != nil {
		return params, plan, err
	}
	if params.SalaryGrowth, err = dec(fieldGrowth); err != nil {
		return params, plan, err
	}
	if params.RepaymentThreshold, err = dec(fieldThreshold); err != nil {
		return params, plan, err
	}
	if params.RepaymentRate, err = dec(fieldRate); err != nil {
		return params, plan, err
	}
	if params.AnnualInterestRate, err = dec(fieldInterest); err != nil {
		return params, plan, err
	}
	if plan.Upfront, err = dec(fieldUpfront); err != nil {
		return params, plan, err
	}
	if plan.MonthlyFixed, err = dec(fieldMonthlyFixed); err != nil {
		return params, plan, err
	}

	params.GrowthMode = domain.GrowthMode(m.inputs[fieldGrowthMode].Value())
	if !params.GrowthMode.IsValid() {
		return params, plan, fmt.Errorf("%s: must be %q or %q",
			fieldLabels[fieldGrowthMode], domain.GrowthPercentage, domain.GrowthFixedAmount)
	}

	if params.StartDate, err = time.Parse(config.DateFormat, m.inputs[fieldStartDate].Value()); err != nil {
		return params, plan, fmt.Errorf("%s: %w", fieldLabels[fieldStartDate], err)
	}
	if params.WriteOffDate, err = time.Parse(config.DateFormat, m.inputs[fieldWriteOffDate].Value()); err != nil {
		return params, plan, fmt.Errorf("%s: %w", fieldLabels[fieldWriteOffDate], err)
	}
	if !params.WriteOffDate.After(params.StartDate) {
		return params, plan, fmt.Errorf("write-off date must be after start date")
	}

	return params, plan, nil
}

func runSimulationCmd(engine *calculation.Engine, params domain.LoanParameters, plan domain.RepaymentPlan) tea.Cmd {
	return func() tea.Msg {
		result, err := engine.Simulate(context.Background(), params, plan)
		if err != nil {
			return simulationDoneMsg{err: err}
		}
		return simulationDoneMsg{
			result:  result,
			summary: calculation.Summarize(result, plan),
		}
	}
}
