// Package tui is the interactive explorer: edit loan parameters, run a
// simulation, and read the projected outcome without leaving the terminal.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/halewood/loansim/internal/calculation"
	"github.com/halewood/loansim/internal/domain"
)

// Scene identifies the active view.
type Scene int

const (
	SceneParameters Scene = iota
	SceneResults
)

// Indexes into Model.inputs; the order defines the form layout.
const (
	fieldPrincipal = iota
	fieldSalary
	fieldGrowth
	fieldGrowthMode
	fieldThreshold
	fieldRate
	fieldInterest
	fieldStartDate
	fieldWriteOffDate
	fieldUpfront
	fieldMonthlyFixed
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Principal (£)",
	"Initial salary (£)",
	"Salary growth",
	"Growth mode (percentage/fixed-amount)",
	"Repayment threshold (£)",
	"Repayment rate",
	"Annual interest rate",
	"Start date (YYYY-MM-DD)",
	"Write-off date (YYYY-MM-DD)",
	"Upfront payment (£)",
	"Fixed monthly payment (£)",
}

var fieldDefaults = [fieldCount]string{
	"40000",
	"30000",
	"0.05",
	"percentage",
	"27295",
	"0.09",
	"0.043",
	"2024-09-01",
	"2054-09-01",
	"0",
	"0",
}

// KeyMap defines the explorer key bindings.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Run    key.Binding
	Edit   key.Binding
	Charts key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "shift+tab"), key.WithHelp("↑", "previous field")),
		Down:   key.NewBinding(key.WithKeys("down", "tab"), key.WithHelp("↓", "next field")),
		Run:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run simulation")),
		Edit:   key.NewBinding(key.WithKeys("e", "esc"), key.WithHelp("e", "edit parameters")),
		Charts: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "toggle chart")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Model is the bubbletea application state.
type Model struct {
	scene      Scene
	keys       KeyMap
	inputs     [fieldCount]textinput.Model
	focused    int
	engine     *calculation.Engine
	result     *domain.SimulationResult
	summary    domain.Summary
	showSalary bool
	running    bool
	err        error
	width      int
	height     int
}

// NewModel creates the explorer with plan-2 style defaults pre-filled.
func NewModel() Model {
	m := Model{
		scene:  SceneParameters,
		keys:   DefaultKeyMap(),
		engine: calculation.NewEngine(),
		width:  80,
		height: 24,
	}

	for i := 0; i < fieldCount; i++ {
		in := textinput.New()
		in.Prompt = ""
		in.SetValue(fieldDefaults[i])
		in.CharLimit = 24
		in.Width = 20
		m.inputs[i] = in
	}
	m.inputs[0].Focus()

	return m
}

// Init is required by tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}
