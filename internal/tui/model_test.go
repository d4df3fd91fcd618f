package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModel_Defaults(t *testing.T) {
	m := NewModel()

	assert.Equal(t, SceneParameters, m.scene)
	assert.Equal(t, "40000", m.inputs[fieldPrincipal].Value())
	assert.Equal(t, "percentage", m.inputs[fieldGrowthMode].Value())

	params, plan, err := m.parseForm()
	require.NoError(t, err, "Defaults must parse cleanly")
	assert.True(t, params.WriteOffDate.After(params.StartDate))
	assert.True(t, plan.IsZero())
}

func TestModel_ParseForm_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		field   int
		value   string
		wantErr string
	}{
		{"bad principal", fieldPrincipal, "forty grand", "Principal"},
		{"bad growth mode", fieldGrowthMode, "sideways", "Growth mode"},
		{"bad date", fieldStartDate, "September 2024", "Start date"},
		{"write-off before start", fieldWriteOffDate, "2020-01-01", "must be after"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel()
			m.inputs[tt.field].SetValue(tt.value)

			_, _, err := m.parseForm()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestModel_RunProducesResults(t *testing.T) {
	m := NewModel()

	// Press enter: parse succeeds and a simulation command is issued.
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd, "Enter should start a simulation")

	msg := cmd()
	done, ok := msg.(simulationDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.err)
	assert.NotEmpty(t, done.result.History)

	final, _ := updated.Update(done)
	fm, ok := final.(Model)
	require.True(t, ok)
	assert.Equal(t, SceneResults, fm.scene)
	assert.Contains(t, fm.View(), "Projection Results")
}

func TestModel_QuitKey(t *testing.T) {
	m := NewModel()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
