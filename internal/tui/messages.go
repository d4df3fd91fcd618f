package tui

import (
	"github.com/halewood/loansim/internal/domain"
)

// simulationDoneMsg carries a finished run back into the update loop. Each
// run is a complete synchronous Simulate call executed inside a tea.Cmd.
type simulationDoneMsg struct {
	result  *domain.SimulationResult
	summary domain.Summary
	err     error
}
