package components

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Component is a self-rendering dashboard widget driven by the main model.
type Component interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (tea.Model, tea.Cmd)
	View() string
}
