package tui

import (
	"stmtforge/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func Run(s store.Store, db *store.DB, cfg store.EditorConfig) error {
	m := newAppModel(s, db, cfg)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
