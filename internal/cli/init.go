package cli

import (
	"stmtforge/internal/store"

	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a workspace in the current directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Dir == "" {
				app.Dir = ".stmtforge"
			}
			s := store.Store{Dir: app.Dir}
			db, err := s.Load()
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			cfg, err := s.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"dir":        app.Dir,
				"statements": len(db.Statements),
			})
		},
	}
}
