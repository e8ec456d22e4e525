package cli

import (
	"context"

	"stmtforge/internal/roles"
	"stmtforge/internal/store"

	"github.com/spf13/cobra"
)

func newRolesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roles",
		Short: "Role dictionary and role-link annotation",
	}
	cmd.AddCommand(newRolesListCmd(app))
	cmd.AddCommand(newRolesStatusCmd(app))
	cmd.AddCommand(newRolesSyncCmd(app))
	cmd.AddCommand(newRolesAddCmd(app))
	return cmd
}

func openDictionary(ctx context.Context, s store.Store) (*roles.SQLiteDictionary, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	return roles.OpenSQLite(ctx, s.RolesDBPath())
}

func newRolesListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the role dictionary",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			dict, err := openDictionary(ctx, s)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer dict.Close()
			entries, err := dict.Roles(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, entries)
		},
	}
}

func newRolesStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show link status for every statement with a role",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			dict, err := openDictionary(ctx, s)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer dict.Close()
			anns, err := roles.Annotate(ctx, db.Statements, dict)
			if err != nil {
				return writeErr(cmd, err)
			}
			type row struct {
				ID     string           `json:"id"`
				Role   string           `json:"role"`
				Status roles.LinkStatus `json:"status"`
			}
			out := make([]row, 0, len(anns))
			for _, a := range anns {
				out = append(out, row{ID: a.StatementID, Role: a.Role, Status: a.Status})
			}
			return writeOut(cmd, app, out)
		},
	}
}

func newRolesSyncCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Propose statement roles missing from the dictionary (additive)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			dict, err := openDictionary(ctx, s)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer dict.Close()
			added, err := roles.SyncBack(ctx, db.Statements, dict)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"added": added})
		},
	}
}

func newRolesAddCmd(app *App) *cobra.Command {
	var evidence string
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a role to the dictionary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			dict, err := openDictionary(ctx, s)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer dict.Close()
			if err := dict.AddRole(ctx, args[0], evidence); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"added": args[0]})
		},
	}
	cmd.Flags().StringVar(&evidence, "evidence", "", "Where this role was seen")
	return cmd
}
