package cli

import (
	"strconv"
	"strings"
	"time"

	"stmtforge/internal/model"
	"stmtforge/internal/mutate"
	"stmtforge/internal/numbering"
	"stmtforge/internal/store"
	"stmtforge/internal/view"

	"github.com/spf13/cobra"
)

func newStatementsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "statements",
		Aliases: []string{"stmts"},
		Short:   "List and edit statements",
	}
	cmd.AddCommand(newStatementsListCmd(app))
	cmd.AddCommand(newStatementsShowCmd(app))
	cmd.AddCommand(newStatementsAddCmd(app))
	cmd.AddCommand(newStatementsDeleteCmd(app))
	cmd.AddCommand(newStatementsMergeCmd(app))
	cmd.AddCommand(newStatementsSplitCmd(app))
	cmd.AddCommand(newLevelCmd(app, "indent", "Deepen statements one level"))
	cmd.AddCommand(newLevelCmd(app, "outdent", "Raise statements one level"))
	cmd.AddCommand(newMoveCmd(app, "move-up", "Move statements one position up"))
	cmd.AddCommand(newMoveCmd(app, "move-down", "Move statements one position down"))
	cmd.AddCommand(newStatementsReorderCmd(app))
	cmd.AddCommand(newStatementsRenumberCmd(app))
	cmd.AddCommand(newStatementsEditCmd(app))
	return cmd
}

func newStatementsListCmd(app *App) *cobra.Command {
	var filterTag, searchText string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List statements (optionally filtered and searched)",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, view.Display(db.Statements, filterTag, searchText))
		},
	}
	cmd.Flags().StringVar(&filterTag, "filter", view.FilterAll, "Directive filter (all|process|shall|must|should|may|will)")
	cmd.Flags().StringVar(&searchText, "search", "", "Substring search over description, number and role")
	return cmd
}

func newStatementsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			s, ok := db.FindStatement(args[0])
			if !ok {
				return writeErr(cmd, mutate.NotFoundError{ID: args[0]})
			}
			return writeOut(cmd, app, s)
		},
	}
}

func newStatementsAddCmd(app *App) *cobra.Command {
	var after, desc, role string
	var level int
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a statement",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := db.MintID()
			if err != nil {
				return writeErr(cmd, err)
			}
			now := time.Now().UTC()
			stmt := model.Statement{
				ID:          id,
				Description: desc,
				Directive:   model.DetectDirective(desc),
				Role:        strings.TrimSpace(role),
				Level:       model.ClampLevel(level),
				Source:      model.SourceManual,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			db.Statements = mutate.Add(db.Statements, after, stmt).Statements
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, stmt)
		},
	}
	cmd.Flags().StringVar(&after, "after", "", "Insert after this statement id (default: append)")
	cmd.Flags().StringVar(&desc, "description", "", "Statement body")
	cmd.Flags().StringVar(&role, "role", "", "Role name")
	cmd.Flags().IntVar(&level, "level", model.DefaultLevel, "Outline level (1-6)")
	return cmd
}

func newStatementsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete statements",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res := mutate.Delete(db.Statements, args)
			if !res.Changed {
				return writeOut(cmd, app, map[string]any{"removed": 0})
			}
			db.Statements = res.Statements
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"removed": res.Removed})
		},
	}
}

func newStatementsMergeCmd(app *App) *cobra.Command {
	var separator string
	cmd := &cobra.Command{
		Use:   "merge <id> <id>...",
		Short: "Merge statements into the earliest one in sequence order",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			sep := separator
			if sep == "" {
				cfg, err := s.LoadConfig()
				if err != nil {
					return writeErr(cmd, err)
				}
				sep = cfg.MergeSeparator
				if sep == "" {
					sep = store.DefaultMergeSeparator
				}
			}
			res, err := mutate.Merge(db.Statements, args, store.ExpandEscapes(sep))
			if err != nil {
				return writeErr(cmd, err)
			}
			db.Statements = res.Statements
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"survivor": res.SurvivorID,
				"absorbed": res.Absorbed,
			})
		},
	}
	cmd.Flags().StringVar(&separator, "separator", "", `Join separator (literal \n expands to newline; default from config)`)
	return cmd
}

func newStatementsSplitCmd(app *App) *cobra.Command {
	var delimiter string
	cmd := &cobra.Command{
		Use:   "split <id>",
		Short: "Split a statement into one per delimiter-separated fragment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			delim := delimiter
			if delim == "" {
				cfg, err := s.LoadConfig()
				if err != nil {
					return writeErr(cmd, err)
				}
				delim = cfg.SplitDelimiter
				if delim == "" {
					delim = store.DefaultSplitDelimiter
				}
			}
			var mintErr error
			mint := func() string {
				id, err := db.MintID()
				if err != nil {
					mintErr = err
				}
				return id
			}
			res, err := mutate.Split(db.Statements, args[0], store.ExpandEscapes(delim), mint)
			if err != nil {
				return writeErr(cmd, err)
			}
			if mintErr != nil {
				return writeErr(cmd, mintErr)
			}
			db.Statements = res.Statements
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"created": res.NewIDs})
		},
	}
	cmd.Flags().StringVar(&delimiter, "delimiter", "", `Split delimiter (literal \n expands to newline; default from config)`)
	return cmd
}

func newLevelCmd(app *App, use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			var res mutate.IndentResult
			if use == "indent" {
				res = mutate.Indent(db.Statements, args)
			} else {
				res = mutate.Outdent(db.Statements, args)
			}
			if res.Changed {
				db.Statements = res.Statements
				if err := s.Save(db); err != nil {
					return writeErr(cmd, err)
				}
			}
			return writeOut(cmd, app, map[string]any{"changed": res.Changed})
		},
	}
}

func newMoveCmd(app *App, use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			var res mutate.MoveResult
			if use == "move-up" {
				res = mutate.MoveUp(db.Statements, args)
			} else {
				res = mutate.MoveDown(db.Statements, args)
			}
			if res.Changed {
				db.Statements = res.Statements
				if err := s.Save(db); err != nil {
					return writeErr(cmd, err)
				}
			}
			return writeOut(cmd, app, map[string]any{"changed": res.Changed})
		},
	}
}

func newStatementsReorderCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <oldIndex> <newIndex>",
		Short: "Move the statement at oldIndex to newIndex (splice semantics)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			oldIdx, err := strconv.Atoi(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			newIdx, err := strconv.Atoi(args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res := mutate.Reorder(db.Statements, oldIdx, newIdx)
			if res.Changed {
				db.Statements = res.Statements
				if err := s.Save(db); err != nil {
					return writeErr(cmd, err)
				}
			}
			return writeOut(cmd, app, map[string]any{"changed": res.Changed})
		},
	}
}

func newStatementsRenumberCmd(app *App) *cobra.Command {
	var base, strategyName string
	cmd := &cobra.Command{
		Use:   "renumber [id...]",
		Short: "Renumber all statements, or only the given ids",
		RunE: func(cmd *cobra.Command, args []string) error {
			strategy, err := numbering.ParseStrategy(strategyName)
			if err != nil {
				return writeErr(cmd, err)
			}
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			var scope map[string]bool
			if len(args) > 0 {
				scope = map[string]bool{}
				for _, id := range args {
					scope[id] = true
				}
			}
			db.Statements = numbering.Renumber(db.Statements, scope, base, strategy)
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"strategy": strategy.String(), "base": base})
		},
	}
	cmd.Flags().StringVar(&base, "base", "", "Number prefix (accepted verbatim)")
	cmd.Flags().StringVar(&strategyName, "strategy", "sequential", "sequential|hierarchical|continue")
	return cmd
}

func newStatementsEditCmd(app *App) *cobra.Command {
	var desc, role string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a statement's description or role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			changed := false
			if cmd.Flags().Changed("description") {
				res, err := mutate.SetDescription(db.Statements, args[0], desc)
				if err != nil {
					return writeErr(cmd, err)
				}
				db.Statements = res.Statements
				changed = changed || res.Changed
			}
			if cmd.Flags().Changed("role") {
				res, err := mutate.SetRole(db.Statements, args[0], role)
				if err != nil {
					return writeErr(cmd, err)
				}
				db.Statements = res.Statements
				changed = changed || res.Changed
			}
			if changed {
				if err := s.Save(db); err != nil {
					return writeErr(cmd, err)
				}
			}
			st, _ := db.FindStatement(args[0])
			return writeOut(cmd, app, st)
		},
	}
	cmd.Flags().StringVar(&desc, "description", "", "New description (directive is re-derived)")
	cmd.Flags().StringVar(&role, "role", "", "New role name")
	return cmd
}
