package cli

import (
	"encoding/json"
	"io"
	"os"

	"stmtforge/internal/model"

	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import [file|-]",
		Short: "Append extracted statement records (JSON array) to the workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return writeErr(cmd, err)
				}
				defer f.Close()
				r = f
			}

			var raws []model.Raw
			if err := json.NewDecoder(r).Decode(&raws); err != nil {
				return writeErr(cmd, err)
			}

			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			added, err := db.AppendRaw(raws, model.SourceExtracted)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"imported": len(added),
				"total":    len(db.Statements),
			})
		},
	}
}
