package cli

import (
	"fmt"
	"io"
	"os"

	"stmtforge/internal/export"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var formatName, outPath string
	cmd := &cobra.Command{
		Use:   "export [id...]",
		Short: "Export the collection (or the given ids) as CSV or JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			subset := export.Subset(db.Statements, args)

			var w io.Writer = cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return writeErr(cmd, err)
				}
				defer f.Close()
				w = f
			}

			switch formatName {
			case "csv":
				err = export.CSV(w, subset)
			case "", "json":
				err = export.JSON(w, subset)
			default:
				err = fmt.Errorf("unknown export format: %s", formatName)
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&formatName, "format", "json", "Export format (json|csv)")
	cmd.Flags().StringVar(&outPath, "out", "", "Write to file instead of stdout")
	return cmd
}
