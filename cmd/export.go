package cmd

import (
	"context"
	"fmt"

	"github.com/Lumos-Labs-HQ/knights/internal/export"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var exportDir string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export table contents",
	Long: `
Write the rows of every existing table to a timestamped file under --out.
JSON and YAML exports can be loaded again with 'knights seed --file'.
CSV writes one file per table.

Examples:
  knights export
  knights export --yaml --out backups
  knights export --csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := export.FormatJSON
		if csv, _ := cmd.Flags().GetBool("csv"); csv {
			format = export.FormatCSV
		} else if y, _ := cmd.Flags().GetBool("yaml"); y {
			format = export.FormatYAML
		}

		ctx := context.Background()
		sess, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer sess.Close()

		data, err := export.Snapshot(ctx, sess)
		if err != nil {
			return err
		}
		if data.Size() == 0 {
			fmt.Println("No export created (database is empty)")
			return nil
		}

		path, err := export.Write(data, exportDir, format)
		if err != nil {
			return err
		}
		color.Green("✅ Exported %d record(s): %s", data.Size(), path)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportDir, "out", "o", "exports", "Directory to write the export to")
	exportCmd.Flags().BoolP("json", "j", false, "Export as JSON (default)")
	exportCmd.Flags().BoolP("yaml", "y", false, "Export as YAML")
	exportCmd.Flags().BoolP("csv", "c", false, "Export as CSV")
}
