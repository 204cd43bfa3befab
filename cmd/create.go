package cmd

import (
	"context"

	"github.com/Lumos-Labs-HQ/knights/internal/types"
	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create [table...]",
	Short: "Create tables",
	Long: `Create the named tables, or every table when none is named.

Tables are created in foreign-key order. A table that already exists is
left untouched. Naming a table whose referenced tables are missing fails.`,
	Example: `  knights create
  knights create users ideas`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		sess, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer sess.Close()

		if len(args) == 0 {
			results, err := sess.Schema.CreateAll(ctx)
			printTableResults(results, true)
			return err
		}

		for _, name := range args {
			table, err := sess.Schema.Resolve(name)
			if err != nil {
				return err
			}
			created, err := sess.Schema.CreateTable(ctx, table)
			if err != nil {
				return err
			}
			printTableResults([]types.TableResult{{Table: table, Changed: created}}, true)
		}
		return nil
	},
}
