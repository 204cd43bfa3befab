package cmd

import (
	"context"
	"fmt"

	"github.com/Lumos-Labs-HQ/knights/internal/types"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	dropAll       bool
	dropNoCascade bool
	dropForce     bool
)

var dropCmd = &cobra.Command{
	Use:   "drop <table> | --all",
	Short: "Drop a table and every table that references it",
	Long: `Drop a table. By default every table that references it, directly or
transitively, is dropped first. With --no-cascade only the named table is
dropped and the database refuses if another table still references it.

Dropped data cannot be recovered.`,
	Example: `  knights drop ideas
  knights drop likes --no-cascade
  knights drop --all --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if dropAll == (len(args) == 1) {
			return fmt.Errorf("%w: name exactly one table or pass --all", types.ErrInvalidArgument)
		}

		ctx := context.Background()
		sess, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer sess.Close()

		if dropAll {
			if !dropForce && !confirm("Drop every table?") {
				color.Yellow("Cancelled")
				return nil
			}
			results, err := sess.Schema.DropAll(ctx)
			printTableResults(results, false)
			return err
		}

		table, err := sess.Schema.Resolve(args[0])
		if err != nil {
			return err
		}

		if dropNoCascade {
			dropped, err := sess.Schema.DropTable(ctx, table)
			if err != nil {
				return err
			}
			printTableResults([]types.TableResult{{Table: table, Changed: dropped}}, false)
			return nil
		}

		dependents, err := sess.Schema.Graph().Dependents(table)
		if err != nil {
			return err
		}
		if len(dependents) > 0 {
			color.Cyan("📋 Also dropping: %v", dependents)
		}
		if !dropForce && !confirm(fmt.Sprintf("Drop %s and %d dependent table(s)?", table, len(dependents))) {
			color.Yellow("Cancelled")
			return nil
		}

		results, err := sess.Schema.DropCascade(ctx, table)
		printTableResults(results, false)
		return err
	},
}

func init() {
	dropCmd.Flags().BoolVar(&dropAll, "all", false, "Drop every table")
	dropCmd.Flags().BoolVar(&dropNoCascade, "no-cascade", false, "Drop only the named table")
	dropCmd.Flags().BoolVarP(&dropForce, "force", "f", false, "Skip confirmation")
}
