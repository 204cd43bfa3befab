package cmd

import (
	"context"
	"fmt"

	"github.com/Lumos-Labs-HQ/knights/cmd/output"
	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query <table>",
	Short: "List every row of a table",
	Long: `List every row of users, ideas, comments or likes. Invalid users and
ideas are listed too, with their state shown. Ideas carry their like count.`,
	Example: `  knights query ideas
  knights query U`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		sess, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer sess.Close()

		table, err := sess.Schema.Resolve(args[0])
		if err != nil {
			return err
		}

		rendered, err := output.Query(ctx, sess.Validity, table)
		if err != nil {
			return err
		}
		fmt.Println(rendered)
		return nil
	},
}
