package cmd

import (
	"context"
	"fmt"

	"github.com/Lumos-Labs-HQ/knights/cmd/output"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which tables exist",
	Long:  `Check the connection and show which of the tables exist, in creation order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		sess, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer sess.Close()

		if err := sess.Ping(ctx); err != nil {
			return err
		}
		color.Green("✅ Connected (%s)", sess.Provider)

		statuses, err := sess.Schema.Status(ctx)
		if err != nil {
			return err
		}
		fmt.Println(output.Status(statuses))
		return nil
	},
}
