package cmd

import (
	"context"

	"github.com/Lumos-Labs-HQ/knights/cmd/console"
	"github.com/spf13/cobra"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Open the interactive admin console",
	Long: `Open a menu driven console on a single connection. The connection is
held until the console exits.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		sess, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer sess.Close()

		return console.Run(ctx, sess)
	},
}
