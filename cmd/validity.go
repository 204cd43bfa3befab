package cmd

import (
	"context"

	"github.com/Lumos-Labs-HQ/knights/cmd/output"
	"github.com/Lumos-Labs-HQ/knights/internal/schema"
	"github.com/Lumos-Labs-HQ/knights/internal/types"
	"github.com/Lumos-Labs-HQ/knights/internal/validity"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var validityCmd = &cobra.Command{
	Use:   "validity <user|idea> <id> <Invalidate|Restore>",
	Short: "Set the validity of a user or an idea",
	Long: `Invalidate or restore a user or an idea. Rows are never deleted: an
invalid row stays listed with its state shown. Applying the state a row
already has succeeds and changes nothing.`,
	Example: `  knights validity idea 7 Invalidate
  knights validity U 108245374629101182934 Restore`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := types.ParseValidity(args[2])
		if err != nil {
			return err
		}
		return setValidity(args[0], args[1], state)
	},
}

var invalidateCmd = &cobra.Command{
	Use:   "invalidate <user|idea> <id>",
	Short: "Mark a user or an idea invalid",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setValidity(args[0], args[1], types.Invalid)
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <user|idea> <id>",
	Short: "Mark a user or an idea valid again",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setValidity(args[0], args[1], types.Valid)
	},
}

// setValidity checks the entity and id before connecting.
func setValidity(entity, id string, state types.Validity) error {
	table, err := schema.ResolveTable(schema.Tables, entity)
	if err != nil {
		return err
	}
	if err := validity.CheckID(table, id); err != nil {
		return err
	}

	ctx := context.Background()
	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	n, err := sess.Validity.Set(ctx, table, id, state)
	if err != nil {
		return err
	}

	if n == 0 {
		color.Yellow("ℹ️  %s", output.ValidityResult(table, id, state, n))
		return nil
	}
	color.Green("✅ %s", output.ValidityResult(table, id, state, n))
	return nil
}
