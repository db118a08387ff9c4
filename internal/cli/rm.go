package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm <donation-id>",
	Short: "Delete a donation permanently",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid donation id %q", args[0])
		}

		if err := store.Delete(context.Background(), id); err != nil {
			return fmt.Errorf("deleting donation: %w", err)
		}

		fmt.Printf("Donation %s deleted.\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
}
