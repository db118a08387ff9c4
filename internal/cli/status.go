package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/relieflink/backend/internal/donations"
	"github.com/relieflink/backend/internal/models"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status <donation-id> <Pending|Collected|Shipped|Delivered>",
	Short: "Set the delivery status of a donation",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid donation id %q", args[0])
		}

		status := models.DonationStatus(args[1])
		if !status.Valid() {
			return fmt.Errorf("invalid status %q (Pending, Collected, Shipped, Delivered)", args[1])
		}

		updated, err := store.Update(context.Background(), id, donations.Patch{Status: &status})
		if err != nil {
			return fmt.Errorf("updating donation: %w", err)
		}

		fmt.Printf("Donation %s is now %s.\n", updated.ID, updated.Status)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
