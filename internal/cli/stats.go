package cli

import (
	"context"
	"fmt"

	"github.com/relieflink/backend/internal/stats"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show dashboard statistics for the ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := store.ListAll(context.Background())
		if err != nil {
			return fmt.Errorf("fetching donations: %w", err)
		}

		s := stats.Compute(records)

		fmt.Printf("Total weight:    %.1f kg\n", s.TotalWeight)
		fmt.Printf("Total donations: %d\n", s.TotalDonations)
		fmt.Printf("Distinct donors: %d\n", s.DonorsCount)
		if len(s.CategoryBreakdown) > 0 {
			fmt.Println("By category:")
			for _, cw := range s.CategoryBreakdown {
				fmt.Printf("  %-10s %.1f kg\n", cw.Name, cw.Value)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
