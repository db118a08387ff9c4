package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/relieflink/backend/internal/models"
	"github.com/spf13/cobra"
)

var flagListMine bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List donations (newest first)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		var (
			records []models.Donation
			err     error
		)
		if flagListMine {
			user, loginErr := requireLogin()
			if loginErr != nil {
				return loginErr
			}
			records, err = store.ListByUser(ctx, user.ID)
		} else {
			records, err = store.ListAll(ctx)
		}
		if err != nil {
			return fmt.Errorf("fetching donations: %w", err)
		}

		if len(records) == 0 {
			fmt.Println("No donations yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDATE\tDONOR\tCATEGORY\tWEIGHT\tQTY\tSTATUS")
		for _, d := range records {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.1fkg\t%d\t%s\n",
				d.ID, d.Date.Format("2006-01-02"), d.DonorName, d.Category, d.WeightKg, d.Quantity, d.Status)
		}
		return w.Flush()
	},
}

func init() {
	listCmd.Flags().BoolVar(&flagListMine, "mine", false, "Only my donations")
	rootCmd.AddCommand(listCmd)
}
