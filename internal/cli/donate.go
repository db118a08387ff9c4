package cli

import (
	"context"
	"fmt"

	"github.com/relieflink/backend/internal/advisor"
	"github.com/relieflink/backend/internal/config"
	"github.com/relieflink/backend/internal/models"
	"github.com/spf13/cobra"
)

var (
	flagDonateLocation string
	flagDonateItems    string
	flagDonateWeight   float64
	flagDonateQuantity int
	flagDonateCategory string
	flagDonateMessage  string
)

var donateCmd = &cobra.Command{
	Use:   "donate",
	Short: "Record a new aid donation",
	Long: `Record a donation against the server. When --category is omitted the
items description is classified automatically; without a configured
GEMINI_API_KEY the classification degrades to a fixed fallback.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := requireLogin()
		if err != nil {
			return err
		}

		if flagDonateLocation == "" || flagDonateItems == "" {
			return fmt.Errorf("--location and --items are required")
		}
		if flagDonateWeight <= 0 {
			return fmt.Errorf("--weight must be greater than zero")
		}
		if flagDonateQuantity < 1 {
			return fmt.Errorf("--quantity must be at least 1")
		}

		ctx := context.Background()

		category := models.DonationCategory(flagDonateCategory)
		if category != "" && !category.Valid() {
			return fmt.Errorf("invalid category %q (Food, Medical, Clothing, Education, Other)", flagDonateCategory)
		}

		impactMessage := flagDonateMessage
		if category == "" {
			classifier, err := advisor.NewGeminiClassifier(ctx, config.Load().Advisor)
			if err != nil {
				return fmt.Errorf("setting up classification: %w", err)
			}
			result, err := classifier.Classify(ctx, flagDonateItems)
			if err != nil {
				fmt.Println("Classification degraded, using fallback category.")
			}
			category = result.Category
			if impactMessage == "" {
				impactMessage = result.ImpactMessage
			}
		}

		donation := &models.Donation{
			UserID:           user.ID,
			DonorName:        user.Name,
			Location:         flagDonateLocation,
			ItemsDescription: flagDonateItems,
			Category:         category,
			WeightKg:         flagDonateWeight,
			Quantity:         flagDonateQuantity,
			ImpactMessage:    impactMessage,
		}

		stored, err := store.Create(ctx, donation)
		if err != nil {
			return fmt.Errorf("recording donation: %w", err)
		}

		fmt.Printf("Donation recorded: %s\n", stored.ID)
		fmt.Printf("  category: %s\n", stored.Category)
		if stored.ImpactMessage != "" {
			fmt.Printf("  %s\n", stored.ImpactMessage)
		}
		return nil
	},
}

func init() {
	donateCmd.Flags().StringVar(&flagDonateLocation, "location", "", "Collection address")
	donateCmd.Flags().StringVar(&flagDonateItems, "items", "", "Description of the donated items")
	donateCmd.Flags().Float64Var(&flagDonateWeight, "weight", 0, "Total weight in kilograms")
	donateCmd.Flags().IntVar(&flagDonateQuantity, "quantity", 1, "Number of items")
	donateCmd.Flags().StringVar(&flagDonateCategory, "category", "", "Category (omit to classify automatically)")
	donateCmd.Flags().StringVar(&flagDonateMessage, "message", "", "Impact message (omit to generate)")
	rootCmd.AddCommand(donateCmd)
}
