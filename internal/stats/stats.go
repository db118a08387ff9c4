// Package stats derives the public dashboard metrics from the full donation
// set. Everything here is a pure function of its input: no error states, an
// empty ledger yields zero-valued aggregates.
package stats

import "github.com/relieflink/backend/internal/models"

const recentLimit = 5

type CategoryWeight struct {
	Name  models.DonationCategory `json:"name"`
	Value float64                 `json:"value"`
}

type Stats struct {
	TotalWeight       float64           `json:"totalWeight"`
	TotalDonations    int               `json:"totalDonations"`
	DonorsCount       int               `json:"donorsCount"`
	CategoryBreakdown []CategoryWeight  `json:"categoryBreakdown"`
	RecentDonations   []models.Donation `json:"recentDonations"`
}

// Compute aggregates the donation set it is given, in the order it is given.
// "Recent" means the first records of the input slice, so the caller's
// repository ordering decides what recent actually is.
func Compute(records []models.Donation) Stats {
	result := Stats{
		CategoryBreakdown: []CategoryWeight{},
		RecentDonations:   []models.Donation{},
	}

	donors := map[string]struct{}{}
	categoryIndex := map[models.DonationCategory]int{}

	for _, donation := range records {
		result.TotalWeight += donation.WeightKg
		result.TotalDonations++
		donors[donation.UserID.String()] = struct{}{}

		// Categories appear in first-seen order, only when represented.
		if idx, seen := categoryIndex[donation.Category]; seen {
			result.CategoryBreakdown[idx].Value += donation.WeightKg
		} else {
			categoryIndex[donation.Category] = len(result.CategoryBreakdown)
			result.CategoryBreakdown = append(result.CategoryBreakdown, CategoryWeight{
				Name:  donation.Category,
				Value: donation.WeightKg,
			})
		}
	}

	result.DonorsCount = len(donors)

	recent := records
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}
	result.RecentDonations = append(result.RecentDonations, recent...)

	return result
}
