// Package advisor maps free-text donation item descriptions to a category and
// a short impact message using a generative text service. Classification is
// advisory and best-effort: every failure path degrades to one fixed,
// reproducible fallback so donation submission never blocks on it.
package advisor

import (
	"context"

	"github.com/relieflink/backend/internal/models"
)

// Result is a classification outcome. On the success path neither field is
// guaranteed stable between calls with identical input; only the fallback is
// deterministic.
type Result struct {
	Category      models.DonationCategory `json:"category"`
	ImpactMessage string                  `json:"impactMessage"`
}

// Classifier annotates an item description. Implementations must return a
// usable Result even on error; callers may log the error but should keep the
// Result either way.
type Classifier interface {
	Classify(ctx context.Context, itemsDescription string) (Result, error)
}

const fallbackMessage = "Your contribution makes a real difference."

// Fallback is the fixed classification used whenever the external service is
// unreachable, misbehaves, or no credential is configured. It is exactly the
// same on every call.
func Fallback() Result {
	return Result{
		Category:      models.CategoryOther,
		ImpactMessage: fallbackMessage,
	}
}
