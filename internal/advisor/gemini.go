package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/relieflink/backend/internal/config"
	"github.com/relieflink/backend/pkg/logger"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

const classifyPromptTemplate = `Analyze the following donation item description intended for relief aid: %q.

Determine the most appropriate category from this list: Food, Medical, Clothing, Education, Other.
Also write a very short (max 10 words) inspiring impact message about how this specific donation helps.

Reply with only a JSON object of the form {"category": "...", "impactMessage": "..."}.`

// GeminiClassifier classifies item descriptions through Google's generative
// text service. Without a configured credential it never touches the network
// and always answers with the fixed fallback.
type GeminiClassifier struct {
	llm     llms.Model
	timeout time.Duration
}

func NewGeminiClassifier(ctx context.Context, cfg config.AdvisorConfig) (*GeminiClassifier, error) {
	classifier := &GeminiClassifier{timeout: cfg.Timeout}

	if cfg.APIKey == "" {
		logger.Warn("advisor_credential_missing", map[string]interface{}{
			"fallback_category": string(Fallback().Category),
		})
		return classifier, nil
	}

	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.APIKey),
		googleai.WithDefaultModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("initializing gemini client: %w", err)
	}

	classifier.llm = llm
	return classifier, nil
}

func (g *GeminiClassifier) Classify(ctx context.Context, itemsDescription string) (Result, error) {
	if g.llm == nil {
		return Fallback(), nil
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	prompt := fmt.Sprintf(classifyPromptTemplate, itemsDescription)
	reply, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt,
		llms.WithTemperature(0.2),
		llms.WithMaxTokens(256),
	)
	if err != nil {
		return Fallback(), fmt.Errorf("gemini classification failed: %w", err)
	}

	result, err := parseResult(reply)
	if err != nil {
		return Fallback(), fmt.Errorf("gemini classification malformed: %w", err)
	}
	return result, nil
}

func parseResult(reply string) (Result, error) {
	cleaned := strings.TrimSpace(reply)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var result Result
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return Result{}, err
	}
	if !result.Category.Valid() {
		return Result{}, fmt.Errorf("category %q not in enum", result.Category)
	}
	if strings.TrimSpace(result.ImpactMessage) == "" {
		return Result{}, fmt.Errorf("empty impact message")
	}
	return result, nil
}
