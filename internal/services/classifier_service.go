package services

import (
	"context"
	"fmt"
	"strings"

	"tallybook/internal/llm"
	"tallybook/internal/logger"
	"tallybook/internal/models"
	"tallybook/internal/taxonomy"
)

// modelClassifyConfidence is the fixed confidence for a successful model
// answer. The model is trusted more than most keyword rules but is not a
// calibrated probability.
const modelClassifyConfidence = 0.85

// NewClassifier picks the classification strategy from the configured
// back-ends: model-backed with keyword fallback when a chain is available,
// keyword-only otherwise. Classification never returns an error either way.
func NewClassifier(chain *llm.Chain) Classifier {
	if chain.Empty() {
		return &keywordClassifier{}
	}
	return &modelClassifier{chain: chain, fallback: &keywordClassifier{}}
}

// keywordClassifier is the deterministic strategy: an ordered rule table
// over the lowercased description and merchant.
type keywordClassifier struct{}

// Classify implements Classifier. The taxonomy is closed by construction on
// this path, so IsNewCategory is always false.
func (c *keywordClassifier) Classify(_ context.Context, input ClassifyInput) CategoryResult {
	match := taxonomy.MatchKeywords(input.Description, input.Merchant, input.IsBusiness)
	return CategoryResult{
		Category:      match.Category,
		Confidence:    match.Confidence,
		Method:        MethodKeyword,
		IsNewCategory: false,
	}
}

// modelClassifier asks a model back-end first and degrades to the keyword
// table on any failure.
type modelClassifier struct {
	chain    *llm.Chain
	fallback Classifier
}

// Classify implements Classifier.
func (c *modelClassifier) Classify(ctx context.Context, input ClassifyInput) CategoryResult {
	answer, err := c.chain.Complete(ctx, llm.Request{
		System:      buildClassifySystemPrompt(input.IsBusiness, input.Profile),
		User:        buildClassifyUserPrompt(input),
		MaxTokens:   50,
		Temperature: 0.3,
	})
	if err != nil || answer == "" {
		if err != nil {
			logger.Get().Warnw("model classification failed, using keyword fallback", "error", err.Error())
		}
		return c.fallback.Classify(ctx, input)
	}

	category := strings.TrimSpace(answer)
	return CategoryResult{
		Category:      category,
		Confidence:    modelClassifyConfidence,
		Method:        MethodModel,
		IsNewCategory: !taxonomy.IsKnownCategory(category, input.IsBusiness),
	}
}

func buildClassifySystemPrompt(isBusiness bool, profile *models.BusinessProfile) string {
	var b strings.Builder

	context := "personal"
	if isBusiness {
		context = "business"
	}
	fmt.Fprintf(&b, "You are an expert accountant categorizing transactions for %s use.\n", context)

	if isBusiness && profile != nil {
		b.WriteString("\nBusiness Context:\n")
		fmt.Fprintf(&b, "- Type: %s\n", orNotSpecified(profile.BusinessType))
		fmt.Fprintf(&b, "- Category: %s\n", orNotSpecified(profile.BusinessCategory))
		fmt.Fprintf(&b, "- NAICS: %s\n", orNotSpecified(profile.NAICSCode))
	}

	b.WriteString("\nSelect the MOST SPECIFIC and APPROPRIATE category from these options:\n")
	for _, cat := range taxonomy.Categories(isBusiness) {
		fmt.Fprintf(&b, "- %s\n", cat)
	}
	b.WriteString("\nReturn ONLY the category name, nothing else.")

	return b.String()
}

func buildClassifyUserPrompt(input ClassifyInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Transaction:\nDescription: %q\n", input.Description)
	if input.Merchant != "" {
		fmt.Fprintf(&b, "Merchant: %s\n", input.Merchant)
	}
	b.WriteString("\nWhat is the most appropriate category?")

	return b.String()
}

func orNotSpecified(s string) string {
	if s == "" {
		return "Not specified"
	}
	return s
}
