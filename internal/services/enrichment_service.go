package services

import (
	"context"
	"strings"

	"tallybook/internal/llm"
	"tallybook/internal/logger"
	"tallybook/internal/models"
)

// enrichmentBoost is added to a suggestion's confidence when a model
// produced a rationale for it, capped at 1.0.
const enrichmentBoost = 0.05

// enrichmentService asks the model chain for a plain-language rationale
// for a suggested pairing. It is strictly best-effort.
type enrichmentService struct {
	chain *llm.Chain
}

// NewEnrichmentService creates a new EnrichmentServicer.
func NewEnrichmentService(chain *llm.Chain) EnrichmentServicer {
	return &enrichmentService{chain: chain}
}

// Enrich implements EnrichmentServicer. It returns nil whenever no usable
// rationale can be produced; callers treat nil as "keep the heuristic
// explanation".
func (s *enrichmentService) Enrich(ctx context.Context, suggestion *EntrySuggestion, txn *models.RawTransaction, accounts []models.Account, profile *models.BusinessProfile) *string {
	if s.chain == nil || s.chain.Empty() {
		return nil
	}

	debit := findAccountByID(accounts, suggestion.DebitAccountID)
	credit := findAccountByID(accounts, suggestion.CreditAccountID)
	if debit == nil || credit == nil {
		return nil
	}

	answer, err := s.chain.Complete(ctx, llm.Request{
		System:      buildEnrichSystemPrompt(txn.IsBusiness, profile, accounts),
		User:        buildEnrichUserPrompt(txn, suggestion, debit.Name, credit.Name),
		MaxTokens:   200,
		Temperature: 0.7,
	})
	if err != nil {
		logger.Get().Warnw("enrichment failed, keeping heuristic explanation",
			"transaction_id", txn.ID,
			"error", err.Error())
		return nil
	}

	rationale := strings.TrimSpace(answer)
	if rationale == "" {
		return nil
	}
	return &rationale
}

// BoostConfidence nudges a confidence up after a successful enrichment,
// never past 1.0.
func BoostConfidence(confidence float64) float64 {
	boosted := confidence + enrichmentBoost
	if boosted > 1.0 {
		return 1.0
	}
	return boosted
}
