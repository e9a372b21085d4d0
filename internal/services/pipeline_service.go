package services

import (
	"context"
	"errors"
	"sync"

	"gorm.io/gorm"

	apperrors "tallybook/internal/errors"
	"tallybook/internal/logger"
	"tallybook/internal/models"
)

// pipelineJob identifies one suggestion run.
type pipelineJob struct {
	ActorID       string
	OrgID         string
	TransactionID string
}

// PipelineService runs the suggestion pipeline for a transaction:
// classify, suggest, enrich, propose. Jobs are taken off a buffered
// channel by a single worker so mutations never wait on model calls.
type PipelineService struct {
	db         *gorm.DB
	accounts   AccountServicer
	profiles   BusinessProfileServicer
	classifier Classifier
	suggester  SuggestionServicer
	enricher   EnrichmentServicer
	proposals  ProposalServicer

	jobs chan pipelineJob
	wg   sync.WaitGroup
	once sync.Once
}

// pipelineQueueSize bounds how many pending runs can back up before
// Enqueue starts dropping. A dropped run is recovered by the next edit or
// an explicit re-suggest.
const pipelineQueueSize = 256

// NewPipelineService creates a PipelineService and starts its worker.
func NewPipelineService(
	db *gorm.DB,
	accounts AccountServicer,
	profiles BusinessProfileServicer,
	classifier Classifier,
	suggester SuggestionServicer,
	enricher EnrichmentServicer,
	proposals ProposalServicer,
) *PipelineService {
	s := &PipelineService{
		db:         db,
		accounts:   accounts,
		profiles:   profiles,
		classifier: classifier,
		suggester:  suggester,
		enricher:   enricher,
		proposals:  proposals,
		jobs:       make(chan pipelineJob, pipelineQueueSize),
	}
	s.wg.Add(1)
	go s.worker()
	return s
}

// Enqueue schedules a pipeline run without blocking the caller. When the
// queue is full the job is dropped with a warning rather than stalling the
// write path.
func (s *PipelineService) Enqueue(actorID, orgID, transactionID string) {
	select {
	case s.jobs <- pipelineJob{ActorID: actorID, OrgID: orgID, TransactionID: transactionID}:
	default:
		logger.Get().Warnw("pipeline queue full, dropping job", "transaction_id", transactionID)
	}
}

// Close stops accepting jobs and waits for the worker to drain.
func (s *PipelineService) Close() {
	s.once.Do(func() { close(s.jobs) })
	s.wg.Wait()
}

func (s *PipelineService) worker() {
	defer s.wg.Done()
	for job := range s.jobs {
		if _, err := s.Process(context.Background(), job.ActorID, job.OrgID, job.TransactionID); err != nil {
			logger.Get().Warnw("pipeline run failed",
				"transaction_id", job.TransactionID,
				"error", err.Error())
		}
	}
}

// Process runs the full pipeline synchronously for one transaction and
// returns the resulting proposal. A transaction whose proposal is already
// settled is skipped without error.
func (s *PipelineService) Process(ctx context.Context, actorID, orgID, transactionID string) (*models.ProposedEntry, error) {
	var txn models.RawTransaction
	if err := s.db.Where("id = ? AND org_id = ?", transactionID, orgID).First(&txn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	accounts, err := s.accounts.GetOrgAccounts(orgID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profiles.GetProfile(orgID)
	if err != nil {
		return nil, err
	}

	result := s.classifier.Classify(ctx, ClassifyInput{
		Description: txn.Description,
		Merchant:    txn.Merchant,
		IsBusiness:  txn.IsBusiness,
		Profile:     profile,
	})
	if result.Category != "" && result.Category != txn.Category {
		if err := s.db.Model(&txn).Update("category", result.Category).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		txn.Category = result.Category
	}

	suggestion, err := s.suggester.Suggest(&txn, accounts, SuggestOptions{
		Category: result.Category,
		Profile:  profile,
	})
	if err != nil {
		return nil, err
	}

	if rationale := s.enricher.Enrich(ctx, suggestion, &txn, accounts, profile); rationale != nil {
		suggestion.Explanation = *rationale
		suggestion.Confidence = BoostConfidence(suggestion.Confidence)
	}

	proposal, err := s.proposals.Propose(actorID, orgID, txn.ID, *suggestion, txn.IsBusiness)
	if err != nil {
		if errors.Is(err, apperrors.ErrProposalFinalized) {
			logger.Get().Debugw("transaction already settled, skipping proposal", "transaction_id", txn.ID)
			return nil, nil
		}
		return nil, err
	}
	return proposal, nil
}
