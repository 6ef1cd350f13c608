package services

import (
	"context"
	"errors"

	"github.com/auctionwatch/api/internal/guardrails"
	"github.com/auctionwatch/api/internal/logger"
	"github.com/auctionwatch/api/internal/models"
)

// ErrEvaluationHalted is returned when the operational kill switch is
// engaged. No decision is produced while it stands.
var ErrEvaluationHalted = errors.New("bid evaluation halted by kill switch")

// EvaluationService defines the interface for guardrail bid evaluation.
type EvaluationService interface {
	// EvaluateParcel runs a single parcel through the guardrails.
	// Returns ErrEvaluationHalted if the kill switch is engaged.
	EvaluateParcel(ctx context.Context, parcel models.Parcel) (models.BidDecision, error)

	// EvaluateBatch runs a batch of raw property records through the
	// guardrails, applying the documented fallback chains for missing
	// fields. Returns ErrEvaluationHalted if the kill switch is engaged.
	EvaluateBatch(ctx context.Context, records []models.PropertyRecord) (guardrails.BatchResult, error)
}

// evaluationService is the concrete implementation of EvaluationService.
type evaluationService struct {
	engine *guardrails.Engine
	log    *logger.Logger
}

// NewEvaluationService creates a new instance of EvaluationService.
func NewEvaluationService(engine *guardrails.Engine, log *logger.Logger) EvaluationService {
	return &evaluationService{
		engine: engine,
		log:    log,
	}
}

// EvaluateParcel checks the kill switch, then evaluates the parcel.
func (s *evaluationService) EvaluateParcel(ctx context.Context, parcel models.Parcel) (models.BidDecision, error) {
	if err := ctx.Err(); err != nil {
		return models.BidDecision{}, err
	}

	if guardrails.KillSwitchEngaged() {
		s.log.Warn("Kill switch engaged, refusing evaluation", map[string]interface{}{
			"parcel_id": parcel.ParcelID,
		})
		return models.BidDecision{}, ErrEvaluationHalted
	}

	decision := s.engine.Evaluate(parcel)

	s.log.Info("Parcel evaluated", map[string]interface{}{
		"parcel_id":  decision.ParcelID,
		"should_bid": decision.ShouldBid,
		"reason":     decision.Reason,
		"max_bid":    decision.MaxBidAmount,
	})

	return decision, nil
}

// EvaluateBatch checks the kill switch once per batch, then evaluates
// every record. The kill switch is polled again between batches by the
// caller, not between rows; a batch that started is allowed to finish.
func (s *evaluationService) EvaluateBatch(ctx context.Context, records []models.PropertyRecord) (guardrails.BatchResult, error) {
	if err := ctx.Err(); err != nil {
		return guardrails.BatchResult{}, err
	}

	if guardrails.KillSwitchEngaged() {
		s.log.Warn("Kill switch engaged, refusing batch evaluation", map[string]interface{}{
			"count": len(records),
		})
		return guardrails.BatchResult{}, ErrEvaluationHalted
	}

	result := s.engine.EvaluateBatch(records)

	s.log.Info("Batch evaluated", map[string]interface{}{
		"count":    len(records),
		"passed":   result.Passed,
		"rejected": result.Rejected,
	})

	return result, nil
}
