package transfer

import (
	"context"
	"fmt"

	"github.com/payflow-labs/payflow/internal/domain/entity"
	coreport "github.com/payflow-labs/payflow/internal/domain/port/core"
	"github.com/payflow-labs/payflow/internal/domain/port/persistence"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
)

// HistoryService answers transfer history queries across storage tiers:
// hot rows first, then the warm archive when the hot result set comes up
// short. Every record is tagged with the tier it was read from.
type HistoryService struct {
	transfers persistence.TransferRepository
	archive   persistence.ArchiveStore
	logger    coreport.Logger
}

// NewHistoryService creates a HistoryService
func NewHistoryService(transfers persistence.TransferRepository, archive persistence.ArchiveStore, logger coreport.Logger) *HistoryService {
	return &HistoryService{
		transfers: transfers,
		archive:   archive,
		logger:    logger,
	}
}

// List returns the user's transfers, newest first, merged across tiers
func (s *HistoryService) List(ctx context.Context, q persistence.HistoryQuery) ([]*entity.Transfer, error) {
	if q.Limit <= 0 {
		q.Limit = defaultHistoryLimit
	}
	if q.Limit > maxHistoryLimit {
		q.Limit = maxHistoryLimit
	}

	hot, err := s.transfers.ListByUser(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to read hot transfer history: %w", err)
	}
	for _, t := range hot {
		t.Tier = entity.TierHot
	}

	if len(hot) >= q.Limit {
		return hot, nil
	}

	warmQuery := q
	warmQuery.Limit = q.Limit - len(hot)
	warm, err := s.archive.ListTransfersByUser(ctx, warmQuery)
	if err != nil {
		// Warm tier being down degrades history depth, not availability
		s.logger.Warn("Warm tier unavailable for history query, returning hot rows only", map[string]any{
			"user_id": q.UserID,
			"error":   err.Error(),
		})
		return hot, nil
	}
	for _, t := range warm {
		t.Tier = entity.TierWarm
	}

	return append(hot, warm...), nil
}
