package archive

import (
	"context"
	"fmt"
	"time"

	"github.com/payflow-labs/payflow/internal/domain/entity"
	coreport "github.com/payflow-labs/payflow/internal/domain/port/core"
	"github.com/payflow-labs/payflow/internal/domain/port/persistence"
	"github.com/payflow-labs/payflow/internal/domain/usecase/audit"
	"github.com/payflow-labs/payflow/internal/resilience"
)

// Policy holds the retention parameters for the archival pipeline
type Policy struct {
	// HotRetention is how long records stay in the hot tier
	HotRetention time.Duration

	// WarmRetention is the compliance window; warm records older than this
	// are purged permanently
	WarmRetention time.Duration

	// BatchSize bounds each archival pass so long-running sweeps never hold
	// the hot tables hostage
	BatchSize int
}

// DefaultPolicy keeps 90 days hot and 7 years warm
func DefaultPolicy() Policy {
	return Policy{
		HotRetention:  90 * 24 * time.Hour,
		WarmRetention: 7 * 365 * 24 * time.Hour,
		BatchSize:     500,
	}
}

// Report summarizes one archival run
type Report struct {
	TransfersArchived       int   `json:"transfers_archived"`
	CashoutsArchived        int   `json:"cashouts_archived"`
	PaymentRequestsArchived int   `json:"payment_requests_archived"`
	Purged                  int64 `json:"purged"`
	DurationMs              int64 `json:"duration_ms"`
}

// Manager relocates aged records from the hot tier to the warm archive and
// purges archive records past the compliance window. Copy-then-delete
// ordering means a crash mid-run leaves duplicates across tiers, never a
// lost record; the next run's delete pass resolves them.
type Manager struct {
	transfers persistence.TransferRepository
	cashouts  persistence.CashoutRepository
	requests  persistence.PaymentRequestRepository
	archive   persistence.ArchiveStore
	auditor   audit.Recorder
	policy    Policy
	retry     resilience.Policy
	clock     coreport.TimeProvider
	logger    coreport.Logger
}

// NewManager creates the archival manager
func NewManager(
	transfers persistence.TransferRepository,
	cashouts persistence.CashoutRepository,
	requests persistence.PaymentRequestRepository,
	archive persistence.ArchiveStore,
	auditor audit.Recorder,
	policy Policy,
	clock coreport.TimeProvider,
	logger coreport.Logger,
) *Manager {
	if policy.BatchSize <= 0 {
		policy.BatchSize = DefaultPolicy().BatchSize
	}
	return &Manager{
		transfers: transfers,
		cashouts:  cashouts,
		requests:  requests,
		archive:   archive,
		auditor:   auditor,
		policy:    policy,
		retry:     resilience.DatabasePolicy(),
		clock:     clock,
		logger:    logger,
	}
}

// RunOnce executes a single archival pass over all archivable tables plus a
// purge of expired warm records
func (m *Manager) RunOnce(ctx context.Context) (*Report, error) {
	started := m.clock.Now()
	hotCutoff := started.Add(-m.policy.HotRetention)
	purgeCutoff := started.Add(-m.policy.WarmRetention)

	report := &Report{}

	archived, err := m.archiveTransfers(ctx, hotCutoff)
	if err != nil {
		return nil, err
	}
	report.TransfersArchived = archived

	archived, err = m.archiveCashouts(ctx, hotCutoff)
	if err != nil {
		return nil, err
	}
	report.CashoutsArchived = archived

	archived, err = m.archivePaymentRequests(ctx, hotCutoff)
	if err != nil {
		return nil, err
	}
	report.PaymentRequestsArchived = archived

	purged, err := m.purge(ctx, purgeCutoff)
	if err != nil {
		return nil, err
	}
	report.Purged = purged
	report.DurationMs = m.clock.Since(started).Milliseconds()

	m.logger.Info("Archival run completed", map[string]any{
		"transfers_archived":        report.TransfersArchived,
		"cashouts_archived":         report.CashoutsArchived,
		"payment_requests_archived": report.PaymentRequestsArchived,
		"purged":                    report.Purged,
		"duration_ms":               report.DurationMs,
	})

	m.auditor.Record(ctx, audit.Event{
		ActorType:    entity.ActorSystem,
		Action:       entity.ActionArchivalRun,
		ResourceType: "archive",
		Outcome:      entity.OutcomeSuccess,
		Details: map[string]any{
			"transfers_archived":        report.TransfersArchived,
			"cashouts_archived":         report.CashoutsArchived,
			"payment_requests_archived": report.PaymentRequestsArchived,
			"purged":                    report.Purged,
		},
	})

	return report, nil
}

// Run loops RunOnce on the given interval until the context is cancelled
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := m.RunOnce(ctx); err != nil {
				m.logger.Error("Archival run failed", map[string]any{
					"error": err.Error(),
				})
			}
		}
	}
}

// archiveTransfers drains archivable transfer batches until a batch comes up
// short of the batch size
func (m *Manager) archiveTransfers(ctx context.Context, cutoff time.Time) (int, error) {
	total := 0
	for {
		var batch []*entity.Transfer
		err := m.retry.Do(ctx, m.logger, func() error {
			var listErr error
			batch, listErr = m.transfers.ListArchivable(ctx, cutoff, m.policy.BatchSize)
			return listErr
		})
		if err != nil {
			return total, fmt.Errorf("failed to list archivable transfers: %w", err)
		}
		if len(batch) == 0 {
			return total, nil
		}

		for _, t := range batch {
			t.Tier = entity.TierWarm
		}
		if err := m.archive.StoreTransfers(ctx, batch); err != nil {
			return total, fmt.Errorf("failed to store transfers in archive: %w", err)
		}

		ids := make([]string, len(batch))
		for i, t := range batch {
			ids[i] = t.ID
		}
		err = m.retry.Do(ctx, m.logger, func() error {
			return m.transfers.DeleteByIDs(ctx, ids)
		})
		if err != nil {
			return total, fmt.Errorf("failed to delete archived transfers: %w", err)
		}

		total += len(batch)
		if len(batch) < m.policy.BatchSize {
			return total, nil
		}
	}
}

func (m *Manager) archiveCashouts(ctx context.Context, cutoff time.Time) (int, error) {
	total := 0
	for {
		var batch []*entity.Cashout
		err := m.retry.Do(ctx, m.logger, func() error {
			var listErr error
			batch, listErr = m.cashouts.ListArchivable(ctx, cutoff, m.policy.BatchSize)
			return listErr
		})
		if err != nil {
			return total, fmt.Errorf("failed to list archivable cashouts: %w", err)
		}
		if len(batch) == 0 {
			return total, nil
		}

		for _, c := range batch {
			c.Tier = entity.TierWarm
		}
		if err := m.archive.StoreCashouts(ctx, batch); err != nil {
			return total, fmt.Errorf("failed to store cashouts in archive: %w", err)
		}

		ids := make([]string, len(batch))
		for i, c := range batch {
			ids[i] = c.ID
		}
		err = m.retry.Do(ctx, m.logger, func() error {
			return m.cashouts.DeleteByIDs(ctx, ids)
		})
		if err != nil {
			return total, fmt.Errorf("failed to delete archived cashouts: %w", err)
		}

		total += len(batch)
		if len(batch) < m.policy.BatchSize {
			return total, nil
		}
	}
}

func (m *Manager) archivePaymentRequests(ctx context.Context, cutoff time.Time) (int, error) {
	total := 0
	for {
		var batch []*entity.PaymentRequest
		err := m.retry.Do(ctx, m.logger, func() error {
			var listErr error
			batch, listErr = m.requests.ListArchivable(ctx, cutoff, m.policy.BatchSize)
			return listErr
		})
		if err != nil {
			return total, fmt.Errorf("failed to list archivable payment requests: %w", err)
		}
		if len(batch) == 0 {
			return total, nil
		}

		for _, r := range batch {
			r.Tier = entity.TierWarm
		}
		if err := m.archive.StorePaymentRequests(ctx, batch); err != nil {
			return total, fmt.Errorf("failed to store payment requests in archive: %w", err)
		}

		ids := make([]string, len(batch))
		for i, r := range batch {
			ids[i] = r.ID
		}
		err = m.retry.Do(ctx, m.logger, func() error {
			return m.requests.DeleteByIDs(ctx, ids)
		})
		if err != nil {
			return total, fmt.Errorf("failed to delete archived payment requests: %w", err)
		}

		total += len(batch)
		if len(batch) < m.policy.BatchSize {
			return total, nil
		}
	}
}

func (m *Manager) purge(ctx context.Context, cutoff time.Time) (int64, error) {
	purged, err := m.archive.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired archive records: %w", err)
	}
	return purged, nil
}
