package api

import (
	"context"
	"sync"

	"github.com/dmateos/tagsync/internal/logging"
	"github.com/dmateos/tagsync/internal/types"
	"github.com/dmateos/tagsync/internal/utils"
	"golang.org/x/sync/errgroup"
)

// BatchUpdater accumulates description updates and executes them as one
// batch. Items run independently: a failing update is reported in its own
// outcome and never blocks or rolls back the others. Outcomes arrive in
// completion order, which may differ from submission order.
type BatchUpdater struct {
	store       Store
	concurrency int
	logger      logging.Logger

	mu       sync.Mutex
	items    []types.BatchItem
	executed bool
}

// NewBatchUpdater creates a batch updater over the given store
func NewBatchUpdater(store Store, concurrency int, logger logging.Logger) *BatchUpdater {
	if concurrency <= 0 {
		concurrency = utils.DefaultBatchConcurrency
	}
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}
	return &BatchUpdater{
		store:       store,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Add enqueues one update. The queue is append-only and must not be
// touched once Execute has begun.
func (b *BatchUpdater) Add(item types.BatchItem) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.executed {
		return utils.NewAppError(utils.NewCLIError(utils.ErrCodeInternalError,
			"Batch already executed").Build())
	}
	b.items = append(b.items, item)
	return nil
}

// Len returns the number of queued items
func (b *BatchUpdater) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

// Execute runs every queued update and returns one outcome per item.
// The returned error covers submission-level failures only (cancelled
// context, double execution); per-item failures land in the outcomes.
func (b *BatchUpdater) Execute(ctx context.Context, reqCtx *types.RequestContext) ([]types.UpdateOutcome, error) {
	b.mu.Lock()
	if b.executed {
		b.mu.Unlock()
		return nil, utils.NewAppError(utils.NewCLIError(utils.ErrCodeInternalError,
			"Batch already executed").Build())
	}
	b.executed = true
	items := b.items
	b.mu.Unlock()

	if len(items) == 0 {
		return nil, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, utils.NewAppError(utils.NewCLIError(utils.ErrCodeCancelled,
			"Batch submission cancelled").Build())
	}

	b.logger.Info("Executing batch update",
		logging.F("items", len(items)),
		logging.F("concurrency", b.concurrency),
	)

	results := make(chan types.UpdateOutcome, len(items))

	g := new(errgroup.Group)
	g.SetLimit(b.concurrency)

	for _, item := range items {
		item := item
		g.Go(func() error {
			file, err := b.store.UpdateDescription(ctx, reqCtx, item.FileID, item.Description)
			if err != nil {
				results <- types.UpdateOutcome{Token: item.Token, LocalPath: item.LocalPath, Err: err}
				return nil
			}
			results <- types.UpdateOutcome{Token: item.Token, Name: file.Name, LocalPath: item.LocalPath}
			return nil
		})
	}

	// Per-item goroutines never return errors, so Wait only synchronizes.
	_ = g.Wait()
	close(results)

	outcomes := make([]types.UpdateOutcome, 0, len(items))
	for outcome := range results {
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}
