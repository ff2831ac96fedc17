package attribution

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rfinnegan/donorlens/internal/domain"
	"github.com/rfinnegan/donorlens/pkg/ctxutil"
)

// ResolveBatch resolves many transactions with bounded concurrency. Rows are
// evaluated independently with no cross-row state, so the result at index i
// is identical to calling Resolve on inputs[i] alone. One row's failure does
// not poison the others: its slot stays zero-valued and the error is
// collected into the joined return error.
func (s *Service) ResolveBatch(ctx context.Context, inputs []ResolveInput) ([]domain.AttributionResult, error) {
	if _, ok := ctxutil.OrgIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	results := make([]domain.AttributionResult, len(inputs))
	rowErrs := make([]error, len(inputs))

	g := &errgroup.Group{}
	g.SetLimit(s.concurrency())

	for i, input := range inputs {
		g.Go(func() error {
			res, err := s.Resolve(ctx, input)
			if err != nil {
				rowErrs[i] = fmt.Errorf("row %d: %w", i, err)
				return nil
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	return results, errors.Join(rowErrs...)
}

// BackfillReport summarizes one AttributeRange run.
type BackfillReport struct {
	Total        int
	Attributed   int // tier 1-4 matches persisted
	Unattributed int // tier 0 results persisted
	Failed       int // rows that could not be resolved or persisted
}

// AttributeRange resolves and persists attribution for every transaction in
// [from, to] that has not been evaluated yet. Tier-0 outcomes are persisted
// too, so an evaluated-but-unattributed row is distinguishable from one the
// backfill has never seen. Re-running the range is safe: already-evaluated
// rows are excluded by the filter, and re-resolving any row yields the same
// result given unchanged mapping and rule state.
//
// Each row resolves and persists inside one database transaction, so the
// mapping/rule reads that produced a result and the write of that result
// commit together.
func (s *Service) AttributeRange(ctx context.Context, from, to time.Time) (*BackfillReport, error) {
	orgID, ok := ctxutil.OrgIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	txs, err := s.transactions.ListByDateRange(ctx, orgID, from, to, domain.TransactionFilter{
		UnattributedOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	report := &BackfillReport{Total: len(txs)}
	outcomes := make([]int, len(txs)) // tier per row, -1 on failure

	g := &errgroup.Group{}
	g.SetLimit(s.concurrency())

	for i, tx := range txs {
		g.Go(func() error {
			var res domain.AttributionResult
			err := s.txm.RunInTx(ctx, func(ctx context.Context) error {
				var err error
				res, err = s.Resolve(ctx, InputFromTransaction(tx))
				if err != nil {
					return err
				}
				return s.transactions.UpdateAttribution(ctx, orgID, tx.ID, res)
			})
			if err != nil {
				outcomes[i] = -1
				s.log.ErrorContext(ctx, "attribution failed",
					slog.String("transaction_id", tx.ID.String()),
					slog.String("error", err.Error()),
				)
				return nil
			}
			outcomes[i] = res.Tier
			return nil
		})
	}
	_ = g.Wait()

	for _, tier := range outcomes {
		switch {
		case tier < 0:
			report.Failed++
		case tier == domain.TierNone:
			report.Unattributed++
		default:
			report.Attributed++
		}
	}

	s.log.InfoContext(ctx, "attribution backfill finished",
		slog.String("org_id", orgID.String()),
		slog.Int("total", report.Total),
		slog.Int("attributed", report.Attributed),
		slog.Int("unattributed", report.Unattributed),
		slog.Int("failed", report.Failed),
	)
	return report, nil
}

func (s *Service) concurrency() int {
	if s.cfg.BatchConcurrency > 0 {
		return s.cfg.BatchConcurrency
	}
	return 1
}
