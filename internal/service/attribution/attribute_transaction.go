package attribution

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rfinnegan/donorlens/internal/domain"
	"github.com/rfinnegan/donorlens/pkg/ctxutil"
)

// AttributeTransaction resolves and persists attribution for one transaction
// by ID, regardless of whether it was evaluated before. This is the manual
// re-attribution path: after fixing a mapping or a rule, an operator can
// re-run a single row without the range backfill.
// Fetch, resolve and persist happen in one database transaction.
func (s *Service) AttributeTransaction(ctx context.Context, txID uuid.UUID) (domain.AttributionResult, error) {
	orgID, ok := ctxutil.OrgIDFromCtx(ctx)
	if !ok {
		return domain.AttributionResult{}, domain.ErrUnauthorized
	}

	var res domain.AttributionResult
	err := s.txm.RunInTx(ctx, func(ctx context.Context) error {
		tx, err := s.transactions.GetByID(ctx, orgID, txID)
		if err != nil {
			return fmt.Errorf("get transaction: %w", err)
		}

		res, err = s.Resolve(ctx, InputFromTransaction(*tx))
		if err != nil {
			return err
		}
		return s.transactions.UpdateAttribution(ctx, orgID, txID, res)
	})
	if err != nil {
		return domain.AttributionResult{}, err
	}
	return res, nil
}
