// Package spend implements the campaign daily-spend repository using
// PostgreSQL. Spend rows are synced from the ad platform and serve only the
// tier-4 temporal-correlation fallback.
package spend

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	postgres "github.com/rfinnegan/donorlens/internal/adapter/postgres"
	"github.com/rfinnegan/donorlens/internal/domain"
)

// Repo provides campaign spend reads backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new spend repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const topSpendSQL = `
SELECT organization_id, campaign_id, spend_date, spend_cents
FROM campaign_daily_spend
WHERE organization_id = $1
  AND spend_date = $2::date
  AND spend_cents > 0
ORDER BY spend_cents DESC, campaign_id ASC
LIMIT 1`

const hasAnySQL = `
SELECT EXISTS(SELECT 1 FROM campaign_daily_spend WHERE organization_id = $1)`

// TopSpendOn returns the campaign with the highest non-zero spend on the
// given calendar date. Ties break on campaign id for determinism.
// Returns domain.ErrNotFound when no campaign spent anything that day.
func (r *Repo) TopSpendOn(ctx context.Context, orgID uuid.UUID, date time.Time) (*domain.CampaignSpend, error) {
	q := postgres.QuerierOrTx(ctx, r.db)

	var s domain.CampaignSpend
	err := q.QueryRow(ctx, topSpendSQL, orgID, date).Scan(
		&s.OrganizationID, &s.CampaignID, &s.Date, &s.SpendCents,
	)
	if err != nil {
		return nil, postgres.MapError(err, "spend", date.Format("2006-01-02"))
	}
	return &s, nil
}

// HasAnyData reports whether the organization has any spend rows at all.
// When the sync has never run, tier-4 correlation is impossible and callers
// surface that as a data-quality warning rather than silently reporting
// zero matches.
func (r *Repo) HasAnyData(ctx context.Context, orgID uuid.UUID) (bool, error) {
	q := postgres.QuerierOrTx(ctx, r.db)

	var exists bool
	if err := q.QueryRow(ctx, hasAnySQL, orgID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check spend data: %w", err)
	}
	return exists, nil
}
