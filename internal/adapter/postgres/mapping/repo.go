// Package mapping implements the RefcodeMapping repository using PostgreSQL.
// Mappings are written by the external ad-platform sync; the attribution
// engine only reads them.
package mapping

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/rfinnegan/donorlens/internal/adapter/postgres"
	"github.com/rfinnegan/donorlens/internal/domain"
)

// Repo provides refcode mapping reads backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new mapping repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const getExactSQL = `
SELECT id, organization_id, refcode, platform, campaign_id, ad_id, creative_id,
       first_seen, last_seen, is_active
FROM refcode_mappings
WHERE organization_id = $1
  AND refcode = lower($2)
  AND is_active
  AND first_seen <= $3
  AND (last_seen IS NULL OR last_seen >= $3)
ORDER BY (ad_id IS NOT NULL) DESC, first_seen DESC
LIMIT 1`

const listActiveSQL = `
SELECT id, organization_id, refcode, platform, campaign_id, ad_id, creative_id,
       first_seen, last_seen, is_active
FROM refcode_mappings
WHERE organization_id = $1
  AND is_active
  AND first_seen <= $2
  AND (last_seen IS NULL OR last_seen >= $2)`

// GetExact returns the mapping whose normalized refcode matches exactly and
// whose validity window covers at. When several windows overlap, URL-verified
// mappings (ad_id present) win, then the most recently seen.
// Returns domain.ErrNotFound when no mapping matches.
func (r *Repo) GetExact(ctx context.Context, orgID uuid.UUID, refcode string, at time.Time) (*domain.RefcodeMapping, error) {
	q := postgres.QuerierOrTx(ctx, r.db)

	row := q.QueryRow(ctx, getExactSQL, orgID, domain.NormalizeRefcode(refcode), at)
	m, err := scanMapping(row)
	if err != nil {
		return nil, postgres.MapError(err, "mapping", refcode)
	}
	return m, nil
}

// ListActive returns every mapping valid at the given time for the
// organization. Used as the candidate set for fuzzy matching.
func (r *Repo) ListActive(ctx context.Context, orgID uuid.UUID, at time.Time) ([]domain.RefcodeMapping, error) {
	q := postgres.QuerierOrTx(ctx, r.db)

	rows, err := q.Query(ctx, listActiveSQL, orgID, at)
	if err != nil {
		return nil, fmt.Errorf("list active mappings: %w", err)
	}
	defer rows.Close()

	var out []domain.RefcodeMapping
	for rows.Next() {
		m, err := scanMapping(rows)
		if err != nil {
			return nil, fmt.Errorf("scan mapping: %w", err)
		}
		out = append(out, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mappings: %w", err)
	}
	return out, nil
}

func scanMapping(row pgx.Row) (*domain.RefcodeMapping, error) {
	var m domain.RefcodeMapping
	var lastSeen *time.Time
	err := row.Scan(
		&m.ID, &m.OrganizationID, &m.Refcode, &m.Platform,
		&m.CampaignID, &m.AdID, &m.CreativeID,
		&m.FirstSeen, &lastSeen, &m.IsActive,
	)
	if err != nil {
		return nil, err
	}
	if lastSeen != nil {
		m.LastSeen = *lastSeen
	}
	return &m, nil
}
