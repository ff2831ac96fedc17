// Package transaction implements the donation transaction repository using
// PostgreSQL. Settled transactions are immutable; the only write this
// package performs is attaching attribution metadata.
package transaction

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/rfinnegan/donorlens/internal/adapter/postgres"
	"github.com/rfinnegan/donorlens/internal/domain"
)

// Repo provides transaction persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new transaction repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const txColumns = `id, organization_id, type, amount_cents, net_amount_cents, fee_cents,
transaction_date, donor_id, refcode, click_id, fbclid, contribution_form,
is_recurring, recurring_state, created_at`

const getByIDSQL = `
SELECT ` + txColumns + `
FROM transactions
WHERE organization_id = $1 AND id = $2`

// GetByID returns a transaction by primary key scoped to the organization.
func (r *Repo) GetByID(ctx context.Context, orgID, txID uuid.UUID) (*domain.Transaction, error) {
	q := postgres.QuerierOrTx(ctx, r.db)

	t, err := scanTransaction(q.QueryRow(ctx, getByIDSQL, orgID, txID))
	if err != nil {
		return nil, postgres.MapError(err, "transaction", txID.String())
	}
	return t, nil
}

// ListByDateRange returns the organization's transactions with
// transaction_date within [from, to], oldest first. Optional filters narrow
// to a transaction type or to rows still lacking attribution metadata.
func (r *Repo) ListByDateRange(ctx context.Context, orgID uuid.UUID, from, to time.Time, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	query := psql.
		Select("id", "organization_id", "type", "amount_cents", "net_amount_cents", "fee_cents",
			"transaction_date", "donor_id", "refcode", "click_id", "fbclid", "contribution_form",
			"is_recurring", "recurring_state", "created_at").
		From("transactions").
		Where(sq.Eq{"organization_id": orgID}).
		Where(sq.GtOrEq{"transaction_date": from}).
		Where(sq.LtOrEq{"transaction_date": to}).
		OrderBy("transaction_date ASC", "id ASC")

	if filter.Type != nil {
		query = query.Where(sq.Eq{"type": *filter.Type})
	}
	if filter.UnattributedOnly {
		query = query.Where(sq.Eq{"attribution_method": nil})
	}
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build transactions query: %w", err)
	}

	q := postgres.QuerierOrTx(ctx, r.db)
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

const updateAttributionSQL = `
UPDATE transactions
SET attributed_platform   = $3,
    attribution_confidence = $4,
    attribution_level      = $5,
    attribution_method     = $6,
    attribution_tier       = $7,
    matched_ad_id          = $8,
    matched_campaign_id    = $9,
    rule_name              = $10,
    attributed_at          = now()
WHERE organization_id = $1 AND id = $2`

// UpdateAttribution attaches an attribution result to a transaction. The
// original transaction fields are never touched.
func (r *Repo) UpdateAttribution(ctx context.Context, orgID, txID uuid.UUID, res domain.AttributionResult) error {
	q := postgres.QuerierOrTx(ctx, r.db)

	tag, err := q.Exec(ctx, updateAttributionSQL,
		orgID, txID,
		res.Platform, res.ConfidenceScore, res.ConfidenceLevel, res.Method, res.Tier,
		res.MatchedAdID, res.MatchedCampaignID, res.RuleName,
	)
	if err != nil {
		return postgres.MapError(err, "transaction", txID.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transaction %s: %w", txID, domain.ErrNotFound)
	}
	return nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var t domain.Transaction
	err := row.Scan(
		&t.ID, &t.OrganizationID, &t.Type,
		&t.AmountCents, &t.NetAmountCents, &t.FeeCents,
		&t.TransactionDate, &t.DonorID, &t.Refcode,
		&t.ClickID, &t.FBClickID, &t.ContributionForm,
		&t.IsRecurring, &t.RecurringState, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
