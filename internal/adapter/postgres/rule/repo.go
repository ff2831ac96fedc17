// Package rule implements the AttributionRule repository using PostgreSQL.
// Rules are admin-maintained; the resolver treats them as read-only.
package rule

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/rfinnegan/donorlens/internal/adapter/postgres"
	"github.com/rfinnegan/donorlens/internal/domain"
)

// Repo provides attribution rule reads backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new rule repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// ListActive returns the organization's active rules ordered by ascending
// priority (lower priority value is evaluated first).
func (r *Repo) ListActive(ctx context.Context, orgID uuid.UUID) ([]domain.AttributionRule, error) {
	query := psql.
		Select("id", "organization_id", "name", "pattern", "rule_type",
			"platform", "confidence_score", "priority", "is_active").
		From("attribution_rules").
		Where(sq.Eq{"organization_id": orgID}).
		Where(sq.Eq{"is_active": true}).
		OrderBy("priority ASC", "name ASC")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build rules query: %w", err)
	}

	q := postgres.QuerierOrTx(ctx, r.db)
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list active rules: %w", err)
	}
	defer rows.Close()

	var out []domain.AttributionRule
	for rows.Next() {
		var rule domain.AttributionRule
		if err := rows.Scan(
			&rule.ID, &rule.OrganizationID, &rule.Name, &rule.Pattern,
			&rule.RuleType, &rule.Platform, &rule.ConfidenceScore,
			&rule.Priority, &rule.IsActive,
		); err != nil {
			return nil, fmt.Errorf("scan rule: %w", err)
		}
		out = append(out, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rules: %w", err)
	}
	return out, nil
}
