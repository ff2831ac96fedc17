// Package evidence implements the evidence repository using PostgreSQL.
// Evidence is append-only: rows age out of rolling windows by time and are
// never mutated, which is what makes trend recomputation safely re-runnable.
package evidence

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	postgres "github.com/rfinnegan/donorlens/internal/adapter/postgres"
	"github.com/rfinnegan/donorlens/internal/domain"
)

// Repo provides evidence persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new evidence repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Insert appends a batch of evidence rows. Topics are normalized before
// insert so window counts aggregate on the canonical key.
func (r *Repo) Insert(ctx context.Context, items []domain.Evidence) error {
	if len(items) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, ev := range items {
		batch.Queue(
			`INSERT INTO evidence (topic, source, source_tier, sentiment, document_id, observed_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			domain.NormalizeTopic(ev.Topic), ev.Source, ev.SourceTier,
			ev.Sentiment, ev.DocumentID, ev.ObservedAt,
		)
	}

	q := postgres.QuerierOrTx(ctx, r.db)
	results := q.SendBatch(ctx, batch)
	defer results.Close()

	for range items {
		if _, err := results.Exec(); err != nil {
			return postgres.MapError(err, "evidence", "batch")
		}
	}
	return nil
}

const windowCountsSQL = `
SELECT
  count(*) FILTER (WHERE observed_at > $2 - interval '1 hour')  AS one_hour,
  count(*) FILTER (WHERE observed_at > $2 - interval '6 hours') AS six_hour,
  count(*) FILTER (WHERE observed_at > $2 - interval '24 hours') AS daily,
  count(*) FILTER (WHERE observed_at > $2 - interval '7 days')  AS weekly,
  count(*) FILTER (WHERE source_tier = 'TIER1' AND observed_at > $2 - interval '24 hours') AS tier1,
  count(*) FILTER (WHERE source_tier = 'TIER2' AND observed_at > $2 - interval '24 hours') AS tier2,
  count(*) FILTER (WHERE source_tier = 'TIER3' AND observed_at > $2 - interval '24 hours') AS tier3,
  max(observed_at) AS last_seen
FROM evidence
WHERE topic = $1 AND observed_at > $2 - interval '7 days' AND observed_at <= $2`

// WindowCounts recomputes the rolling counts for one topic as of now.
// Every window is derived from the same filtered scan, so the nested-window
// monotonicity (weekly >= daily >= six-hour >= one-hour) holds by
// construction.
func (r *Repo) WindowCounts(ctx context.Context, topic string, now time.Time) (domain.WindowCounts, error) {
	q := postgres.QuerierOrTx(ctx, r.db)

	var c domain.WindowCounts
	var lastSeen *time.Time
	err := q.QueryRow(ctx, windowCountsSQL, domain.NormalizeTopic(topic), now).Scan(
		&c.OneHour, &c.SixHour, &c.Daily, &c.Weekly,
		&c.Tier1Count, &c.Tier2Count, &c.Tier3Count, &lastSeen,
	)
	if err != nil {
		return domain.WindowCounts{}, postgres.MapError(err, "evidence", topic)
	}
	if lastSeen != nil {
		c.LastSeen = *lastSeen
	}
	return c, nil
}

// ActiveTopics returns the distinct topics with any evidence observed after
// the cutoff. This bounds each recompute run to recently active topics.
func (r *Repo) ActiveTopics(ctx context.Context, since time.Time) ([]string, error) {
	query := psql.
		Select("DISTINCT topic").
		From("evidence").
		Where(sq.Gt{"observed_at": since}).
		OrderBy("topic ASC")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build active topics query: %w", err)
	}

	q := postgres.QuerierOrTx(ctx, r.db)

	var topics []string
	if err := pgxscan.Select(ctx, q, &topics, sql, args...); err != nil {
		return nil, fmt.Errorf("list active topics: %w", err)
	}
	return topics, nil
}
