// Package trendevent implements the TrendEvent repository using PostgreSQL.
// One row per topic, rewritten wholesale on every recompute: the upsert's
// row-level lock is what serializes concurrent recomputes of the same topic.
package trendevent

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/rfinnegan/donorlens/internal/adapter/postgres"
	"github.com/rfinnegan/donorlens/internal/domain"
)

// Repo provides trend event persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new trend event repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// trendRow mirrors the trend_events table for scany.
type trendRow struct {
	Topic        string     `db:"topic"`
	Label        string     `db:"label"`
	LabelQuality string     `db:"label_quality"`
	OneHourCount int        `db:"one_hour_count"`
	SixHourCount int        `db:"six_hour_count"`
	DailyCount   int        `db:"daily_count"`
	WeeklyCount  int        `db:"weekly_count"`
	Tier1Count   int        `db:"tier1_count"`
	Tier2Count   int        `db:"tier2_count"`
	Tier3Count   int        `db:"tier3_count"`
	LastSeen     *time.Time `db:"last_seen"`
	Velocity     float64    `db:"velocity"`
	Momentum     float64    `db:"momentum"`
	IsTrending   bool       `db:"is_trending"`
	IsBreaking   bool       `db:"is_breaking"`
	Confidence   float64    `db:"confidence"`
	QualityScore int        `db:"quality_score"`
	ComputedAt   time.Time  `db:"computed_at"`
}

const upsertSQL = `
INSERT INTO trend_events (
  topic, label, label_quality,
  one_hour_count, six_hour_count, daily_count, weekly_count,
  tier1_count, tier2_count, tier3_count, last_seen,
  velocity, momentum, is_trending, is_breaking,
  confidence, quality_score, computed_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
ON CONFLICT (topic) DO UPDATE SET
  label          = EXCLUDED.label,
  label_quality  = EXCLUDED.label_quality,
  one_hour_count = EXCLUDED.one_hour_count,
  six_hour_count = EXCLUDED.six_hour_count,
  daily_count    = EXCLUDED.daily_count,
  weekly_count   = EXCLUDED.weekly_count,
  tier1_count    = EXCLUDED.tier1_count,
  tier2_count    = EXCLUDED.tier2_count,
  tier3_count    = EXCLUDED.tier3_count,
  last_seen      = EXCLUDED.last_seen,
  velocity       = EXCLUDED.velocity,
  momentum       = EXCLUDED.momentum,
  is_trending    = EXCLUDED.is_trending,
  is_breaking    = EXCLUDED.is_breaking,
  confidence     = EXCLUDED.confidence,
  quality_score  = EXCLUDED.quality_score,
  computed_at    = EXCLUDED.computed_at
WHERE trend_events.computed_at <= EXCLUDED.computed_at`

// Upsert writes the full recomputed state for one topic. The WHERE guard
// keeps a slow, stale run from overwriting a newer run's result.
func (r *Repo) Upsert(ctx context.Context, ev domain.TrendEvent) error {
	q := postgres.QuerierOrTx(ctx, r.db)

	var lastSeen *time.Time
	if !ev.Counts.LastSeen.IsZero() {
		lastSeen = &ev.Counts.LastSeen
	}

	_, err := q.Exec(ctx, upsertSQL,
		ev.Topic, ev.Label, ev.LabelQuality,
		ev.Counts.OneHour, ev.Counts.SixHour, ev.Counts.Daily, ev.Counts.Weekly,
		ev.Counts.Tier1Count, ev.Counts.Tier2Count, ev.Counts.Tier3Count, lastSeen,
		ev.Velocity, ev.Momentum, ev.IsTrending, ev.IsBreaking,
		ev.Confidence, ev.QualityScore, ev.ComputedAt,
	)
	if err != nil {
		return postgres.MapError(err, "trend_event", ev.Topic)
	}
	return nil
}

const getByTopicSQL = `
SELECT topic, label, label_quality,
       one_hour_count, six_hour_count, daily_count, weekly_count,
       tier1_count, tier2_count, tier3_count, last_seen,
       velocity, momentum, is_trending, is_breaking,
       confidence, quality_score, computed_at
FROM trend_events
WHERE topic = $1`

// GetByTopic returns the current state for one topic.
// Returns domain.ErrNotFound for topics never scored.
func (r *Repo) GetByTopic(ctx context.Context, topic string) (*domain.TrendEvent, error) {
	q := postgres.QuerierOrTx(ctx, r.db)

	var row trendRow
	if err := pgxscan.Get(ctx, q, &row, getByTopicSQL, domain.NormalizeTopic(topic)); err != nil {
		return nil, postgres.MapError(err, "trend_event", topic)
	}
	ev := toDomain(row)
	return &ev, nil
}

const listTrendingSQL = `
SELECT topic, label, label_quality,
       one_hour_count, six_hour_count, daily_count, weekly_count,
       tier1_count, tier2_count, tier3_count, last_seen,
       velocity, momentum, is_trending, is_breaking,
       confidence, quality_score, computed_at
FROM trend_events
WHERE is_trending AND computed_at > $1
ORDER BY velocity DESC, topic ASC`

// ListTrending returns currently trending topics computed after the cutoff,
// fastest-moving first. Stale rows age out of the view by the cutoff, they
// are never deleted.
func (r *Repo) ListTrending(ctx context.Context, computedAfter time.Time) ([]domain.TrendEvent, error) {
	q := postgres.QuerierOrTx(ctx, r.db)

	var rows []trendRow
	if err := pgxscan.Select(ctx, q, &rows, listTrendingSQL, computedAfter); err != nil {
		return nil, fmt.Errorf("list trending: %w", err)
	}

	out := make([]domain.TrendEvent, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomain(row))
	}
	return out, nil
}

func toDomain(row trendRow) domain.TrendEvent {
	ev := domain.TrendEvent{
		Topic:        row.Topic,
		Label:        row.Label,
		LabelQuality: domain.LabelQuality(row.LabelQuality),
		Counts: domain.WindowCounts{
			OneHour:    row.OneHourCount,
			SixHour:    row.SixHourCount,
			Daily:      row.DailyCount,
			Weekly:     row.WeeklyCount,
			Tier1Count: row.Tier1Count,
			Tier2Count: row.Tier2Count,
			Tier3Count: row.Tier3Count,
		},
		Velocity:     row.Velocity,
		Momentum:     row.Momentum,
		IsTrending:   row.IsTrending,
		IsBreaking:   row.IsBreaking,
		Confidence:   row.Confidence,
		QualityScore: row.QualityScore,
		ComputedAt:   row.ComputedAt,
	}
	if row.LastSeen != nil {
		ev.Counts.LastSeen = *row.LastSeen
	}
	return ev
}
