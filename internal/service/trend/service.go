// Package trend implements the topic velocity engine: rolling evidence
// counts per topic, velocity and momentum scoring, and trending/breaking
// classification. All counts are rebuilt from raw evidence on every
// recompute, which keeps runs idempotent and safely restartable.
package trend

import (
	"context"
	"log/slog"
	"time"

	"github.com/rfinnegan/donorlens/internal/config"
	"github.com/rfinnegan/donorlens/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type evidenceRepo interface {
	Insert(ctx context.Context, items []domain.Evidence) error
	WindowCounts(ctx context.Context, topic string, now time.Time) (domain.WindowCounts, error)
	ActiveTopics(ctx context.Context, since time.Time) ([]string, error)
}

type trendEventRepo interface {
	Upsert(ctx context.Context, ev domain.TrendEvent) error
	GetByTopic(ctx context.Context, topic string) (*domain.TrendEvent, error)
	ListTrending(ctx context.Context, computedAfter time.Time) ([]domain.TrendEvent, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the trend engine business logic.
type Service struct {
	evidence evidenceRepo
	trends   trendEventRepo
	log      *slog.Logger
	cfg      config.TrendConfig
}

// NewService creates a new trend service.
func NewService(log *slog.Logger, evidence evidenceRepo, trends trendEventRepo, cfg config.TrendConfig) *Service {
	return &Service{
		evidence: evidence,
		trends:   trends,
		log:      log,
		cfg:      cfg,
	}
}

// Ingest validates and appends a batch of evidence. Topics are normalized
// downstream; rejecting the whole batch on any invalid item keeps the
// producer's retry semantics simple.
func (s *Service) Ingest(ctx context.Context, items []domain.Evidence) error {
	var errs []domain.FieldError
	for i, ev := range items {
		if domain.NormalizeTopic(ev.Topic) == "" {
			errs = append(errs, domain.FieldError{Field: "topic", Message: "required"})
		}
		if !ev.SourceTier.IsValid() {
			errs = append(errs, domain.FieldError{Field: "source_tier", Message: "unknown tier"})
		}
		if ev.ObservedAt.IsZero() {
			errs = append(errs, domain.FieldError{Field: "observed_at", Message: "required"})
		}
		if len(errs) > 0 {
			s.log.WarnContext(ctx, "rejecting evidence batch",
				slog.Int("index", i), slog.String("topic", ev.Topic))
			return &domain.ValidationError{Errors: errs}
		}
	}
	return s.evidence.Insert(ctx, items)
}

// Trending returns the currently trending topics, fastest-moving first.
// Rows older than the lookback window have aged out of the view.
func (s *Service) Trending(ctx context.Context, now time.Time) ([]domain.TrendEvent, error) {
	return s.trends.ListTrending(ctx, now.Add(-s.cfg.LookbackWindow))
}
