package trend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rfinnegan/donorlens/internal/domain"
)

// RecomputeReport summarizes one recompute run.
type RecomputeReport struct {
	Topics   int
	Trending int
	Breaking int
	Failed   int
	Duration time.Duration
}

// Recompute rebuilds the trend state for every topic with evidence inside
// the lookback window. Each topic's counts are recomputed from raw evidence
// and written with a single upsert, so a run that dies partway leaves no
// partial state and can simply be re-run. Concurrent runs for the same topic
// are serialized by the upsert's row lock plus its computed_at stale guard.
func (s *Service) Recompute(ctx context.Context, now time.Time) (*RecomputeReport, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.RecomputeTimeout)
	defer cancel()

	started := time.Now()

	topics, err := s.evidence.ActiveTopics(ctx, now.Add(-s.cfg.LookbackWindow))
	if err != nil {
		return nil, fmt.Errorf("list active topics: %w", err)
	}

	// 1 = trending, 2 = breaking, -1 = failed, 0 = scored but quiet.
	outcomes := make([]int, len(topics))

	g := &errgroup.Group{}
	g.SetLimit(s.concurrency())

	for i, topic := range topics {
		g.Go(func() error {
			ev, err := s.recomputeTopic(ctx, topic, now)
			if err != nil {
				outcomes[i] = -1
				s.log.ErrorContext(ctx, "topic recompute failed",
					slog.String("topic", topic),
					slog.String("error", err.Error()),
				)
				return nil
			}
			switch {
			case ev.IsBreaking:
				outcomes[i] = 2
			case ev.IsTrending:
				outcomes[i] = 1
			}
			return nil
		})
	}
	_ = g.Wait()

	report := &RecomputeReport{Topics: len(topics), Duration: time.Since(started)}
	for _, o := range outcomes {
		switch o {
		case -1:
			report.Failed++
		case 1:
			report.Trending++
		case 2:
			report.Trending++
			report.Breaking++
		}
	}

	s.log.InfoContext(ctx, "trend recompute finished",
		slog.Int("topics", report.Topics),
		slog.Int("trending", report.Trending),
		slog.Int("breaking", report.Breaking),
		slog.Int("failed", report.Failed),
		slog.Duration("duration", report.Duration),
	)
	return report, nil
}

// recomputeTopic rebuilds and persists one topic's full trend state.
func (s *Service) recomputeTopic(ctx context.Context, topic string, now time.Time) (*domain.TrendEvent, error) {
	counts, err := s.evidence.WindowCounts(ctx, topic, now)
	if err != nil {
		return nil, fmt.Errorf("window counts: %w", err)
	}

	var prevCounts *domain.WindowCounts
	prev, err := s.trends.GetByTopic(ctx, topic)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("previous state: %w", err)
	}
	if prev != nil {
		prevCounts = &prev.Counts
	}

	label, labelQuality := displayLabel(topic)
	velocity := Velocity(counts)

	ev := &domain.TrendEvent{
		Topic:        topic,
		Label:        label,
		LabelQuality: labelQuality,
		Counts:       counts,
		Velocity:     velocity,
		Momentum:     Momentum(counts, prevCounts),
		IsTrending:   s.isTrending(velocity, counts),
		Confidence:   Confidence(counts),
		ComputedAt:   now,
	}
	ev.IsBreaking = s.isBreaking(ev)
	ev.QualityScore = s.QualityScore(ev, now)

	if err := s.trends.Upsert(ctx, *ev); err != nil {
		return nil, fmt.Errorf("upsert: %w", err)
	}
	return ev, nil
}

func (s *Service) concurrency() int {
	if s.cfg.Concurrency > 0 {
		return s.cfg.Concurrency
	}
	return 1
}
