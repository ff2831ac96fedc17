package attribution

import (
	"context"
	"fmt"

	"github.com/rfinnegan/donorlens/internal/domain"
	"github.com/rfinnegan/donorlens/pkg/ctxutil"
)

// LevelStat is the count and share of transactions at one confidence level.
type LevelStat struct {
	Count   int
	Percent float64
}

// Summary is the attribution quality report for a date range. It feeds
// data-quality dashboards and plays no part in the attribution decision.
type Summary struct {
	Total      int
	ByLevel    map[domain.ConfidenceLevel]LevelStat
	ByPlatform map[string]int
	// Warnings surface data problems that would otherwise read as silently
	// wrong answers, e.g. zero tier-4 matches because spend data is absent.
	Warnings []string
}

// Summarize resolves every transaction in the range and aggregates the
// outcomes per confidence level and platform. Results are recomputed, not
// read back from persisted columns, so the summary always reflects the
// current mapping and rule state.
func (s *Service) Summarize(ctx context.Context, input SummaryInput) (*Summary, error) {
	orgID, ok := ctxutil.OrgIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	txs, err := s.transactions.ListByDateRange(ctx, orgID, input.From, input.To, domain.TransactionFilter{})
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	inputs := make([]ResolveInput, len(txs))
	for i, tx := range txs {
		inputs[i] = InputFromTransaction(tx)
	}
	results, err := s.ResolveBatch(ctx, inputs)
	if err != nil {
		return nil, fmt.Errorf("resolve batch: %w", err)
	}

	summary := &Summary{
		Total:      len(results),
		ByLevel:    make(map[domain.ConfidenceLevel]LevelStat),
		ByPlatform: make(map[string]int),
	}
	for _, res := range results {
		stat := summary.ByLevel[res.ConfidenceLevel]
		stat.Count++
		summary.ByLevel[res.ConfidenceLevel] = stat
		summary.ByPlatform[res.Platform]++
	}
	if summary.Total > 0 {
		for level, stat := range summary.ByLevel {
			stat.Percent = float64(stat.Count) / float64(summary.Total) * 100
			summary.ByLevel[level] = stat
		}
	}

	hasSpend, err := s.spend.HasAnyData(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("check spend data: %w", err)
	}
	if !hasSpend {
		summary.Warnings = append(summary.Warnings,
			"campaign spend data is absent: temporal correlation reported zero matches")
	}

	return summary, nil
}
