package attribution

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rfinnegan/donorlens/internal/domain"
	"github.com/rfinnegan/donorlens/pkg/ctxutil"
)

// Resolve runs the attribution waterfall for one transaction and returns
// exactly one result. Strategy order is the contract: earlier tiers preempt
// later ones, and the first match wins. "No match" is a valid terminal state,
// never an error.
func (s *Service) Resolve(ctx context.Context, input ResolveInput) (domain.AttributionResult, error) {
	orgID, ok := ctxutil.OrgIDFromCtx(ctx)
	if !ok {
		return domain.AttributionResult{}, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return domain.AttributionResult{}, err
	}

	res, err := s.resolve(ctx, orgID, input)
	if err != nil {
		return domain.AttributionResult{}, err
	}

	AnnotateContributionForm(&res, input.ContributionForm)
	return res, nil
}

// strategy is one waterfall step. A nil result with a nil error means
// "no match here, fall through".
type strategy func(ctx context.Context, orgID uuid.UUID, input ResolveInput) (*domain.AttributionResult, error)

func (s *Service) resolve(ctx context.Context, orgID uuid.UUID, input ResolveInput) (domain.AttributionResult, error) {
	refcode := domain.NormalizeRefcode(input.Refcode)

	chain := []strategy{s.matchClickID}
	if refcode != "" {
		chain = append(chain,
			s.matchExactVerified,
			s.matchRules,
			s.matchExactMapping,
			s.matchFuzzy,
		)
	}
	chain = append(chain, s.matchTemporal)

	for _, step := range chain {
		res, err := step(ctx, orgID, input)
		if err != nil {
			return domain.AttributionResult{}, err
		}
		if res != nil {
			return *res, nil
		}
	}
	return domain.Unattributed(), nil
}

// matchClickID handles any platform-issued click identifier. A click ID is
// treated as unambiguous Meta attribution regardless of the refcode.
func (s *Service) matchClickID(_ context.Context, _ uuid.UUID, input ResolveInput) (*domain.AttributionResult, error) {
	if !input.HasClickIdentifier() {
		return nil, nil
	}
	return &domain.AttributionResult{
		Platform:        domain.PlatformMeta,
		ConfidenceScore: 1.0,
		ConfidenceLevel: domain.ConfidenceDeterministic,
		Method:          domain.MethodClickID,
		Tier:            domain.TierDeterministic,
	}, nil
}

// matchExactVerified handles exact refcode mappings that carry an ad_id.
// The ad_id means the mapping was URL-verified during the platform sync,
// which is the only refcode signal strong enough for tier 1.
func (s *Service) matchExactVerified(ctx context.Context, orgID uuid.UUID, input ResolveInput) (*domain.AttributionResult, error) {
	m, err := s.exactMapping(ctx, orgID, input)
	if err != nil || m == nil || m.AdID == nil {
		return nil, err
	}
	return &domain.AttributionResult{
		Platform:          m.Platform,
		ConfidenceScore:   1.0,
		ConfidenceLevel:   domain.ConfidenceDeterministic,
		Method:            domain.MethodRefcodeExact,
		Tier:              domain.TierDeterministic,
		MatchedAdID:       m.AdID,
		MatchedCampaignID: m.CampaignID,
	}, nil
}

// matchRules evaluates admin-defined patterns in ascending priority order;
// the first match wins. A rule with an invalid regex is an admin data-entry
// error: it is skipped with a warning, never aborts the resolution.
func (s *Service) matchRules(ctx context.Context, orgID uuid.UUID, input ResolveInput) (*domain.AttributionResult, error) {
	rules, err := s.rules.ListActive(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("list rules: %w", err)
	}

	refcode := domain.NormalizeRefcode(input.Refcode)
	for _, rule := range rules {
		matched, err := matchRule(rule, refcode)
		if err != nil {
			s.log.WarnContext(ctx, "skipping rule with invalid pattern",
				slog.String("rule", rule.Name),
				slog.String("pattern", rule.Pattern),
				slog.String("error", err.Error()),
			)
			continue
		}
		if !matched {
			continue
		}
		name := rule.Name
		return &domain.AttributionResult{
			Platform:        rule.Platform,
			ConfidenceScore: rule.ConfidenceScore,
			ConfidenceLevel: domain.ConfidenceLevelFor(rule.ConfidenceScore),
			Method:          domain.MethodRefcodeRule,
			Tier:            domain.TierRule,
			RuleName:        &name,
		}, nil
	}
	return nil, nil
}

// matchExactMapping handles exact mappings without an ad_id: the platform is
// known but the specific ad is not, so confidence stays below tier 1.
func (s *Service) matchExactMapping(ctx context.Context, orgID uuid.UUID, input ResolveInput) (*domain.AttributionResult, error) {
	m, err := s.exactMapping(ctx, orgID, input)
	if err != nil || m == nil || m.AdID != nil {
		return nil, err
	}
	return &domain.AttributionResult{
		Platform:          m.Platform,
		ConfidenceScore:   s.cfg.MappingConfidence,
		ConfidenceLevel:   domain.ConfidenceLevelFor(s.cfg.MappingConfidence),
		Method:            domain.MethodRefcodeMapping,
		Tier:              domain.TierMedium,
		MatchedCampaignID: m.CampaignID,
	}, nil
}

// matchFuzzy compares the refcode against every active mapping and takes the
// most similar one above the threshold. This is typo tolerance, not semantic
// matching: confidence is capped below exact-match confidence, and the
// matched ad_id is deliberately not propagated.
func (s *Service) matchFuzzy(ctx context.Context, orgID uuid.UUID, input ResolveInput) (*domain.AttributionResult, error) {
	candidates, err := s.mappings.ListActive(ctx, orgID, input.TransactionDate)
	if err != nil {
		return nil, fmt.Errorf("list mappings: %w", err)
	}

	refcode := domain.NormalizeRefcode(input.Refcode)

	var best *domain.RefcodeMapping
	var bestSim float64
	for i := range candidates {
		c := &candidates[i]
		sim := Similarity(refcode, c.Refcode)
		if sim > bestSim || (sim == bestSim && best != nil && c.Refcode < best.Refcode) {
			best, bestSim = c, sim
		}
	}
	if best == nil || bestSim <= s.cfg.FuzzyThreshold {
		return nil, nil
	}

	score := min(bestSim, s.cfg.FuzzyConfidenceCap)
	return &domain.AttributionResult{
		Platform:          best.Platform,
		ConfidenceScore:   score,
		ConfidenceLevel:   domain.ConfidenceLevelFor(score),
		Method:            domain.MethodRefcodeFuzzy,
		Tier:              domain.TierMedium,
		MatchedCampaignID: best.CampaignID,
	}, nil
}

// matchTemporal is the probabilistic last resort: attribute to the Meta
// campaign with the highest spend on the transaction's calendar date.
// Callers must not treat tier 4 as ground truth for reporting.
func (s *Service) matchTemporal(ctx context.Context, orgID uuid.UUID, input ResolveInput) (*domain.AttributionResult, error) {
	top, err := s.spend.TopSpendOn(ctx, orgID, input.TransactionDate)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("top spend: %w", err)
	}

	campaignID := top.CampaignID
	return &domain.AttributionResult{
		Platform:          domain.PlatformMeta,
		ConfidenceScore:   s.cfg.TemporalConfidence,
		ConfidenceLevel:   domain.ConfidenceLevelFor(s.cfg.TemporalConfidence),
		Method:            domain.MethodTemporalCorrelation,
		Tier:              domain.TierTemporal,
		MatchedCampaignID: &campaignID,
	}, nil
}

// exactMapping looks up the best exact mapping for the input's refcode at
// its transaction date. Absence is a fall-through, not an error.
func (s *Service) exactMapping(ctx context.Context, orgID uuid.UUID, input ResolveInput) (*domain.RefcodeMapping, error) {
	m, err := s.mappings.GetExact(ctx, orgID, domain.NormalizeRefcode(input.Refcode), input.TransactionDate)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("exact mapping: %w", err)
	}
	if !m.MatchesAt(input.TransactionDate) {
		return nil, nil
	}
	return m, nil
}
