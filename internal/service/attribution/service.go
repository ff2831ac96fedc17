// Package attribution implements the donation attribution waterfall: a
// strict-order chain of matching strategies that resolves a transaction's
// marketing source with a confidence score. Resolution is pure
// read-then-classify; persistence is a separate, explicit step.
package attribution

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rfinnegan/donorlens/internal/config"
	"github.com/rfinnegan/donorlens/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type mappingRepo interface {
	GetExact(ctx context.Context, orgID uuid.UUID, refcode string, at time.Time) (*domain.RefcodeMapping, error)
	ListActive(ctx context.Context, orgID uuid.UUID, at time.Time) ([]domain.RefcodeMapping, error)
}

type ruleRepo interface {
	ListActive(ctx context.Context, orgID uuid.UUID) ([]domain.AttributionRule, error)
}

type spendRepo interface {
	TopSpendOn(ctx context.Context, orgID uuid.UUID, date time.Time) (*domain.CampaignSpend, error)
	HasAnyData(ctx context.Context, orgID uuid.UUID) (bool, error)
}

type transactionRepo interface {
	GetByID(ctx context.Context, orgID, txID uuid.UUID) (*domain.Transaction, error)
	ListByDateRange(ctx context.Context, orgID uuid.UUID, from, to time.Time, filter domain.TransactionFilter) ([]domain.Transaction, error)
	UpdateAttribution(ctx context.Context, orgID, txID uuid.UUID, res domain.AttributionResult) error
}

// txManager runs a function inside a database transaction; repo calls made
// with the callback's context ride on that transaction.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the attribution business logic.
type Service struct {
	mappings     mappingRepo
	rules        ruleRepo
	spend        spendRepo
	transactions transactionRepo
	txm          txManager
	log          *slog.Logger
	cfg          config.AttributionConfig
}

// NewService creates a new attribution service.
func NewService(
	log *slog.Logger,
	txm txManager,
	mappings mappingRepo,
	rules ruleRepo,
	spend spendRepo,
	transactions transactionRepo,
	cfg config.AttributionConfig,
) *Service {
	return &Service{
		mappings:     mappings,
		rules:        rules,
		spend:        spend,
		transactions: transactions,
		txm:          txm,
		log:          log,
		cfg:          cfg,
	}
}
