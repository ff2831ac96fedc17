package attribution

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rfinnegan/donorlens/internal/domain"
)

var _ mappingRepo = &mappingRepoMock{}

type mappingRepoMock struct {
	GetExactFunc   func(ctx context.Context, orgID uuid.UUID, refcode string, at time.Time) (*domain.RefcodeMapping, error)
	ListActiveFunc func(ctx context.Context, orgID uuid.UUID, at time.Time) ([]domain.RefcodeMapping, error)

	calls struct {
		GetExact []struct {
			OrgID   uuid.UUID
			Refcode string
			At      time.Time
		}
		ListActive []struct {
			OrgID uuid.UUID
			At    time.Time
		}
	}
	lockGetExact   sync.RWMutex
	lockListActive sync.RWMutex
}

func (mock *mappingRepoMock) GetExact(ctx context.Context, orgID uuid.UUID, refcode string, at time.Time) (*domain.RefcodeMapping, error) {
	if mock.GetExactFunc == nil {
		panic("mappingRepoMock.GetExactFunc: method is nil but mappingRepo.GetExact was just called")
	}
	callInfo := struct {
		OrgID   uuid.UUID
		Refcode string
		At      time.Time
	}{OrgID: orgID, Refcode: refcode, At: at}
	mock.lockGetExact.Lock()
	mock.calls.GetExact = append(mock.calls.GetExact, callInfo)
	mock.lockGetExact.Unlock()
	return mock.GetExactFunc(ctx, orgID, refcode, at)
}

func (mock *mappingRepoMock) GetExactCalls() []struct {
	OrgID   uuid.UUID
	Refcode string
	At      time.Time
} {
	mock.lockGetExact.RLock()
	calls := mock.calls.GetExact
	mock.lockGetExact.RUnlock()
	return calls
}

func (mock *mappingRepoMock) ListActive(ctx context.Context, orgID uuid.UUID, at time.Time) ([]domain.RefcodeMapping, error) {
	if mock.ListActiveFunc == nil {
		panic("mappingRepoMock.ListActiveFunc: method is nil but mappingRepo.ListActive was just called")
	}
	callInfo := struct {
		OrgID uuid.UUID
		At    time.Time
	}{OrgID: orgID, At: at}
	mock.lockListActive.Lock()
	mock.calls.ListActive = append(mock.calls.ListActive, callInfo)
	mock.lockListActive.Unlock()
	return mock.ListActiveFunc(ctx, orgID, at)
}

func (mock *mappingRepoMock) ListActiveCalls() []struct {
	OrgID uuid.UUID
	At    time.Time
} {
	mock.lockListActive.RLock()
	calls := mock.calls.ListActive
	mock.lockListActive.RUnlock()
	return calls
}

var _ ruleRepo = &ruleRepoMock{}

type ruleRepoMock struct {
	ListActiveFunc func(ctx context.Context, orgID uuid.UUID) ([]domain.AttributionRule, error)

	calls struct {
		ListActive []struct {
			OrgID uuid.UUID
		}
	}
	lockListActive sync.RWMutex
}

func (mock *ruleRepoMock) ListActive(ctx context.Context, orgID uuid.UUID) ([]domain.AttributionRule, error) {
	if mock.ListActiveFunc == nil {
		panic("ruleRepoMock.ListActiveFunc: method is nil but ruleRepo.ListActive was just called")
	}
	mock.lockListActive.Lock()
	mock.calls.ListActive = append(mock.calls.ListActive, struct{ OrgID uuid.UUID }{OrgID: orgID})
	mock.lockListActive.Unlock()
	return mock.ListActiveFunc(ctx, orgID)
}

func (mock *ruleRepoMock) ListActiveCalls() []struct{ OrgID uuid.UUID } {
	mock.lockListActive.RLock()
	calls := mock.calls.ListActive
	mock.lockListActive.RUnlock()
	return calls
}

var _ spendRepo = &spendRepoMock{}

type spendRepoMock struct {
	TopSpendOnFunc func(ctx context.Context, orgID uuid.UUID, date time.Time) (*domain.CampaignSpend, error)
	HasAnyDataFunc func(ctx context.Context, orgID uuid.UUID) (bool, error)

	calls struct {
		TopSpendOn []struct {
			OrgID uuid.UUID
			Date  time.Time
		}
		HasAnyData []struct {
			OrgID uuid.UUID
		}
	}
	lockTopSpendOn sync.RWMutex
	lockHasAnyData sync.RWMutex
}

func (mock *spendRepoMock) TopSpendOn(ctx context.Context, orgID uuid.UUID, date time.Time) (*domain.CampaignSpend, error) {
	if mock.TopSpendOnFunc == nil {
		panic("spendRepoMock.TopSpendOnFunc: method is nil but spendRepo.TopSpendOn was just called")
	}
	callInfo := struct {
		OrgID uuid.UUID
		Date  time.Time
	}{OrgID: orgID, Date: date}
	mock.lockTopSpendOn.Lock()
	mock.calls.TopSpendOn = append(mock.calls.TopSpendOn, callInfo)
	mock.lockTopSpendOn.Unlock()
	return mock.TopSpendOnFunc(ctx, orgID, date)
}

func (mock *spendRepoMock) TopSpendOnCalls() []struct {
	OrgID uuid.UUID
	Date  time.Time
} {
	mock.lockTopSpendOn.RLock()
	calls := mock.calls.TopSpendOn
	mock.lockTopSpendOn.RUnlock()
	return calls
}

func (mock *spendRepoMock) HasAnyData(ctx context.Context, orgID uuid.UUID) (bool, error) {
	if mock.HasAnyDataFunc == nil {
		panic("spendRepoMock.HasAnyDataFunc: method is nil but spendRepo.HasAnyData was just called")
	}
	mock.lockHasAnyData.Lock()
	mock.calls.HasAnyData = append(mock.calls.HasAnyData, struct{ OrgID uuid.UUID }{OrgID: orgID})
	mock.lockHasAnyData.Unlock()
	return mock.HasAnyDataFunc(ctx, orgID)
}

func (mock *spendRepoMock) HasAnyDataCalls() []struct{ OrgID uuid.UUID } {
	mock.lockHasAnyData.RLock()
	calls := mock.calls.HasAnyData
	mock.lockHasAnyData.RUnlock()
	return calls
}

var _ transactionRepo = &transactionRepoMock{}

type transactionRepoMock struct {
	GetByIDFunc           func(ctx context.Context, orgID, txID uuid.UUID) (*domain.Transaction, error)
	ListByDateRangeFunc   func(ctx context.Context, orgID uuid.UUID, from, to time.Time, filter domain.TransactionFilter) ([]domain.Transaction, error)
	UpdateAttributionFunc func(ctx context.Context, orgID, txID uuid.UUID, res domain.AttributionResult) error

	calls struct {
		GetByID []struct {
			OrgID uuid.UUID
			TxID  uuid.UUID
		}
		ListByDateRange []struct {
			OrgID  uuid.UUID
			From   time.Time
			To     time.Time
			Filter domain.TransactionFilter
		}
		UpdateAttribution []struct {
			OrgID uuid.UUID
			TxID  uuid.UUID
			Res   domain.AttributionResult
		}
	}
	lockGetByID           sync.RWMutex
	lockListByDateRange   sync.RWMutex
	lockUpdateAttribution sync.RWMutex
}

func (mock *transactionRepoMock) GetByID(ctx context.Context, orgID, txID uuid.UUID) (*domain.Transaction, error) {
	if mock.GetByIDFunc == nil {
		panic("transactionRepoMock.GetByIDFunc: method is nil but transactionRepo.GetByID was just called")
	}
	callInfo := struct {
		OrgID uuid.UUID
		TxID  uuid.UUID
	}{OrgID: orgID, TxID: txID}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, orgID, txID)
}

func (mock *transactionRepoMock) GetByIDCalls() []struct {
	OrgID uuid.UUID
	TxID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *transactionRepoMock) ListByDateRange(ctx context.Context, orgID uuid.UUID, from, to time.Time, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	if mock.ListByDateRangeFunc == nil {
		panic("transactionRepoMock.ListByDateRangeFunc: method is nil but transactionRepo.ListByDateRange was just called")
	}
	callInfo := struct {
		OrgID  uuid.UUID
		From   time.Time
		To     time.Time
		Filter domain.TransactionFilter
	}{OrgID: orgID, From: from, To: to, Filter: filter}
	mock.lockListByDateRange.Lock()
	mock.calls.ListByDateRange = append(mock.calls.ListByDateRange, callInfo)
	mock.lockListByDateRange.Unlock()
	return mock.ListByDateRangeFunc(ctx, orgID, from, to, filter)
}

func (mock *transactionRepoMock) ListByDateRangeCalls() []struct {
	OrgID  uuid.UUID
	From   time.Time
	To     time.Time
	Filter domain.TransactionFilter
} {
	mock.lockListByDateRange.RLock()
	calls := mock.calls.ListByDateRange
	mock.lockListByDateRange.RUnlock()
	return calls
}

func (mock *transactionRepoMock) UpdateAttribution(ctx context.Context, orgID, txID uuid.UUID, res domain.AttributionResult) error {
	if mock.UpdateAttributionFunc == nil {
		panic("transactionRepoMock.UpdateAttributionFunc: method is nil but transactionRepo.UpdateAttribution was just called")
	}
	callInfo := struct {
		OrgID uuid.UUID
		TxID  uuid.UUID
		Res   domain.AttributionResult
	}{OrgID: orgID, TxID: txID, Res: res}
	mock.lockUpdateAttribution.Lock()
	mock.calls.UpdateAttribution = append(mock.calls.UpdateAttribution, callInfo)
	mock.lockUpdateAttribution.Unlock()
	return mock.UpdateAttributionFunc(ctx, orgID, txID, res)
}

func (mock *transactionRepoMock) UpdateAttributionCalls() []struct {
	OrgID uuid.UUID
	TxID  uuid.UUID
	Res   domain.AttributionResult
} {
	mock.lockUpdateAttribution.RLock()
	calls := mock.calls.UpdateAttribution
	mock.lockUpdateAttribution.RUnlock()
	return calls
}

var _ txManager = &txManagerMock{}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	calls struct {
		RunInTx []struct{}
	}
	lockRunInTx sync.RWMutex
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	mock.lockRunInTx.Lock()
	mock.calls.RunInTx = append(mock.calls.RunInTx, struct{}{})
	mock.lockRunInTx.Unlock()
	return mock.RunInTxFunc(ctx, fn)
}

func (mock *txManagerMock) RunInTxCalls() []struct{} {
	mock.lockRunInTx.RLock()
	calls := mock.calls.RunInTx
	mock.lockRunInTx.RUnlock()
	return calls
}

// passthroughTxManager returns a txManagerMock that runs the callback
// directly, the unit-test stand-in for a real transaction.
func passthroughTxManager() *txManagerMock {
	return &txManagerMock{
		RunInTxFunc: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		},
	}
}
