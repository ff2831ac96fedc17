package trend

import (
	"context"
	"sync"
	"time"

	"github.com/rfinnegan/donorlens/internal/domain"
)

var _ evidenceRepo = &evidenceRepoMock{}

type evidenceRepoMock struct {
	InsertFunc       func(ctx context.Context, items []domain.Evidence) error
	WindowCountsFunc func(ctx context.Context, topic string, now time.Time) (domain.WindowCounts, error)
	ActiveTopicsFunc func(ctx context.Context, since time.Time) ([]string, error)

	calls struct {
		Insert []struct {
			Items []domain.Evidence
		}
		WindowCounts []struct {
			Topic string
			Now   time.Time
		}
		ActiveTopics []struct {
			Since time.Time
		}
	}
	lockInsert       sync.RWMutex
	lockWindowCounts sync.RWMutex
	lockActiveTopics sync.RWMutex
}

func (mock *evidenceRepoMock) Insert(ctx context.Context, items []domain.Evidence) error {
	if mock.InsertFunc == nil {
		panic("evidenceRepoMock.InsertFunc: method is nil but evidenceRepo.Insert was just called")
	}
	mock.lockInsert.Lock()
	mock.calls.Insert = append(mock.calls.Insert, struct{ Items []domain.Evidence }{Items: items})
	mock.lockInsert.Unlock()
	return mock.InsertFunc(ctx, items)
}

func (mock *evidenceRepoMock) InsertCalls() []struct{ Items []domain.Evidence } {
	mock.lockInsert.RLock()
	calls := mock.calls.Insert
	mock.lockInsert.RUnlock()
	return calls
}

func (mock *evidenceRepoMock) WindowCounts(ctx context.Context, topic string, now time.Time) (domain.WindowCounts, error) {
	if mock.WindowCountsFunc == nil {
		panic("evidenceRepoMock.WindowCountsFunc: method is nil but evidenceRepo.WindowCounts was just called")
	}
	callInfo := struct {
		Topic string
		Now   time.Time
	}{Topic: topic, Now: now}
	mock.lockWindowCounts.Lock()
	mock.calls.WindowCounts = append(mock.calls.WindowCounts, callInfo)
	mock.lockWindowCounts.Unlock()
	return mock.WindowCountsFunc(ctx, topic, now)
}

func (mock *evidenceRepoMock) WindowCountsCalls() []struct {
	Topic string
	Now   time.Time
} {
	mock.lockWindowCounts.RLock()
	calls := mock.calls.WindowCounts
	mock.lockWindowCounts.RUnlock()
	return calls
}

func (mock *evidenceRepoMock) ActiveTopics(ctx context.Context, since time.Time) ([]string, error) {
	if mock.ActiveTopicsFunc == nil {
		panic("evidenceRepoMock.ActiveTopicsFunc: method is nil but evidenceRepo.ActiveTopics was just called")
	}
	mock.lockActiveTopics.Lock()
	mock.calls.ActiveTopics = append(mock.calls.ActiveTopics, struct{ Since time.Time }{Since: since})
	mock.lockActiveTopics.Unlock()
	return mock.ActiveTopicsFunc(ctx, since)
}

func (mock *evidenceRepoMock) ActiveTopicsCalls() []struct{ Since time.Time } {
	mock.lockActiveTopics.RLock()
	calls := mock.calls.ActiveTopics
	mock.lockActiveTopics.RUnlock()
	return calls
}

var _ trendEventRepo = &trendEventRepoMock{}

type trendEventRepoMock struct {
	UpsertFunc       func(ctx context.Context, ev domain.TrendEvent) error
	GetByTopicFunc   func(ctx context.Context, topic string) (*domain.TrendEvent, error)
	ListTrendingFunc func(ctx context.Context, computedAfter time.Time) ([]domain.TrendEvent, error)

	calls struct {
		Upsert []struct {
			Ev domain.TrendEvent
		}
		GetByTopic []struct {
			Topic string
		}
		ListTrending []struct {
			ComputedAfter time.Time
		}
	}
	lockUpsert       sync.RWMutex
	lockGetByTopic   sync.RWMutex
	lockListTrending sync.RWMutex
}

func (mock *trendEventRepoMock) Upsert(ctx context.Context, ev domain.TrendEvent) error {
	if mock.UpsertFunc == nil {
		panic("trendEventRepoMock.UpsertFunc: method is nil but trendEventRepo.Upsert was just called")
	}
	mock.lockUpsert.Lock()
	mock.calls.Upsert = append(mock.calls.Upsert, struct{ Ev domain.TrendEvent }{Ev: ev})
	mock.lockUpsert.Unlock()
	return mock.UpsertFunc(ctx, ev)
}

func (mock *trendEventRepoMock) UpsertCalls() []struct{ Ev domain.TrendEvent } {
	mock.lockUpsert.RLock()
	calls := mock.calls.Upsert
	mock.lockUpsert.RUnlock()
	return calls
}

func (mock *trendEventRepoMock) GetByTopic(ctx context.Context, topic string) (*domain.TrendEvent, error) {
	if mock.GetByTopicFunc == nil {
		panic("trendEventRepoMock.GetByTopicFunc: method is nil but trendEventRepo.GetByTopic was just called")
	}
	mock.lockGetByTopic.Lock()
	mock.calls.GetByTopic = append(mock.calls.GetByTopic, struct{ Topic string }{Topic: topic})
	mock.lockGetByTopic.Unlock()
	return mock.GetByTopicFunc(ctx, topic)
}

func (mock *trendEventRepoMock) GetByTopicCalls() []struct{ Topic string } {
	mock.lockGetByTopic.RLock()
	calls := mock.calls.GetByTopic
	mock.lockGetByTopic.RUnlock()
	return calls
}

func (mock *trendEventRepoMock) ListTrending(ctx context.Context, computedAfter time.Time) ([]domain.TrendEvent, error) {
	if mock.ListTrendingFunc == nil {
		panic("trendEventRepoMock.ListTrendingFunc: method is nil but trendEventRepo.ListTrending was just called")
	}
	mock.lockListTrending.Lock()
	mock.calls.ListTrending = append(mock.calls.ListTrending, struct{ ComputedAfter time.Time }{ComputedAfter: computedAfter})
	mock.lockListTrending.Unlock()
	return mock.ListTrendingFunc(ctx, computedAfter)
}

func (mock *trendEventRepoMock) ListTrendingCalls() []struct{ ComputedAfter time.Time } {
	mock.lockListTrending.RLock()
	calls := mock.calls.ListTrending
	mock.lockListTrending.RUnlock()
	return calls
}
