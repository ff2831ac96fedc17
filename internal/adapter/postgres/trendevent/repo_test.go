package trendevent

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/rfinnegan/donorlens/internal/domain"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func trendColumns() []string {
	return []string{
		"topic", "label", "label_quality",
		"one_hour_count", "six_hour_count", "daily_count", "weekly_count",
		"tier1_count", "tier2_count", "tier3_count", "last_seen",
		"velocity", "momentum", "is_trending", "is_breaking",
		"confidence", "quality_score", "computed_at",
	}
}

func TestRepo_Upsert(t *testing.T) {
	now := time.Date(2024, 4, 2, 12, 0, 0, 0, time.UTC)
	lastSeen := now.Add(-30 * time.Minute)

	mock := newMock(t)
	mock.ExpectExec(`INSERT INTO trend_events`).
		WithArgs("debt ceiling", "Debt Ceiling Vote", domain.LabelEventPhrase,
			2, 6, 12, 40, 1, 3, 8, &lastSeen,
			120.5, 0.4, true, true, 80.0, 85, now).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := New(mock)
	err := repo.Upsert(context.Background(), domain.TrendEvent{
		Topic:        "debt ceiling",
		Label:        "Debt Ceiling Vote",
		LabelQuality: domain.LabelEventPhrase,
		Counts: domain.WindowCounts{
			OneHour: 2, SixHour: 6, Daily: 12, Weekly: 40,
			Tier1Count: 1, Tier2Count: 3, Tier3Count: 8,
			LastSeen: lastSeen,
		},
		Velocity:     120.5,
		Momentum:     0.4,
		IsTrending:   true,
		IsBreaking:   true,
		Confidence:   80,
		QualityScore: 85,
		ComputedAt:   now,
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestRepo_GetByTopic_NotFound(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`SELECT topic, label, label_quality`).
		WithArgs("unknown topic").
		WillReturnRows(pgxmock.NewRows(trendColumns()))

	repo := New(mock)
	_, err := repo.GetByTopic(context.Background(), "Unknown  Topic")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestRepo_ListTrending(t *testing.T) {
	now := time.Date(2024, 4, 2, 12, 0, 0, 0, time.UTC)
	cutoff := now.Add(-time.Hour)

	mock := newMock(t)
	rows := pgxmock.NewRows(trendColumns()).
		AddRow("debt ceiling", "Debt Ceiling Vote", "EVENT_PHRASE",
			2, 6, 12, 40, 1, 3, 8, &now,
			120.5, 0.4, true, false, 80.0, 85, now).
		AddRow("border bill", "Border Bill", "EVENT_PHRASE",
			1, 5, 9, 20, 0, 2, 7, &now,
			90.0, 0.2, true, false, 60.0, 70, now)
	mock.ExpectQuery(`SELECT topic, label, label_quality`).
		WithArgs(cutoff).
		WillReturnRows(rows)

	repo := New(mock)
	got, err := repo.ListTrending(context.Background(), cutoff)
	if err != nil {
		t.Fatalf("ListTrending: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Topic != "debt ceiling" {
		t.Errorf("fastest-moving topic first, got %q", got[0].Topic)
	}
	if got[0].Counts.Daily != 12 || got[0].Counts.SixHour != 6 {
		t.Errorf("counts not mapped: %+v", got[0].Counts)
	}
}
