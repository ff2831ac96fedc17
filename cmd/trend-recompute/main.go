// Command trend-recompute rebuilds trend events from raw evidence. It is
// safe to run on a schedule: every run recomputes each active topic from
// scratch, so a crashed run leaves nothing to repair.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/rfinnegan/donorlens/internal/adapter/postgres"
	"github.com/rfinnegan/donorlens/internal/adapter/postgres/evidence"
	"github.com/rfinnegan/donorlens/internal/adapter/postgres/trendevent"
	"github.com/rfinnegan/donorlens/internal/app"
	"github.com/rfinnegan/donorlens/internal/config"
	"github.com/rfinnegan/donorlens/internal/service/trend"
	"github.com/rfinnegan/donorlens/pkg/ctxutil"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)
	logger.Info("starting trend recompute", slog.String("version", app.BuildVersion()))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Trend.RecomputeTimeout+time.Minute)
	defer cancel()
	// One ID per run; every log line the recompute emits carries it.
	ctx = ctxutil.WithRequestID(ctx, uuid.NewString())

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	svc := trend.NewService(logger, evidence.New(pool), trendevent.New(pool), cfg.Trend)

	report, err := svc.Recompute(ctx, time.Now().UTC())
	if err != nil {
		logger.Error("trend recompute failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if report.Failed > 0 {
		logger.Warn("trend recompute finished with failures",
			slog.Int("failed", report.Failed),
		)
		os.Exit(1)
	}
}
