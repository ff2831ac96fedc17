// Command attribute runs the attribution waterfall over a date range and
// persists the results. It is intended to be invoked by an external cron
// job or manually for backfills.
//
// Usage:
//
//	attribute --org=ORG_UUID [--from=2024-03-01] [--to=2024-03-31]
//
// The range defaults to the last 30 days.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/rfinnegan/donorlens/internal/adapter/postgres"
	"github.com/rfinnegan/donorlens/internal/adapter/postgres/mapping"
	"github.com/rfinnegan/donorlens/internal/adapter/postgres/rule"
	"github.com/rfinnegan/donorlens/internal/adapter/postgres/spend"
	"github.com/rfinnegan/donorlens/internal/adapter/postgres/transaction"
	"github.com/rfinnegan/donorlens/internal/app"
	"github.com/rfinnegan/donorlens/internal/config"
	"github.com/rfinnegan/donorlens/internal/service/attribution"
	"github.com/rfinnegan/donorlens/pkg/ctxutil"
)

const dateLayout = "2006-01-02"

func main() {
	orgFlag := flag.String("org", "", "organization UUID to attribute")
	fromFlag := flag.String("from", "", "range start date (YYYY-MM-DD)")
	toFlag := flag.String("to", "", "range end date (YYYY-MM-DD)")
	flag.Parse()

	orgID, err := uuid.Parse(*orgFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Usage: attribute --org=ORG_UUID [--from=YYYY-MM-DD] [--to=YYYY-MM-DD]")
		os.Exit(1)
	}

	to := time.Now().UTC()
	from := to.AddDate(0, 0, -30)
	if *fromFlag != "" {
		if from, err = time.Parse(dateLayout, *fromFlag); err != nil {
			log.Fatalf("parse --from: %v", err)
		}
	}
	if *toFlag != "" {
		if to, err = time.Parse(dateLayout, *toFlag); err != nil {
			log.Fatalf("parse --to: %v", err)
		}
		to = to.Add(24*time.Hour - time.Nanosecond) // inclusive end date
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)
	logger.Info("starting attribution backfill",
		slog.String("version", app.BuildVersion()),
		slog.String("org_id", orgID.String()),
		slog.Time("from", from),
		slog.Time("to", to),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()
	// One ID per run; every log line the backfill emits carries it.
	ctx = ctxutil.WithRequestID(ctx, uuid.NewString())

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	svc := attribution.NewService(
		logger,
		postgres.NewTxManager(pool),
		mapping.New(pool),
		rule.New(pool),
		spend.New(pool),
		transaction.New(pool),
		cfg.Attribution,
	)

	report, err := svc.AttributeRange(ctxutil.WithOrgID(ctx, orgID), from, to)
	if err != nil {
		logger.Error("attribution backfill failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if report.Failed > 0 {
		logger.Warn("attribution backfill finished with failures",
			slog.Int("failed", report.Failed),
		)
		os.Exit(1)
	}
}
