package main

import (
	"context"
	"flag"
	"os"
	"time"

	"deskscope/internal/modkit"
	"deskscope/internal/modkit/module"
	"deskscope/internal/platform/config"
	"deskscope/internal/platform/logger"
	"deskscope/internal/platform/store"

	ingestmod "deskscope/internal/services/ingest/module"

	"github.com/joho/godotenv"
)

func mustSetEnv(key, val string) {
	if val != "" {
		_ = os.Setenv(key, val)
	}
}

func main() {
	// local dev convenience; missing .env is fine
	_ = godotenv.Load()

	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")

	l := logger.Get()

	// CH is only needed for the analytics mirror; skip it when unset
	chURL := chCfg.MayString("DBURL", "")
	st, err := store.Open(context.Background(), store.Config{
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", true),
		},
		CH: store.CHConfig{
			Enabled: chURL != "",
			URL:     chURL,
			Role:    "ingest",
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	var (
		fStart  = flag.String("start", "", "UTC window start day YYYY-MM-DD")
		fEnd    = flag.String("end", "", "UTC window end day YYYY-MM-DD inclusive")
		fTenant = flag.String("tenant", "", "run a single configured tenant instead of all")
		fDryRun = flag.Bool("dry-run", false, "run the full cycle but skip the table swap")
	)
	flag.Parse()

	if *fStart == "" || *fEnd == "" {
		l.Panic().Msg("must provide -start and -end")
	}
	startDay, err := time.ParseInLocation("2006-01-02", *fStart, time.UTC)
	if err != nil {
		l.Panic().Err(err).Msg("bad -start")
	}
	endDay, err := time.ParseInLocation("2006-01-02", *fEnd, time.UTC)
	if err != nil {
		l.Panic().Err(err).Msg("bad -end")
	}
	if endDay.Before(startDay) {
		l.Panic().Str("start", *fStart).Str("end", *fEnd).Msg("-end before -start")
	}

	// whole days inclusive; Jira JQL has minute precision
	start := startDay
	end := endDay.Add(24*time.Hour - time.Minute)

	// Surface flag overrides to the module's FromConfig
	mustSetEnv("CORE_INGEST_TENANTS", *fTenant)
	if *fDryRun {
		mustSetEnv("CORE_INGEST_DRY_RUN", "1")
	}

	deps := modkit.Deps{
		Cfg: root,
		PG:  st.PG,
		CH:  st.CH,
		Log: *l,
	}

	ing := ingestmod.New(deps)
	module.Register(ing.Name(), ing.Ports())

	ports := ing.Ports().(ingestmod.Ports)
	stats, err := ports.Runner.RunWindow(context.Background(), start, end)
	if err != nil {
		l.Fatal().Err(err).Str("run_id", stats.RunID).Msg("ingest failed")
	}
	l.Info().
		Str("run_id", stats.RunID).
		Int("fetched", stats.Fetched).
		Int("merged", stats.Merged).
		Int("saved", stats.Saved).
		Bool("dry_run", stats.DryRun).
		Msg("ingest done")
}
