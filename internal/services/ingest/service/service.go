// Package service runs the ticket ingestion cycle
package service

import (
	"context"
	"errors"
	"time"

	"deskscope/internal/modkit/repokit"
	perr "deskscope/internal/platform/errors"
	"deskscope/internal/platform/logger"
	"deskscope/internal/platform/store"
	"deskscope/internal/services/ingest/domain"
	"deskscope/internal/services/ingest/guardrails"
	"deskscope/internal/services/ingest/merge"

	"github.com/google/uuid"
)

// Tenant is one configured ticket source
type Tenant struct {
	Name       string
	Project    string
	CompanyTag string
}

// Config holds configuration options for the ingest service
type Config struct {
	// Tenants are processed sequentially; their batches merge into one table
	Tenants []Tenant

	// DryRun runs the full cycle but skips the table swap
	DryRun bool

	// Timeouts applied via guardrails
	RunTimeout   time.Duration
	FetchTimeout time.Duration
	DBTimeout    time.Duration
}

// Service implements the ingest cycle
type Service struct {
	DB      repokit.TxRunner
	Binder  repokit.Binder[domain.StorageRepo]
	Fetch   domain.Fetcher
	Extract domain.Extractor
	Enrich  domain.Enricher
	Cfg     Config

	// Lease serializes merge-and-save against the ticket table
	Lease guardrails.TableLease

	// Mirror is optional; nil disables the analytics copy
	Mirror domain.Mirror
}

// New constructs the ingest service
func New(
	db repokit.TxRunner,
	binder repokit.Binder[domain.StorageRepo],
	f domain.Fetcher,
	ex domain.Extractor,
	en domain.Enricher,
	cfg Config,
	lease guardrails.TableLease,
	mirror domain.Mirror, // optional
) *Service {
	if db == nil {
		panic("ingest.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("ingest.Service requires a non nil Repo binder")
	}
	if lease == nil {
		panic("ingest.Service requires a table lease")
	}
	return &Service{
		DB: db, Binder: binder,
		Fetch: f, Extract: ex, Enrich: en,
		Cfg:    cfg,
		Lease:  lease,
		Mirror: mirror,
	}
}

// RunWindow implements domain.RunnerPort: fetch the window per tenant,
// extract, derive, merge into the stored table, then swap the table under
// the lease. Any failure before the swap leaves the persisted table untouched
func (s *Service) RunWindow(ctx context.Context, start, end time.Time) (stats domain.RunStats, retErr error) {
	start = start.UTC()
	end = end.UTC()
	if end.Before(start) {
		return domain.RunStats{}, errors.New("end before start")
	}
	if len(s.Cfg.Tenants) == 0 {
		return domain.RunStats{}, errors.New("no tenants configured")
	}

	tos := guardrails.Timeouts{
		Run:   s.Cfg.RunTimeout,
		Fetch: s.Cfg.FetchTimeout,
		DB:    s.Cfg.DBTimeout,
	}
	runCtx, runCancel := guardrails.WithRun(ctx, tos)
	defer runCancel()

	stats = domain.RunStats{RunID: uuid.NewString(), DryRun: s.Cfg.DryRun}
	log := logger.C(ctx).With().Str("run_id", stats.RunID).Logger()

	startWall := time.Now()
	var fetchMS, deriveMS, dbMS int
	var errText string

	// ledger start (best-effort, DB-bounded)
	{
		dbCtx, dbCancel := guardrails.ForDB(runCtx, tos)
		_ = s.DB.Tx(dbCtx, func(q store.RowQuerier) error {
			return s.Binder.Bind(q).StartRun(dbCtx, stats.RunID, start, end)
		})
		dbCancel()
	}

	// ledger finish even on error
	defer func() {
		if retErr != nil && errText == "" {
			errText = retErr.Error()
		}
		status := "ok"
		if retErr != nil {
			status = "error"
		}
		dbCtx, dbCancel := guardrails.ForDB(runCtx, tos)
		_ = s.DB.Tx(dbCtx, func(q store.RowQuerier) error {
			return s.Binder.Bind(q).FinishRun(dbCtx, stats.RunID, domain.RunFinish{
				Status:    status,
				Fetched:   stats.Fetched,
				Extracted: stats.Extracted,
				Merged:    stats.Merged,
				Saved:     stats.Saved,
				FetchMS:   fetchMS,
				DeriveMS:  deriveMS,
				DBMS:      dbMS,
				ElapsedMS: int(time.Since(startWall).Milliseconds()),
				ErrText:   errText,
			})
		})
		dbCancel()
	}()

	// fetch, extract, derive per tenant; no DB work yet
	var batches []domain.Table
	var mirrorRows []domain.EnrichedRow
	for _, tn := range s.Cfg.Tenants {
		t0 := time.Now()
		fetchCtx, fetchCancel := guardrails.ForFetch(runCtx, tos)
		raws, err := s.Fetch.FetchCreatedBetween(fetchCtx, tn.Project, start, end)
		fetchCancel()
		fetchMS += int(time.Since(t0).Milliseconds())
		if err != nil {
			retErr = perr.Wrapf(err, perr.CodeOf(err), "fetch tenant %s", tn.Name)
			return stats, retErr
		}
		stats.Fetched += len(raws)

		t1 := time.Now()
		rows := make([]domain.TicketRow, 0, len(raws))
		for i := range raws {
			row, err := s.Extract.Extract(raws[i], tn.CompanyTag)
			if err != nil {
				// one malformed record poisons the batch; better loud than silent drift
				retErr = perr.Wrapf(err, perr.CodeOf(err), "extract tenant %s", tn.Name)
				return stats, retErr
			}
			rows = append(rows, row)
		}
		stats.Extracted += len(rows)

		enriched := s.Enrich.Enrich(rows)
		deriveMS += int(time.Since(t1).Milliseconds())

		batches = append(batches, domain.Table{Rows: enriched})
		mirrorRows = append(mirrorRows, enriched...)

		log.Info().
			Str("tenant", tn.Name).
			Str("project", tn.Project).
			Int("fetched", len(raws)).
			Msg("ingest: tenant window fetched")
	}

	// merge and swap under the table lease, one transaction
	t2 := time.Now()
	dbCtx, dbCancel := guardrails.ForDB(runCtx, tos)
	defer dbCancel()
	err := s.Lease(dbCtx, func(ctx context.Context, q store.RowQuerier) error {
		repo := s.Binder.Bind(q)

		table, existed, err := repo.LoadTable(ctx)
		if err != nil {
			return perr.Wrapf(err, perr.ErrorCodeIO, "load table")
		}
		if !existed {
			log.Info().Msg("ingest: no stored table yet, starting fresh")
		}

		for _, b := range batches {
			table, err = merge.Merge(table, b)
			if err != nil {
				return err
			}
		}
		stats.Merged = len(table.Rows)

		if s.Cfg.DryRun {
			return nil
		}
		if err := repo.ReplaceTable(ctx, table); err != nil {
			return perr.Wrapf(err, perr.ErrorCodeIO, "replace table")
		}
		stats.Saved = len(table.Rows)
		return nil
	})
	dbMS = int(time.Since(t2).Milliseconds())
	if err != nil {
		retErr = err
		return stats, retErr
	}

	// mirror after the swap commits; failure never fails the run
	if s.Mirror != nil && !s.Cfg.DryRun && len(mirrorRows) > 0 {
		mCtx, mCancel := guardrails.ForDB(runCtx, tos)
		if err := s.Mirror.MirrorRows(mCtx, stats.RunID, mirrorRows); err != nil {
			log.Warn().Err(err).Msg("ingest: mirror append failed")
		}
		mCancel()
	}

	log.Info().
		Int("fetched", stats.Fetched).
		Int("extracted", stats.Extracted).
		Int("merged", stats.Merged).
		Int("saved", stats.Saved).
		Bool("dry_run", stats.DryRun).
		Msg("ingest: window done")
	return stats, nil
}
