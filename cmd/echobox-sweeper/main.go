package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"

	"echobox/internal/modkit"
	"echobox/internal/modkit/module"
	"echobox/internal/platform/config"
	"echobox/internal/platform/logger"
	"echobox/internal/platform/store"

	capsrepo "echobox/internal/services/api/capsules/repo"
	capssvc "echobox/internal/services/api/capsules/service"
	eventssvc "echobox/internal/services/api/events/service"
	songsrepo "echobox/internal/services/api/songs/repo"
	songssvc "echobox/internal/services/api/songs/service"
	sweepmod "echobox/internal/services/sweeper/module"
)

func main() {
	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")

	l := logger.Get()

	st, err := store.Open(context.Background(), store.Config{
		AppName: "echobox-sweeper",
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
		},
		CH: store.CHConfig{
			Enabled: chCfg.MayBool("ENABLED", true),
			URL:     chCfg.MayString("DBURL", ""),
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
		fInterval = flag.Duration("interval", 0, "sweep interval (0 = SWEEPER_INTERVAL env or 1h)")
		fBatch    = flag.Int("batch", 0, "max capsules per pass (0 = SWEEPER_BATCH env or 100)")
		fOnce     = flag.Bool("once", false, "run a single sweep pass and exit")
	)
	flag.Parse()

	deps := modkit.Deps{
		Cfg: root,
		PG:  st.PG,
		CH:  st.CH,
		Log: *l,
	}

	// the sweeper drives the same unlock engine the API uses
	songs := songssvc.New(deps.PG, songsrepo.NewPG())
	events := eventssvc.New(deps.CH, deps.Log)
	caps := capssvc.New(deps.PG, capsrepo.NewPG(), capssvc.Deps{
		Log:      deps.Log,
		Resolver: songs,
		Recorder: events,
	})

	sw := sweepmod.New(deps, caps, sweepmod.Options{
		Interval: *fInterval,
		Batch:    *fBatch,
	})
	module.Register(sw.Name(), sw.Ports())
	ports := module.MustPortsOf[sweepmod.Ports](sw)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *fOnce {
		report, err := caps.SweepDue(ctx, sweepBatch(*fBatch, root))
		if err != nil {
			l.Fatal().Err(err).Msg("sweep pass failed")
		}
		l.Info().Int("scanned", report.Scanned).Int("unlocked", report.Unlocked).
			Int("failed", report.Failed).Msg("sweep pass complete")
		return
	}

	if err := ports.Worker.Run(ctx); err != nil && ctx.Err() == nil {
		l.Fatal().Err(err).Msg("sweeper worker failed")
	}
}

func sweepBatch(flagBatch int, cfg config.Conf) int {
	if flagBatch > 0 {
		return flagBatch
	}
	b := cfg.Prefix("SWEEPER_").MayInt("BATCH", 100)
	if b <= 0 {
		b = 100
	}
	return b
}
