package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nadissa1508/CC3089-LAB-4/internal/cache"
	"github.com/nadissa1508/CC3089-LAB-4/internal/httpx"
	"github.com/nadissa1508/CC3089-LAB-4/internal/ingest"
	"github.com/nadissa1508/CC3089-LAB-4/internal/logger"
)

func (a *App) runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, log, err := a.setup(cmd)
	if err != nil {
		return err
	}
	datasets, err := ingest.DatasetsFor(cfg)
	if err != nil {
		return err
	}

	db, err := a.connect(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer db.Close(context.Background())

	rc := cache.New(cache.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB, TTL: cfg.CacheTTL})
	if err := rc.Ping(ctx); err != nil {
		log.WithError(err).Warn("redis unavailable, serving without cache")
		_ = rc.Close()
		rc = nil
	}
	defer rc.Close()

	hist := &ingest.History{}
	ingestLog := logger.WithComponent(log, "ingest")
	reload := func(ctx context.Context) error {
		reports, err := ingest.RunAll(ctx, cfg, db, a.Out, ingestLog)
		hist.Record(reports, err)
		if n, cerr := rc.Invalidate(ctx); cerr != nil {
			log.WithError(cerr).Warn("cache invalidation failed")
		} else if n > 0 {
			log.WithField("keys", n).Debug("cache invalidated")
		}
		if err != nil {
			ingestLog.WithError(err).Error("ingest failed")
			return err
		}
		ingestLog.Info("ingest completed")
		return nil
	}

	if a.loadOnStart {
		if err := reload(ctx); err != nil {
			return err
		}
	}

	cronLog := logger.WithComponent(log, "cron")
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.PrintfLogger(cronLog))))
	if _, err := c.AddFunc(cfg.IngestSchedule, func() { _ = reload(ctx) }); err != nil {
		return fmt.Errorf("schedule %q: %w", cfg.IngestSchedule, err)
	}
	c.Start()
	defer func() { <-c.Stop().Done() }()

	rl := httpx.NewRateLimiter(cfg.RatePerMinute)
	defer rl.Stop()

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: httpx.NewRouter(httpx.Deps{
			Catalog:     db,
			Cache:       rc,
			History:     hist,
			Collections: collections(datasets),
			Log:         log,
			Limiter:     rl,
		}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return serveUntilDone(ctx, srv, log)
}

func serveUntilDone(ctx context.Context, srv *http.Server, log logrus.FieldLogger) error {
	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func collections(datasets []ingest.Dataset) []string {
	out := make([]string, 0, len(datasets))
	for _, d := range datasets {
		out = append(out, d.Collection)
	}
	return out
}
