package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zeusync/skyfire/internal/config"
	"github.com/zeusync/skyfire/internal/core/clock"
	"github.com/zeusync/skyfire/internal/core/observability/log"
	"github.com/zeusync/skyfire/internal/injector"
)

func main() {
	var (
		path     = flag.String("config", "", "path to a YAML config (defaults to $"+config.EnvPath+")")
		duration = flag.Duration("duration", 0, "stop after this much wall time (0 runs until interrupted)")
		sweep    = flag.Uint64("sweep", 90, "ticks the autopilot spends on each horizontal leg")
	)
	flag.Parse()

	if err := run(*path, *duration, *sweep); err != nil {
		fmt.Fprintln(os.Stderr, "skyfire:", err)
		os.Exit(1)
	}
}

func run(path string, duration time.Duration, sweep uint64) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	app, cleanup, err := injector.InitializeApp(cfg, newAutopilot(sweep))
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, duration)
		defer cancel()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.Game.Run(ctx, clock.Real{})
	})
	if cfg.Metrics.Enabled {
		srv := &http.Server{
			Addr:              cfg.Metrics.Listen,
			Handler:           app.Metrics.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			app.Logger.Info("serving metrics", log.String("listen", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	if err = g.Wait(); err != nil {
		app.Logger.Error("simulation failed", log.Error(err))
		return err
	}

	stats := app.Game.Stats()
	app.Logger.Info("final state",
		log.Uint64("ticks", stats.Tick),
		log.Duration("simulated", stats.Now),
		log.Int("entities", stats.Entities),
		log.Int("enemies", stats.Enemies),
		log.Int("lasers", stats.Lasers),
		log.Bool("ship_alive", stats.ShipAlive),
	)
	return nil
}
