package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/numberdle/internal/httpserver"
	"github.com/robalobadob/numberdle/internal/store"
)

const sweepEvery = time.Minute

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	mem := store.NewMemoryStore()
	api := httpserver.New(mem, db, cfg, log.Logger)
	srv := api.HTTPServer(cfg.Addr())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Str("origin", cfg.Server.ClientOrigin).Msg("starting numberdle server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		t := time.NewTicker(sweepEvery)
		defer t.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-t.C:
				if n := mem.Sweep(cfg.Server.SessionTTL); n > 0 {
					log.Debug().Int("evicted", n).Int("live", mem.Len()).Msg("swept idle games")
				}
				if n := api.PruneDaily(); n > 0 {
					log.Debug().Int("pruned", n).Msg("dropped stale daily sessions")
				}
			}
		}
	})
	return g.Wait()
}
