package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdg-garage/eventflow-api/internal/auth"
	"github.com/gdg-garage/eventflow-api/internal/demo"
	"github.com/gdg-garage/eventflow-api/internal/events"
	"github.com/gdg-garage/eventflow-api/internal/handlers"
	"github.com/gdg-garage/eventflow-api/internal/notifier"
	"github.com/go-chi/chi/v5"
	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Start the HTTP API server and the periodic event status sweep`,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.close()

	// Set up signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var n notifier.Notifier
	if a.cfg.DiscordBotToken != "" && a.cfg.DiscordNotificationsChannelID != "" {
		discordNotifier, err := notifier.NewDiscordNotifierFromToken(a.cfg.DiscordBotToken, a.cfg.DiscordNotificationsChannelID)
		if err != nil {
			log.Warn().Err(err).Msg("Discord notifier not initialized, continuing without notifications")
		} else {
			n = discordNotifier
		}
	}

	if a.cfg.SeedDemo {
		if _, err := demo.Seed(ctx, a.accounts, a.catalog); err != nil {
			return err
		}
	}

	authHandler := auth.NewAuthHandler(a.cfg, a.accounts)
	r := chi.NewRouter()
	handlers.RegisterRoutes(r,
		authHandler,
		handlers.NewEventHandler(a.catalog, a.ledger, authHandler),
		handlers.NewRegistrationHandler(a.catalog, a.ledger, n, authHandler),
		handlers.NewCheckInHandler(a.catalog, a.ledger, a.resolver, n, authHandler),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", a.cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("port", a.cfg.Port).Msg("Starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return runStatusSweep(ctx, a.catalog, a.cfg.StatusSweepInterval)
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server error")
		return err
	}

	log.Info().Msg("Server shut down gracefully")
	return nil
}

// runStatusSweep moves events through upcoming, live and completed as their
// scheduled times pass. It blocks until ctx is done.
func runStatusSweep(ctx context.Context, catalog *events.Catalog, interval time.Duration) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			changed, err := catalog.RefreshStatuses(ctx, time.Now())
			if err != nil {
				log.Error().Err(err).Msg("Failed to refresh event statuses")
				return
			}
			if changed > 0 {
				log.Info().Int("changed", changed).Msg("Refreshed event statuses")
			}
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return err
	}

	log.Info().Dur("interval", interval).Msg("Starting event status sweep")
	scheduler.Start()

	<-ctx.Done()
	return scheduler.Shutdown()
}
