package main

import (
	"os"

	"github.com/gdg-garage/eventflow-api/internal/checkin"
	"github.com/gdg-garage/eventflow-api/internal/config"
	"github.com/gdg-garage/eventflow-api/internal/database"
	"github.com/gdg-garage/eventflow-api/internal/events"
	"github.com/gdg-garage/eventflow-api/internal/registrations"
	"github.com/gdg-garage/eventflow-api/internal/store"
	"github.com/gdg-garage/eventflow-api/internal/users"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var ephemeral bool

var rootCmd = &cobra.Command{
	Use:   "eventflow",
	Short: "Campus event registration and check-in",
	Long: `EventFlow keeps campus events, registrations and attendance in a
key-value store and serves them over an HTTP API.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		if err := cmd.Help(); err != nil {
			log.Error().Err(err).Msg("Failed to display help")
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "use an in-memory store that is discarded on exit")
}

// app holds the services every subcommand works against.
type app struct {
	cfg       *config.Config
	store     *store.Store
	session   *users.Session
	directory *users.Directory
	// accounts has no session attached. The HTTP API and seeding use it.
	accounts  *users.Directory
	catalog   *events.Catalog
	ledger    *registrations.Ledger
	resolver  *checkin.Resolver
	close     func() error
}

func loadApp() (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if ephemeral {
		cfg.StoreBackend = config.BackendMemory
	}
	configureLogging(cfg)

	kv, closeKV, err := database.OpenKV(cfg)
	if err != nil {
		return nil, err
	}
	return newApp(cfg, kv, closeKV), nil
}

func newApp(cfg *config.Config, kv store.KV, closeKV func() error) *app {
	s := store.New(kv)
	session := users.NewSession(s)
	return &app{
		cfg:       cfg,
		store:     s,
		session:   session,
		directory: users.NewDirectory(s, session),
		accounts:  users.NewDirectory(s, nil),
		catalog:   events.NewCatalog(s, cfg.FrontendURL, cfg.Location()),
		ledger:    registrations.NewLedger(s),
		resolver:  checkin.NewResolver(s, cfg.Location()),
		close:     closeKV,
	}
}

func configureLogging(cfg *config.Config) {
	if !cfg.IsDevelopment() {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("Unknown LOG_LEVEL, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}
