package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"
	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"folio/internal/api"
	"folio/internal/config"
	"folio/internal/events"
	"folio/internal/kvstore"
	"folio/internal/portfolio"
	"folio/internal/tasks"
)

// app carries state shared by every subcommand.
type app struct {
	verbose  bool
	openSite func(ctx context.Context) (*portfolio.Site, func(), error)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "folio-admin",
		Short: "Edit portfolio content directly in the configured store",
		Long: `folio-admin works against the same store as the API server.
Edits go through the list editor, so ids, list parsing and delete
confirmation behave exactly as they do over HTTP.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if a.verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(
		newHashPasswordCmd(),
		newShowCmd(a),
		newAddCmd(a),
		newEditCmd(a),
		newDeleteCmd(a),
		newResetCmd(a),
	)
	return root
}

// Execute runs the CLI against the store described by the environment.
func Execute() {
	a := &app{openSite: openConfiguredSite}
	if err := newRootCmd(a).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openConfiguredSite loads the site the same way the API does. When redis is
// configured, edits are announced to live pages and snapshotted.
func openConfiguredSite(ctx context.Context) (*portfolio.Site, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var redisClient redis.UniversalClient
	if cfg.RedisRequired() {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		closers = append(closers, func() { _ = client.Close() })
		if err := client.Ping(ctx).Err(); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("ping redis: %w", err)
		}
		redisClient = client
	}

	store, err := kvstore.Open(cfg.Store, cfg.Database, redisClient)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	notifier := &api.ChangeNotifier{Logger: slog.Default()}
	if redisClient != nil {
		notifier.Publisher = events.NewRedisBus(redisClient)
		if cfg.Worker.SnapshotOnSave {
			asynqClient := asynq.NewClient(asynq.RedisClientOpt{
				Addr:     cfg.Redis.Addr(),
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
			closers = append(closers, func() { _ = asynqClient.Close() })
			notifier.Snapshots = tasks.NewSnapshotScheduler(asynqClient, cfg.Store.Namespace, slog.Default())
		}
	}

	site := portfolio.NewSite(ctx, store, portfolio.Options{
		ConfirmDelete: cfg.Editor.ConfirmDelete,
		OnChange:      notifier.Notify,
	}, slog.Default())
	return site, cleanup, nil
}

// withSite opens the site for the duration of fn.
func (a *app) withSite(cmd *cobra.Command, fn func(ctx context.Context, site *portfolio.Site) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	site, cleanup, err := a.openSite(ctx)
	if err != nil {
		return err
	}
	defer cleanup()
	return fn(ctx, site)
}
