// Package cli implements the assistant command line interface. It is the
// presentation collaborator of the sync core: it wires the stores, the
// gateway, the status manager and the orchestrator together and maps
// subcommands onto store mutations and orchestrated sync operations.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kurtulus-bartu/personal-assistant/internal/bus"
	"github.com/kurtulus-bartu/personal-assistant/internal/config"
	"github.com/kurtulus-bartu/personal-assistant/internal/logger"
	"github.com/kurtulus-bartu/personal-assistant/internal/store"
	"github.com/kurtulus-bartu/personal-assistant/internal/supabase"
	"github.com/kurtulus-bartu/personal-assistant/internal/syncer"
)

var (
	logLevel   string
	logFile    string
	logConsole bool
)

var rootCmd = &cobra.Command{
	Use:   "assistant",
	Short: "Personal planner with Supabase sync",
	Long: `Personal assistant keeps your tags, projects, tasks and calendar
events in local JSON files and synchronizes them with a Supabase backend.

Local data is always authoritative for the current session; sync commands
reconcile it with the remote side in foreign-key dependency order.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			cfg = config.DefaultConfig()
		}

		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		if cmd.Flags().Changed("log-file") {
			cfg.LogFile = logFile
		}
		if cmd.Flags().Changed("log-console") {
			cfg.LogConsole = logConsole
		}

		logConfig := logger.DefaultConfig()
		logConfig.Level = logger.ParseLevel(cfg.LogLevel)
		logConfig.FilePath = cfg.LogFile
		logConfig.Console = cfg.LogConsole

		if err := logger.Init(logConfig); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		logger.Info("assistant started", logger.F("command", cmd.Name()))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Info("assistant exiting", logger.F("command", cmd.Name()))
		_ = logger.Close()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to log file")
	rootCmd.PersistentFlags().BoolVar(&logConsole, "log-console", false, "Enable console logging")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(tagCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(eventCmd)
	rootCmd.AddCommand(pullCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(replaceCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(statusCmd)
}

// App bundles the wired sync subsystem for one command invocation.
type App struct {
	Config   *config.Config
	Bus      *bus.Bus
	Client   *supabase.Client
	Tags     *store.TagStore
	Projects *store.ProjectStore
	Tasks    *store.TaskStore
	Events   *store.EventStore
	Status   *syncer.StatusManager
	Orch     *syncer.Orchestrator
	Worker   *syncer.Worker
}

// openApp constructs the whole subsystem: config, event bus, gateway,
// the four stores (loaded from disk), status manager, orchestrator and
// push worker. Everything is dependency-injected; nothing is global.
func openApp() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	b := bus.New()
	log := logger.WithFields()
	client := supabase.NewClient(supabase.Config{URL: cfg.SupabaseURL, Key: cfg.SupabaseKey}, log)

	app := &App{
		Config:   cfg,
		Bus:      b,
		Client:   client,
		Tags:     store.NewTagStore(cfg.DataDir, client.Tags(), b, log),
		Projects: store.NewProjectStore(cfg.DataDir, client.Projects(), b, log),
		Tasks:    store.NewTaskStore(cfg.DataDir, client.Tasks(), b, log),
		Events:   store.NewEventStore(cfg.DataDir, client.Events(), b, log),
	}

	app.Status = syncer.NewStatusManager(b)
	app.Orch = syncer.New(app.Tags, app.Projects, app.Tasks, app.Events, client, app.Status, log)
	app.Worker = syncer.NewWorker(app.Orch, syncer.WorkerOptions{})

	for _, s := range []interface {
		SetNotifier(store.Notifier)
		SetErrorReporter(store.ErrorReporter)
	}{app.Tags, app.Projects, app.Tasks, app.Events} {
		s.SetNotifier(app.Worker)
		s.SetErrorReporter(app.Status)
	}

	app.Tags.Load()
	app.Projects.Load()
	app.Tasks.Load()
	app.Events.Load()

	return app, nil
}

// Close drains any pending background push and stops the worker.
func (a *App) Close() {
	if a.RemoteConfigured() && a.Worker.IsPending() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := a.Worker.Flush(ctx); err != nil {
			fmt.Printf("⚠️  Background sync failed: %v\n", err)
		}
	}
	a.Worker.Stop()
}

// RemoteConfigured reports whether a Supabase backend is configured.
func (a *App) RemoteConfigured() bool {
	return a.Config.SupabaseURL != "" && a.Config.SupabaseKey != ""
}

// requireRemote returns a friendly error for sync commands when no
// backend is configured.
func (a *App) requireRemote() error {
	if !a.RemoteConfigured() {
		return fmt.Errorf("no backend configured: set supabase_url and supabase_key in the config file or PA_SUPABASE_URL / PA_SUPABASE_KEY")
	}
	return nil
}
