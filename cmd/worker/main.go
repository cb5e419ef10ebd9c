package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"stock-tracker/internal/app"
	"stock-tracker/internal/core/config"
	"stock-tracker/internal/core/logger"
	"stock-tracker/internal/features/alerts/worker"

	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run inventory checks from an asynq queue",
	Long: `Run inventory checks from an asynq queue backed by Redis (REDIS_URL).

Examples:
  worker serve       process queued inventory:check tasks
  worker enqueue     push one inventory:check task
  worker schedule    enqueue a task on CHECK_CRON`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, _ := cmd.Flags().GetString("config-dir")

		c, err := config.Load(configDir)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if c.Redis.URL == "" {
			return errors.New("REDIS_URL is required")
		}
		if err := logger.Init(c.Environment, c.LogLevel); err != nil {
			return fmt.Errorf("failed to init logger: %w", err)
		}

		cfg = c
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

// cfg is loaded once by the root command before any subcommand runs.
var cfg *config.AppConfig

func redisOpt() (asynq.RedisConnOpt, error) {
	opt, err := asynq.ParseRedisURI(cfg.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	return opt, nil
}

// --- serve ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Process queued inventory checks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		concurrency, _ := cmd.Flags().GetInt("concurrency")

		opt, err := redisOpt()
		if err != nil {
			return err
		}

		checker, err := app.NewChecker(cmd.Context(), cfg, nil)
		if err != nil {
			return err
		}
		defer checker.Close()

		l := logger.Component("worker")
		srv := asynq.NewServer(opt, asynq.Config{
			Concurrency: concurrency,
			Queues:      map[string]int{worker.Queue: 1},
			Logger:      l.Sugar(),
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				retried, _ := asynq.GetRetryCount(ctx)
				maxRetry, _ := asynq.GetMaxRetry(ctx)
				l.Error("Task failed",
					zap.String("type", task.Type()),
					zap.Int("retried", retried),
					zap.Int("max_retry", maxRetry),
					zap.Error(err),
				)
			}),
		})

		mux := worker.NewServeMux(worker.NewCheckTaskHandler(checker))
		l.Info("Worker starting", zap.Int("concurrency", concurrency))
		return srv.Run(mux)
	},
}

// --- enqueue ---

var enqueueCmd = &cobra.Command{
	Use:   "enqueue",
	Short: "Push one inventory check onto the queue",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opt, err := redisOpt()
		if err != nil {
			return err
		}

		client := asynq.NewClient(opt)
		defer client.Close()

		info, err := client.EnqueueContext(cmd.Context(), worker.NewCheckTask())
		if err != nil {
			return fmt.Errorf("failed to enqueue task: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "enqueued %s (queue %s)\n", info.ID, info.Queue)
		return nil
	},
}

// --- schedule ---

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Enqueue inventory checks on the CHECK_CRON schedule",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opt, err := redisOpt()
		if err != nil {
			return err
		}

		l := logger.Component("scheduler")
		scheduler := asynq.NewScheduler(opt, &asynq.SchedulerOpts{
			Logger: l.Sugar(),
		})

		entryID, err := scheduler.Register(cfg.Checker.Cron, worker.NewCheckTask())
		if err != nil {
			return fmt.Errorf("failed to register %q: %w", cfg.Checker.Cron, err)
		}
		l.Info("Scheduler starting", zap.String("cron", cfg.Checker.Cron), zap.String("entry_id", entryID))
		return scheduler.Run()
	},
}

func init() {
	rootCmd.PersistentFlags().String("config-dir", ".", "Directory containing the .env file")
	serveCmd.Flags().Int("concurrency", 1, "Number of tasks processed concurrently")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(enqueueCmd)
	rootCmd.AddCommand(scheduleCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
