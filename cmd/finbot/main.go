package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"finbot/internal/amqp"
	"finbot/internal/bot"
	"finbot/internal/config"
	applog "finbot/internal/log"
	"finbot/internal/report"
	"finbot/internal/scheduler"
	"finbot/internal/services"
	"finbot/internal/storage"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	cfg := config.Load()

	logger := applog.New(applog.ParseLevel(cfg.LogLevel), applog.ComponentApp)
	applog.SetDefault(logger)

	logger.Info("Starting finbot")

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}

	// AMQP is optional: without it transactions stay local and the
	// spreadsheet export pipeline is simply off.
	var publisher services.SyncPublisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without export", "error", err)
		} else {
			publisher = client
			logger.Info("AMQP client initialized - transactions will sync via finbot-worker")
		}
	} else {
		logger.Info("AMQP disabled - transactions will not be exported")
	}

	ledger := services.NewLedgerService(repo, publisher)
	defer ledger.Close()

	renderer := report.NewChartRenderer()
	router := bot.NewRouter(ledger, renderer, cfg.ChartDir, cfg.ReportDays,
		logger.WithComponent(applog.ComponentBot))

	discord, err := bot.NewDiscord(cfg.DiscordToken, router,
		logger.WithComponent(applog.ComponentBot))
	if err != nil {
		logger.Error("Failed to create Discord session", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := discord.Open(); err != nil {
			return err
		}
		<-ctx.Done()
		return discord.Close()
	})

	if cfg.ReportChannelID != "" {
		job := scheduler.NewWeeklyJob(ledger, renderer, discord, cfg.ReportChannelID,
			logger.WithComponent(applog.ComponentScheduler))
		sched, err := scheduler.NewWeekly(cfg.WeeklyCron, job)
		if err != nil {
			logger.Error("Failed to schedule weekly report", "error", err)
			os.Exit(1)
		}
		g.Go(func() error {
			sched.Start()
			logger.Info("Weekly report scheduled",
				"cron", cfg.WeeklyCron,
				"channel_id", cfg.ReportChannelID)
			<-ctx.Done()
			sched.Stop()
			return nil
		})
	} else {
		logger.Info("REPORT_CHANNEL_ID not set - weekly report disabled")
	}

	logger.Info("finbot running", "db", cfg.SQLiteDBPath)
	if err := g.Wait(); err != nil && ctx.Err() == nil {
		logger.Error("finbot exited with error", "error", err)
		os.Exit(1)
	}

	logger.Info("finbot stopped gracefully")
}
