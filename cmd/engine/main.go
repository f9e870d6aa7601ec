package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ScenarioLens/internal/config"
	"ScenarioLens/internal/engine"
	"ScenarioLens/internal/forecast"
	"ScenarioLens/internal/notifier"
	"ScenarioLens/internal/recorder"
	"ScenarioLens/internal/risk"
	"ScenarioLens/internal/scheduler"
	"ScenarioLens/internal/store"

	"github.com/shopspring/decimal"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] ScenarioLens starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init forecast provider
	var provider forecast.Provider
	if cfg.Provider.BaseURL != "" {
		provider = forecast.NewHTTPProvider(cfg.Provider.BaseURL, cfg.Provider.APIKey, cfg.Proxy,
			time.Duration(cfg.Provider.TimeoutSeconds)*time.Second)
	} else {
		provider = &forecast.MockProvider{DailyRevenue: decimal.NewFromInt(3000), Confidence: 0.9}
	}
	log.Printf("[INFO] forecast provider: %s", provider.Name())

	// Init engine
	eng := engine.New(provider, engine.Config{
		HorizonDays:       cfg.Engine.HorizonDays,
		SimulationBudget:  time.Duration(cfg.Engine.BudgetSeconds) * time.Second,
		ProviderTimeout:   time.Duration(cfg.Provider.TimeoutSeconds) * time.Second,
		SparseHistoryDays: cfg.Engine.SparseHistoryDays,
		Risk: risk.Config{
			CashflowThreshold:  cfg.Risk.CashflowThreshold,
			CriticalDays:       cfg.Risk.CriticalDays,
			RecurringCostRatio: cfg.Risk.RecurringCostRatio,
			HiringGrowthRatio:  cfg.Risk.HiringGrowthRatio,
		},
	})

	// Init context store
	st, err := store.NewSQLiteStore(cfg.Database.SQLitePath)
	if err != nil {
		log.Fatalf("[FATAL] open context store: %v", err)
	}
	defer st.Close()

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	// Init recorder
	var rec recorder.Recorder
	if sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath); err != nil {
		log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
		rec = recorder.NewNoopRecorder()
	} else {
		rec = sr
		defer sr.Close()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, eng, st, tn, rec)
	if err := sched.RegisterAll(cfg.Schedule.DailyCron, cfg.Schedule.DigestCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing risk scan now")
		go sched.RunScanNow()
	}

	log.Println("[INFO] ScenarioLens is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] ScenarioLens stopped")
}
