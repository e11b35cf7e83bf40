package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"BatterBoost/internal/appstate"
	"BatterBoost/internal/collector"
	"BatterBoost/internal/config"
	"BatterBoost/internal/game"
	"BatterBoost/internal/history"
	"BatterBoost/internal/notifier"
	"BatterBoost/internal/scheduler"
	"BatterBoost/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] BatterBoost starting...")

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

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init stats feed
	fetcher := collector.NewMLBFetcher(cfg.Feed.BaseURL, cfg.Proxy)
	col := collector.NewCollector(fetcher, cfg.Feed.TeamID, cfg.Location())
	log.Printf("[INFO] data source: %s, following %s (team %d, %s)",
		fetcher.Name(), cfg.Feed.TeamName, cfg.Feed.TeamID, cfg.Feed.Timezone)

	// Init store
	st, err := store.Open(ctx, store.Options{
		Backend:    cfg.Store.Backend,
		Dir:        cfg.Store.Path,
		SQLitePath: cfg.Store.SQLitePath,
		RedisURL:   cfg.Store.RedisURL,
	})
	if err != nil {
		log.Printf("[WARN] init %s store failed, using in-memory store: %v", cfg.Store.Backend, err)
		st = store.NewMemoryStore()
	}
	defer st.Close()

	// Init game
	states := appstate.NewManager(st, col)
	hist := history.NewManager(st, cfg.Location())
	ctrl := game.NewController(col, states, hist)
	if ctrl.Restore(ctx) {
		log.Println("[INFO] previous session restored")
	}

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, ctrl, hist, tn, cfg.Schedule.LivePoll, cfg.Schedule.ViewingCheck)
	if err := sched.Start(); err != nil {
		log.Fatalf("[FATAL] start scheduler: %v", err)
	}

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	log.Println("[INFO] BatterBoost is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	sched.Stop()
	ctrl.Background(context.Background())
	log.Println("[INFO] BatterBoost stopped")
}
