package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"MarketDigest/internal/config"
	"MarketDigest/internal/digest"
	"MarketDigest/internal/fetch"
	"MarketDigest/internal/news"
	"MarketDigest/internal/notifier"
	"MarketDigest/internal/quotes"
	"MarketDigest/internal/recorder"
	"MarketDigest/internal/scheduler"
	"MarketDigest/internal/summarizer"

	"github.com/joho/godotenv"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] MarketDigest starting...")

	// Local .env for development; production supplies real env vars.
	if err := godotenv.Load(); err == nil {
		log.Println("[INFO] loaded .env")
	}

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

	// Init clients
	fetcher := fetch.New(cfg.Proxy)
	quoteClient := quotes.NewClient(cfg.Quotes.BaseURL, fetcher)
	newsClient := news.NewClient(cfg.News.BaseURL)
	comp := digest.NewComposer(quoteClient, newsClient)

	sum := summarizer.New(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	if sum.Enabled() {
		log.Println("[INFO] AI summarization enabled")
	} else {
		log.Println("[INFO] AI summarization disabled (no API key)")
	}

	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, comp, sum, tn, rec, cfg.Watchlist.File)
	if err := sched.Register(cfg.Schedule.WeeklyCron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, sending digest now")
		go sched.RunNow()
	}

	log.Println("[INFO] MarketDigest is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] MarketDigest stopped")
}
