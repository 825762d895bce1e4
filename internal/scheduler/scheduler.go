package scheduler

import (
	"context"
	"fmt"
	"log"
	"unicode/utf8"

	"MarketDigest/internal/digest"
	"MarketDigest/internal/notifier"
	"MarketDigest/internal/recorder"
	"MarketDigest/internal/summarizer"
	"MarketDigest/internal/watchlist"

	"github.com/robfig/cron/v3"
)

// Scheduler wires the digest pipeline to a weekly cron trigger and to
// Telegram commands.
type Scheduler struct {
	Cron          *cron.Cron
	Composer      *digest.Composer
	Summarizer    *summarizer.Summarizer
	Notifier      *notifier.TelegramNotifier
	Recorder      recorder.Recorder
	WatchlistPath string
	Ctx           context.Context
}

// NewScheduler creates a Scheduler.
func NewScheduler(ctx context.Context, comp *digest.Composer, sum *summarizer.Summarizer,
	tn *notifier.TelegramNotifier, rec recorder.Recorder, watchlistPath string) *Scheduler {
	return &Scheduler{
		Cron:          cron.New(cron.WithSeconds()),
		Composer:      comp,
		Summarizer:    sum,
		Notifier:      tn,
		Recorder:      rec,
		WatchlistPath: watchlistPath,
		Ctx:           ctx,
	}
}

// Register adds the weekly digest task.
func (s *Scheduler) Register(weeklyCron string) error {
	if _, err := s.Cron.AddFunc(weeklyCron, s.weeklyDigest); err != nil {
		return fmt.Errorf("register weekly digest: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the digest immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.weeklyDigest()
}

// weeklyDigest runs the full pipeline: compose (degrading per section),
// optionally summarize, budget, deliver, record. Sequential by design; the
// single batched quote request makes per-symbol concurrency unnecessary.
func (s *Scheduler) weeklyDigest() {
	log.Println("[INFO] running weekly digest")

	wl, err := watchlist.Load(s.WatchlistPath)
	if err != nil {
		log.Printf("[ERROR] load watchlist: %v", err)
		s.trySend(fmt.Sprintf("❌ Weekly digest failed: %v", err))
		return
	}

	raw, quotesOK := s.Composer.Build(wl)
	raw = digest.Truncate(raw, digest.MaxMessageLen)

	summary, summarized := s.Summarizer.Summarize(s.Ctx, raw)
	final := digest.ComposeFinal(raw, summary)

	deliveryErr := s.Notifier.SendWithRetry(s.Ctx, final, 3)
	if deliveryErr != nil {
		log.Printf("[ERROR] deliver digest: %v", deliveryErr)
	}

	rec := &recorder.RunRecord{
		TickerCount:   len(wl.Tickers),
		IndexCount:    len(wl.Indices),
		QuotesOK:      quotesOK,
		Summarized:    summarized,
		MessageLength: utf8.RuneCountInString(final),
		Delivered:     deliveryErr == nil,
	}
	if deliveryErr != nil {
		rec.DeliveryError = deliveryErr.Error()
	}
	if err := s.Recorder.RecordRun(rec); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}
}

// HandleCommand processes a Telegram command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/digest":
		s.weeklyDigest()
		return ""
	case "/status":
		last, err := s.Recorder.LastRun()
		if err != nil {
			return fmt.Sprintf("status unavailable: %v", err)
		}
		if last == nil {
			return "No digest runs recorded yet."
		}
		return fmt.Sprintf("Last run: %d tickers, %d indices\nquotes ok: %v | summarized: %v\ndelivered: %v (%d chars)",
			last.TickerCount, last.IndexCount, last.QuotesOK, last.Summarized, last.Delivered, last.MessageLength)
	default:
		return "Commands:\n• /digest — send the digest now\n• /status — last run info"
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
