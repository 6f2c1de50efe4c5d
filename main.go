package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"boomerometro-bot/bot"
	"boomerometro-bot/config"
	"boomerometro-bot/db"
	"boomerometro-bot/webhook"
)

func main() {
	log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	log.Println("Boomerometro starting...")
	log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	log.Println("✓ config loaded")

	store, err := db.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}
	defer store.Close()
	log.Println("✓ database ready")

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatalf("bot init failed: %v", err)
	}
	api.Debug = cfg.BotDebug
	log.Printf("✓ authorized as @%s (ID:%d)", api.Self.UserName, api.Self.ID)

	if err = bot.Register(api, cfg.WebhookURL()); err != nil {
		log.Fatalf("webhook registration failed: %v", err)
	}
	log.Println("✓ webhook registered")

	var dedupe webhook.Deduper
	if cfg.RedisURL != "" {
		rd, err := webhook.NewRedisDeduper(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("redis init failed: %v", err)
		}
		defer rd.Close()
		dedupe = rd
		log.Println("✓ update de-duplication enabled")
	}

	b := bot.New(api, store, api.Self.UserName)

	// updates in flight finish even after a shutdown signal
	server := webhook.NewServer(b, cfg.WebhookPath(), cfg.Workers, dedupe)
	server.Start(context.Background())

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listener failed: %v", err)
		}
	}()

	log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	log.Printf("✅ listening on :%d (%d workers)", cfg.Port, cfg.Workers)
	log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	<-ctx.Done()

	log.Println("shutdown signal received, closing...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown: %v", err)
	}
	server.Stop()
	log.Println("bye!")
}
