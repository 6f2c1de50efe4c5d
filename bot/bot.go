package bot

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"boomerometro-bot/alert"
	"boomerometro-bot/boomer"
	"boomerometro-bot/db"
)

// Sender is the part of the Telegram client the bot uses. *tgbotapi.BotAPI satisfies it.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Store is the persistence the handlers need. *db.Store satisfies it.
type Store interface {
	boomer.CounterStore

	UpsertGroup(ctx context.Context, groupID int64, name, link string) error
	GetGroup(ctx context.Context, groupID int64) (db.Group, bool, error)
	IncrementCringe(ctx context.Context, groupID int64, delta int64) (int64, error)
	Stats(ctx context.Context) (db.Stats, error)

	UpsertTrigger(ctx context.Context, scope db.Scope, key, phrase string) error
	ListTriggers(ctx context.Context, scope db.Scope) ([]db.Trigger, error)
	DeleteTriggersByHash(ctx context.Context, groupID int64, hash string) (int64, error)
}

// Bot routes updates to handlers. It keeps no state between updates and is
// safe to share between workers.
type Bot struct {
	api        Sender
	store      Store
	tracker    *boomer.Tracker
	dispatcher *alert.Dispatcher

	// username of the bot, without @; commands addressed to other bots are ignored
	username string
}

func New(api Sender, store Store, username string) *Bot {
	return &Bot{
		api:        api,
		store:      store,
		tracker:    boomer.NewTracker(store),
		dispatcher: alert.NewDispatcher(api),
		username:   username,
	}
}

var commands = []tgbotapi.BotCommand{
	{Command: "start", Description: "Statistiche del boomerometro"},
	{Command: "contalg", Description: "Quanti luoghi comuni ha contato il gruppo"},
	{Command: "aggiungilg", Description: "Aggiungi la frase a cui rispondi"},
	{Command: "rimuovilg", Description: "Rimuovi una frase personalizzata"},
	{Command: "cringeometro", Description: "Aggiorna il cringeometro (default +5)"},
}

// Register publishes the command menu and points Telegram at webhookURL.
func Register(api Sender, webhookURL string) error {
	if _, err := api.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		// the bot still works without a menu
		log.Printf("[register] command menu failed: %v", err)
	} else {
		log.Println("[register] command menu set")
	}

	wh, err := tgbotapi.NewWebhook(webhookURL)
	if err != nil {
		return fmt.Errorf("webhook url: %w", err)
	}
	if _, err = api.Request(wh); err != nil {
		return fmt.Errorf("set webhook: %w", err)
	}
	return nil
}

// HandleUpdate processes one update to completion. Failures are reported to
// the chat and logged, never returned.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message != nil {
		b.handleMessage(ctx, update.Message)
		return
	}

	if update.CallbackQuery != nil {
		b.handleCallback(ctx, update.CallbackQuery)
		return
	}
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		log.Printf("[send failed] error:%v", err)
	}
}
