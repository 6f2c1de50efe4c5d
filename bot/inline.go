package bot

import (
	"context"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"boomerometro-bot/db"
)

// handleListTriggers shows one remove button per trigger of the group.
// Global triggers are not listed and cannot be removed from a group.
func (b *Bot) handleListTriggers(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	if !isGroup(message.Chat) {
		b.sendNeedGroup(chatID)
		return
	}

	triggers, err := b.store.ListTriggers(ctx, db.GroupScope(chatID))
	if err != nil {
		log.Printf("[rimuovilg] chat:%d error:%v", chatID, err)
		b.sendText(chatID, textError)
		return
	}

	if len(triggers) == 0 {
		b.sendText(chatID, textNoTriggers)
		return
	}

	msg := tgbotapi.NewMessage(chatID, textTriggerList)
	msg.ReplyMarkup = triggerKeyboard(triggers)
	b.send(msg)
}

// triggerKeyboard carries the key hash rather than the key so the payload
// stays within Telegram's 64 byte callback data limit.
func triggerKeyboard(triggers []db.Trigger) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(triggers))
	for _, t := range triggers {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(t.Phrase, removePrefix+db.KeyHash(t.Key)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (b *Bot) handleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	// answer straight away so the client stops the loading spinner
	if _, err := b.api.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		log.Printf("[callback] answer failed: %v", err)
	}

	message := callback.Message
	if message == nil || message.Chat == nil {
		return
	}

	chatID := message.Chat.ID
	if !isGroup(message.Chat) {
		b.sendNeedGroup(chatID)
		return
	}

	hash, ok := strings.CutPrefix(callback.Data, removePrefix)
	if !ok {
		return
	}

	removed, err := b.store.DeleteTriggersByHash(ctx, chatID, hash)
	if err != nil {
		log.Printf("[removelg] chat:%d error:%v", chatID, err)
		b.sendText(chatID, textError)
		return
	}

	log.Printf("[removelg] chat:%d removed:%d", chatID, removed)
	b.sendText(chatID, textRemoved)
}
