package bot

import (
	"context"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"boomerometro-bot/boomer"
	"boomerometro-bot/db"
)

// defaultCringe is used when /cringeometro has no usable amount.
const defaultCringe = 5

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.Chat == nil {
		return
	}

	// every group message refreshes the group row, so counters always have one
	groupOK := true
	if isGroup(message.Chat) {
		groupOK = b.ensureGroup(ctx, message.Chat)
	}

	if message.IsCommand() {
		b.handleCommand(ctx, message)
		return
	}

	if !isGroup(message.Chat) || message.Text == "" {
		return
	}

	chatID := message.Chat.ID
	if !groupOK {
		b.sendText(chatID, textError)
		return
	}
	count, matched, err := b.tracker.Observe(ctx, chatID, message.Text)
	if err != nil {
		log.Printf("[boomer] chat:%d error:%v", chatID, err)
		b.sendText(chatID, textError)
		return
	}
	if !matched {
		return
	}

	log.Printf("[boomer] chat:%d count:%d", chatID, count)
	b.dispatcher.AnnounceCount(chatID, message.MessageID, count)
}

func (b *Bot) ensureGroup(ctx context.Context, chat *tgbotapi.Chat) bool {
	if err := b.store.UpsertGroup(ctx, chat.ID, chat.Title, chat.InviteLink); err != nil {
		log.Printf("[group] upsert chat:%d error:%v", chat.ID, err)
		return false
	}
	return true
}

func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	if b.addressedElsewhere(message) {
		return
	}

	command := message.Command()
	log.Printf("[command] %s from %d (%s)", command, message.Chat.ID, message.Chat.Title)

	switch command {
	case "start":
		b.handleStart(ctx, message)
	case "aggiungilg":
		b.handleAddTrigger(ctx, message)
	case "contalg":
		b.handleCount(ctx, message)
	case "rimuovilg":
		b.handleListTriggers(ctx, message)
	case "cringeometro":
		b.handleCringe(ctx, message)
	}
}

// addressedElsewhere reports whether the command names another bot, as in /contalg@otherbot.
func (b *Bot) addressedElsewhere(message *tgbotapi.Message) bool {
	if b.username == "" {
		return false
	}
	cmd := message.CommandWithAt()
	i := strings.Index(cmd, "@")
	if i < 0 {
		return false
	}
	return !strings.EqualFold(cmd[i+1:], b.username)
}

func (b *Bot) handleStart(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	stats, err := b.store.Stats(ctx)
	if err != nil {
		log.Printf("[start] chat:%d error:%v", chatID, err)
		b.sendText(chatID, textError)
		return
	}

	b.sendText(chatID, formatStart(stats.TotalBoomers, stats.Groups))
}

func (b *Bot) handleAddTrigger(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	if !isGroup(message.Chat) {
		b.sendNeedGroup(chatID)
		return
	}

	target := message.ReplyToMessage
	if target == nil || target.Text == "" {
		b.sendText(chatID, textAddHint)
		return
	}

	phrase := strings.ToLower(target.Text)
	key := boomer.Normalize(phrase)
	if key == "" {
		b.sendText(chatID, textAddHint)
		return
	}

	if err := b.store.UpsertTrigger(ctx, db.GroupScope(chatID), key, phrase); err != nil {
		log.Printf("[aggiungilg] chat:%d error:%v", chatID, err)
		b.reply(chatID, target.MessageID, textError)
		return
	}

	log.Printf("[aggiungilg] chat:%d key:%s", chatID, key)
	b.reply(chatID, target.MessageID, textAdded)
}

func (b *Bot) handleCount(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	if !isGroup(message.Chat) {
		b.sendNeedGroup(chatID)
		return
	}

	group, ok, err := b.store.GetGroup(ctx, chatID)
	if err != nil {
		log.Printf("[contalg] chat:%d error:%v", chatID, err)
		b.sendText(chatID, textError)
		return
	}
	if !ok || group.BoomerCounter == 0 {
		return
	}

	b.dispatcher.AnnounceCount(chatID, message.MessageID, group.BoomerCounter)
}

func (b *Bot) handleCringe(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	if !isGroup(message.Chat) {
		b.sendNeedGroup(chatID)
		return
	}

	amount := parseCringeAmount(message.CommandArguments())

	score, err := b.store.IncrementCringe(ctx, chatID, amount)
	if err != nil {
		log.Printf("[cringeometro] chat:%d error:%v", chatID, err)
		b.sendText(chatID, textError)
		return
	}

	b.reply(chatID, message.MessageID, formatCringe(score))
}

// parseCringeAmount reads the signed amount after /cringeometro, falling back
// to defaultCringe when it is missing or not an integer.
func parseCringeAmount(args string) int64 {
	args = strings.TrimSpace(args)
	if args == "" {
		return defaultCringe
	}
	n, err := strconv.ParseInt(args, 10, 64)
	if err != nil {
		return defaultCringe
	}
	return n
}
