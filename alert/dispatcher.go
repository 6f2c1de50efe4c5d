package alert

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// NiceCount earns the group an extra message.
const NiceCount = 69

const niceText = "Nice 😏"

// Sender delivers messages to Telegram. *tgbotapi.BotAPI satisfies it.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Dispatcher struct {
	sender Sender
}

func NewDispatcher(sender Sender) *Dispatcher {
	return &Dispatcher{sender: sender}
}

// FormatCount is the boomer counter announcement.
func FormatCount(count int64) string {
	return fmt.Sprintf("Il boomerometro ha contato %d luoghi comuni in questo gruppo", count)
}

// AnnounceCount replies to replyTo with the group's boomer count, followed by
// one extra message when the count is NiceCount. Send failures are logged;
// the extra message is skipped when the reply could not be sent.
func (d *Dispatcher) AnnounceCount(chatID int64, replyTo int, count int64) {
	msg := tgbotapi.NewMessage(chatID, FormatCount(count))
	msg.ReplyToMessageID = replyTo
	if _, err := d.sender.Send(msg); err != nil {
		log.Printf("[send failed] chat:%d error:%v", chatID, err)
		return
	}

	if count == NiceCount {
		if _, err := d.sender.Send(tgbotapi.NewMessage(chatID, niceText)); err != nil {
			log.Printf("[send failed] chat:%d error:%v", chatID, err)
		}
	}
}
