package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	textNeedGroup   = "Per usare questo bot devi essere in un gruppo!"
	textError       = "Ops, si è verificato un errore :("
	textAddHint     = "Rispondi alla frase da aggiungere con il comando /aggiungilg"
	textAdded       = "Aggiunto all'elenco!"
	textNoTriggers  = "Non ci sono frasi personalizzate per questo gruppo, puoi aggiungerle usando il comando /aggiungilg"
	textTriggerList = "Ecco i luoghi comuni che puoi rimuovere"
	textRemoved     = "Frase rimossa dall'elenco del tuo gruppo"
)

// removePrefix starts the callback data of a remove button; the rest is the key hash.
const removePrefix = "/removelg "

func formatStart(totalBoomers, groups int64) string {
	return fmt.Sprintf("Aggiungi questo bot a un gruppo per contare i luoghi comuni da boomer "+
		"(contati per ora %d luoghi comuni in %d gruppi). Creato da @LucaMartinelli09", totalBoomers, groups)
}

func formatCringe(score int64) string {
	return fmt.Sprintf("Il cringeometro segna %d punti!", score)
}

func isGroup(chat *tgbotapi.Chat) bool {
	return chat != nil && (chat.Type == "group" || chat.Type == "supergroup")
}

func (b *Bot) sendText(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) reply(chatID int64, replyTo int, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyToMessageID = replyTo
	b.send(msg)
}

func (b *Bot) sendNeedGroup(chatID int64) {
	b.sendText(chatID, textNeedGroup)
}
