package initializers

import (
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var (
	TelegramBot    *tgbotapi.BotAPI
	TelegramChatID int64
)

// ConnectTelegram wires the moderation alert channel. Optional: without a
// token the alerts are skipped.
func ConnectTelegram(config *Config) {
	if config.TelegramBotToken == "" {
		log.Println("Telegram token not set, moderation alerts disabled")
		return
	}

	bot, err := tgbotapi.NewBotAPI(config.TelegramBotToken)
	if err != nil {
		log.Println("Failed to connect telegram bot: ", err)
		return
	}

	TelegramBot = bot
	TelegramChatID = config.TelegramChatID
	log.Println("Telegram bot connected")
}
