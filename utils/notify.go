package utils

import (
	"fmt"
	"log"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gofiber/websocket/v2"

	"shopcore/initializers"
)

// hub keeps one live websocket per user id.
var hub = struct {
	sync.RWMutex
	conns map[string]*websocket.Conn
}{conns: make(map[string]*websocket.Conn)}

// RegisterClient binds a websocket connection to a user id, replacing any
// previous connection for that user.
func RegisterClient(userID string, conn *websocket.Conn) {
	hub.Lock()
	defer hub.Unlock()
	if old, ok := hub.conns[userID]; ok {
		old.Close()
	}
	hub.conns[userID] = conn
}

func UnregisterClient(userID string) {
	hub.Lock()
	defer hub.Unlock()
	delete(hub.conns, userID)
}

// SendPersonalMessageToClient pushes a text frame to the given user's socket
// if one is connected. Offline users just miss the push; the event stream on
// the broker is the durable channel.
func SendPersonalMessageToClient(userID string, message string) error {
	hub.RLock()
	conn, ok := hub.conns[userID]
	hub.RUnlock()
	if !ok {
		return fmt.Errorf("no active connection for user %s", userID)
	}
	return conn.WriteMessage(websocket.TextMessage, []byte(message))
}

// SendModerationAlert posts a moderation action into the admin telegram chat.
func SendModerationAlert(text string) {
	if initializers.TelegramBot == nil {
		return
	}
	msg := tgbotapi.NewMessage(initializers.TelegramChatID, text)
	if _, err := initializers.TelegramBot.Send(msg); err != nil {
		log.Println("Failed to send telegram alert: ", err)
	}
}
