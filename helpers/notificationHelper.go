package helpers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var (
	wsClients = make(map[*websocket.Conn]bool)
	wsMu      sync.Mutex
)

// Notification is one event on the live feed.
type Notification struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

// RegisterWebSocket upgrades the connection and keeps it in the hub until
// the client hangs up.
func RegisterWebSocket(w http.ResponseWriter, r *http.Request) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	wsMu.Lock()
	wsClients[conn] = true
	wsMu.Unlock()

	go func() {
		defer conn.Close()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				wsMu.Lock()
				delete(wsClients, conn)
				wsMu.Unlock()
				return
			}
		}
	}()
	return nil
}

// Broadcast pushes one event to every connected client. Best effort, dead
// connections are dropped on write failure.
func Broadcast(event string, payload interface{}) {
	message, err := json.Marshal(Notification{Event: event, Payload: payload})
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("notification marshal failed")
		return
	}

	wsMu.Lock()
	defer wsMu.Unlock()
	for client := range wsClients {
		if err := client.WriteMessage(websocket.TextMessage, message); err != nil {
			client.Close()
			delete(wsClients, client)
		}
	}
}
