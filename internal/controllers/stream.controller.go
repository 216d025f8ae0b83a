package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"pitwall/internal/middleware"
	"pitwall/internal/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS policy is enforced by the middleware chain; the upgrade
		// itself accepts any origin.
		return true
	},
}

// StreamController upgrades /ws connections and runs their pumps.
// When auth is nil the stream is open; otherwise a valid token query
// parameter is required before the upgrade.
type StreamController struct {
	hub       *services.Hub
	auth      *services.AuthService
	seclog    *middleware.SecurityLogger
	validator *middleware.InputValidator
}

func NewStreamController(hub *services.Hub, auth *services.AuthService, seclog *middleware.SecurityLogger) *StreamController {
	return &StreamController{
		hub:       hub,
		auth:      auth,
		seclog:    seclog,
		validator: middleware.NewInputValidator(),
	}
}

// HandleWebSocket handles incoming WebSocket connections.
func (wc *StreamController) HandleWebSocket(c *gin.Context) {
	clientName := "anonymous"

	if wc.auth != nil {
		token := c.Query("token")
		if token == "" {
			wc.seclog.LogFailedAuth(c.ClientIP(), "missing token")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}
		if !wc.validator.ValidateToken(token) {
			wc.seclog.LogFailedAuth(c.ClientIP(), "malformed token")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "malformed token"})
			return
		}

		claims, err := wc.auth.ValidateToken(token)
		if err != nil {
			wc.seclog.LogFailedAuth(c.ClientIP(), "invalid token: "+err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		clientName = claims.ClientName
		wc.seclog.LogStreamConnected(c.ClientIP(), clientName)
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[ws] upgrade error: %v", err)
		return
	}

	// RemoteAddr keeps the ID unique even when one host opens
	// several streams.
	client := &services.ClientConnection{
		ID:    c.Request.RemoteAddr + "-" + clientName,
		Conn:  ws,
		Send:  make(chan services.StreamMessage, 256),
		Close: make(chan bool),
	}

	wc.hub.Register(client)

	go wc.readPump(client)
	go writePump(client)
}

// readPump reads control messages from the WebSocket client.
func (wc *StreamController) readPump(client *services.ClientConnection) {
	defer func() {
		wc.hub.Unregister(client.ID)
		client.Conn.Close()
	}()

	client.Conn.SetPongHandler(func(string) error {
		return nil
	})

	for {
		var msg services.StreamMessage
		err := client.Conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[ws] read error: %v", err)
			}
			return
		}

		switch msg.Type {
		case "auth":
			// Re-authentication over an established stream.
			if wc.auth == nil || msg.Token == "" {
				continue
			}
			claims, err := wc.auth.ValidateToken(msg.Token)
			if err != nil {
				wc.seclog.LogFailedAuth(client.ID, "stream auth message: "+err.Error())
				select {
				case client.Send <- services.StreamMessage{
					Type:  "auth_error",
					Error: "invalid token",
				}:
				case <-client.Close:
					return
				}
			} else {
				select {
				case client.Send <- services.StreamMessage{
					Type: "auth_success",
					Data: map[string]interface{}{"client": claims.ClientName},
				}:
				case <-client.Close:
					return
				}
			}

		case "ping":
			select {
			case client.Send <- services.StreamMessage{Type: "pong"}:
			case <-client.Close:
				return
			default:
				return
			}

		case "subscribe":
			// Already subscribed; snapshots flow on the hub ticker.
			log.Printf("[ws] client %s subscribed to updates", client.ID)

		case "unsubscribe":
			return

		default:
			log.Printf("[ws] unknown message type: %s", msg.Type)
		}
	}
}

// writePump writes messages to the WebSocket client.
func writePump(client *services.ClientConnection) {
	defer func() {
		client.Conn.Close()
	}()

	for {
		select {
		case msg, ok := <-client.Send:
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			err := client.Conn.WriteJSON(msg)
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Printf("[ws] write error: %v", err)
				}
				return
			}

		case <-client.Close:
			client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}
