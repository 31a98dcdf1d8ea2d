package service

import (
	"context"
	"cyberlearn_backend/pkg/logger"
	"cyberlearn_backend/pkg/monitoring"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var ErrWSUpgrade = errors.New("websocket upgrade failed")

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192
	sendBuffer     = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSReply is the frame sent back for every inbound chat message.
type WSReply struct {
	AIResponse string `json:"ai_response,omitempty"`
	MessageID  string `json:"message_id,omitempty"`
	Error      string `json:"error,omitempty"`
}

type wsInbound struct {
	Message string `json:"message"`
}

type Client struct {
	Hub       *ChatHub
	Conn      *websocket.Conn
	Send      chan []byte
	SessionID string
	Limiter   *rate.Limiter
}

// ChatHub serves websocket tutoring connections, one learning session per
// connection.
type ChatHub struct {
	Chat *ChatService

	mu      sync.Mutex
	clients map[*Client]struct{}
}

func NewChatHub(chat *ChatService) *ChatHub {
	return &ChatHub{Chat: chat, clients: make(map[*Client]struct{})}
}

func (h *ChatHub) register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	monitoring.ChatConnections.Inc()
}

func (h *ChatHub) unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.Send)
		monitoring.ChatConnections.Dec()
	}
	h.mu.Unlock()
}

// Connections reports the number of open websocket clients.
func (h *ChatHub) Connections() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Stop closes every open connection. Each read loop then unregisters its
// client.
func (h *ChatHub) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	deadline := time.Now().Add(writeWait)
	for c := range h.clients {
		c.Conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"), deadline)
		c.Conn.Close()
	}
}

// parseInbound accepts either a bare text frame or {"message": "..."}.
func parseInbound(frame []byte) string {
	text := strings.TrimSpace(string(frame))
	if strings.HasPrefix(text, "{") {
		var in wsInbound
		if err := json.Unmarshal(frame, &in); err == nil {
			return in.Message
		}
	}
	return text
}

func (c *Client) reply(r WSReply) {
	data, err := json.Marshal(r)
	if err != nil {
		return
	}
	select {
	case c.Send <- data:
	default:
		logger.Log.Warn("WebSocket send buffer full, dropping reply", zap.String("sessionID", c.SessionID))
	}
}

func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister(c)
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error { c.Conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })
	for {
		_, frame, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.Error("WebSocket unexpected close", zap.Error(err), zap.String("sessionID", c.SessionID))
			}
			break
		}

		if !c.Limiter.Allow() {
			c.reply(WSReply{Error: "rate limit exceeded"})
			continue
		}

		res, err := c.Hub.Chat.Ask(context.Background(), c.SessionID, parseInbound(frame))
		if err != nil {
			c.reply(WSReply{Error: err.Error()})
		} else {
			c.reply(WSReply{AIResponse: res.AIResponse, MessageID: res.MessageID})
		}
		// generation may outlast the pong window
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ServeWs upgrades the request and tutors the given session until the peer
// disconnects. The session must exist.
func ServeWs(hub *ChatHub, w http.ResponseWriter, r *http.Request, sessionID string) error {
	if _, err := hub.Chat.Sessions.FindByID(r.Context(), sessionID); err != nil {
		return err
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already replied to the client
		return fmt.Errorf("%w: %v", ErrWSUpgrade, err)
	}
	client := &Client{
		Hub:       hub,
		Conn:      conn,
		Send:      make(chan []byte, sendBuffer),
		SessionID: sessionID,
		Limiter:   rate.NewLimiter(rate.Limit(1), 5),
	}
	hub.register(client)

	go client.writePump()
	go client.readPump()
	return nil
}
