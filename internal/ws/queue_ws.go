package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 256
)

// Типы событий очереди.
const (
	EventPatientJoined        = "patient_joined"
	EventPatientLeft          = "patient_left"
	EventConsultationStarted  = "consultation_started"
	EventConsultationFinished = "consultation_finished"
	EventEntryCancelled       = "entry_cancelled"
	EventQueueClosed          = "queue_closed"
)

// WSMessage событие, которое получают подписчики очереди клиники.
type WSMessage struct {
	EventType string      `json:"event_type"`
	ClinicID  string      `json:"clinic_id"`
	Data      interface{} `json:"data,omitempty"`
}

// BroadcastMessage представляет сообщение для рассылки подписчикам одной клиники.
type BroadcastMessage struct {
	ClinicID string
	Message  []byte
}

// Hub хранит подключения клиентов, сгруппированные по clinicID.
type Hub struct {
	clients    map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan BroadcastMessage
	done       chan struct{}
	mu         sync.RWMutex
	log        *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan BroadcastMessage, sendBuffer),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Run обрабатывает каналы хаба до отмены ctx, затем закрывает все подключения.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for clinicID, clients := range h.clients {
				for client := range clients {
					close(client.Send)
				}
				delete(h.clients, clinicID)
			}
			h.mu.Unlock()
			return
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.ClinicID] == nil {
				h.clients[client.ClinicID] = make(map[*Client]bool)
			}
			h.clients[client.ClinicID][client] = true
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			h.remove(client)
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients[message.ClinicID] {
				select {
				case client.Send <- message.Message:
				default:
					// Медленный клиент, отключаем
					h.remove(client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// remove вызывается под h.mu.
func (h *Hub) remove(client *Client) {
	clients, ok := h.clients[client.ClinicID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.Send)
	if len(clients) == 0 {
		delete(h.clients, client.ClinicID)
	}
}

// Subscribers возвращает число подключений к очереди клиники.
func (h *Hub) Subscribers(clinicID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[clinicID])
}

// BroadcastWSMessage ставит событие в очередь рассылки. Не блокирует вызывающего:
// при переполненном буфере событие теряется, клиенты всё равно могут опросить API.
func (h *Hub) BroadcastWSMessage(msg WSMessage) {
	raw, err := json.Marshal(msg)
	if err != nil {
		h.log.Error("failed to encode ws message", zap.String("event_type", msg.EventType), zap.Error(err))
		return
	}
	select {
	case h.broadcast <- BroadcastMessage{ClinicID: msg.ClinicID, Message: raw}:
	default:
		h.log.Warn("ws broadcast buffer is full, event dropped",
			zap.String("event_type", msg.EventType), zap.String("clinic_id", msg.ClinicID))
	}
}

// Client представляет одно подключение через WebSocket.
type Client struct {
	Hub      *Hub
	Conn     *websocket.Conn
	Send     chan []byte
	ClinicID string
}

// readPump только отслеживает разрыв соединения, входящие сообщения игнорируются.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.Hub.unregister <- c:
		case <-c.Hub.done:
		}
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(512)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.Hub.log.Debug("ws read failed", zap.String("clinic_id", c.ClinicID), zap.Error(err))
			}
			return
		}
	}
}

// writePump отправляет сообщения клиенту из канала Send.
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

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// QueueWebSocketHandler обновляет соединение до WebSocket и подписывает клиента
// на события очереди клиники.
// @Summary		Поток событий очереди
// @Description	WebSocket: patient_joined, patient_left, consultation_started, consultation_finished, entry_cancelled, queue_closed
// @Tags			queue
// @Param			clinicId	path	string	true	"ID клиники"
// @Success		101
// @Router			/api/queues/{clinicId}/ws [get]
func (h *Hub) QueueWebSocketHandler(c *gin.Context) {
	clinicID := c.Param("clinicId")
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade уже записал ответ с ошибкой
		h.log.Debug("ws upgrade failed", zap.Error(err))
		return
	}
	client := &Client{
		Hub:      h,
		Conn:     conn,
		Send:     make(chan []byte, sendBuffer),
		ClinicID: clinicID,
	}
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	client.readPump()
}
