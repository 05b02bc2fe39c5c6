package progress

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client - 단일 웹소켓 구독자
type Client struct {
	hub          *Hub
	generationID string
	conn         *websocket.Conn
	send         chan []byte
}

// Hub - 생성 작업 진행상황 브로드캐스트 허브 (generation id 단위 구독)
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]bool
}

// NewHub - 허브 생성
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]map[*Client]bool),
	}
}

// register - 구독자 등록
func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[c.generationID] == nil {
		h.clients[c.generationID] = make(map[*Client]bool)
	}
	h.clients[c.generationID][c] = true
	log.Printf("🔌 [Progress] 구독 시작: generation=%s (구독자 %d명)", c.generationID, len(h.clients[c.generationID]))
}

// unregister - 구독자 해제
func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subscribers, ok := h.clients[c.generationID]
	if !ok {
		return
	}
	if _, ok := subscribers[c]; ok {
		delete(subscribers, c)
		close(c.send)
		if len(subscribers) == 0 {
			delete(h.clients, c.generationID)
		}
	}
}

// Broadcast - 해당 generation 구독자 전원에게 JSON 전송
func (h *Hub) Broadcast(generationID string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("❌ [Progress] 브로드캐스트 직렬화 실패: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients[generationID] {
		select {
		case client.send <- data:
		default:
			// 밀린 클라이언트는 건너뜀
		}
	}
}

// SubscriberCount - 구독자 수 조회
func (h *Hub) SubscriberCount(generationID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[generationID])
}

// HandleWebSocket - GET /ws/generations?id= 업그레이드 처리
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	generationID := r.URL.Query().Get("id")
	if generationID == "" {
		http.Error(w, "generation id is required", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("❌ [Progress] 웹소켓 업그레이드 실패: %v", err)
		return
	}

	client := &Client{
		hub:          h,
		generationID: generationID,
		conn:         conn,
		send:         make(chan []byte, 16),
	}
	h.register(client)

	go client.writePump()
	go client.readPump()
}

// readPump - 클라이언트 수신 루프 (연결 유지 감시용)
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

// writePump - 클라이언트 송신 루프
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
