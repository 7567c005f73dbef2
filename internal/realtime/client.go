package realtime

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// 向對端寫入的時間限制
	writeWait = 10 * time.Second
	// 等待下一個 pong 的時間限制
	pongWait = 60 * time.Second
	// 發送 ping 的週期，必須小於 pongWait
	pingPeriod = (pongWait * 9) / 10
	// 訊息大小上限，訊號交換的 SDP 載荷可能達數 KB
	maxMessageSize = 32 * 1024
	// 出站緩衝長度，寫滿代表對端讀太慢
	sendBufferSize = 256
)

// Client 把 gorilla 連線包裝成 Hub 能管理的 Conn
type Client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

// NewClient 包裝一條升級完成的連線
func NewClient(conn *websocket.Conn) *Client {
	return &Client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, sendBufferSize),
		done: make(chan struct{}),
	}
}

// ID 回傳連線識別碼
func (c *Client) ID() string {
	return c.id
}

// Send 把訊息排入出站緩衝，不阻塞。
// 緩衝滿或連線已關閉時回傳錯誤，由 Hub 決定踢掉連線
func (c *Client) Send(data []byte) error {
	select {
	case <-c.done:
		return errors.New("connection closed")
	case c.send <- data:
		return nil
	default:
		return errors.New("send buffer full")
	}
}

// Close 關閉連線，可重複呼叫
func (c *Client) Close() error {
	c.once.Do(func() {
		close(c.done)
		c.conn.Close()
	})
	return nil
}

// ServeClient 接手升級後的連線並阻塞到連線結束
func ServeClient(hub *Hub, conn *websocket.Conn) {
	client := NewClient(conn)
	hub.Attach(client)

	go client.writePump()
	client.readPump(hub)
}

// readPump 持續讀取入站事件，連線結束時負責清理
func (c *Client) readPump(hub *Hub) {
	defer func() {
		hub.Detach(c)
		c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket read error: %v", err)
			}
			return
		}
		c.handleEvent(hub, raw)
	}
}

// handleEvent 分派入站事件，格式不對就丟棄
func (c *Client) handleEvent(hub *Hub, raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Printf("drop malformed frame from %s: %v", c.id, err)
		return
	}

	switch env.Event {
	case EventJoin:
		var payload JoinPayload
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			log.Printf("drop malformed join from %s: %v", c.id, err)
			return
		}
		// 驗證失敗不回覆任何訊息，連線留著但訂閱不到房間
		if err := hub.Join(c, payload.Token, payload.ChatID); err != nil {
			log.Printf("join rejected for %s: %v", c.id, err)
		}
	case EventSignal:
		var payload SignalPayload
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			log.Printf("drop malformed signal from %s: %v", c.id, err)
			return
		}
		// 載荷原封不動轉發，這裡只讀 to 決定去向
		hub.RelaySignal(payload.To, env.Data)
	default:
		log.Printf("unknown event %q from %s", env.Event, c.id)
	}
}

// writePump 負責所有出站寫入與心跳
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
