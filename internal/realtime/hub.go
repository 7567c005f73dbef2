package realtime

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/Alishba998/glowchat.github/internal/auth"
)

var (
	// ErrAlreadyJoined 連線重複發送 join
	ErrAlreadyJoined = errors.New("connection already joined")
	// ErrNotAttached 連線尚未註冊到 Hub
	ErrNotAttached = errors.New("connection not attached")
)

// Conn 是 Hub 管理的連線，測試時可以用假實作替換
type Conn interface {
	ID() string
	Send(data []byte) error
	Close() error
}

// TokenVerifier 驗證 join 附帶的 token
type TokenVerifier interface {
	ParseToken(tokenString string) (*auth.Claims, error)
}

// UserRoom 回傳用戶私人房間名稱
func UserRoom(userID uint) string {
	return fmt.Sprintf("user_%d", userID)
}

// ChatRoom 回傳聊天室房間名稱
func ChatRoom(chatID uint) string {
	return fmt.Sprintf("chat_%d", chatID)
}

// Hub 集中管理所有連線與房間成員
type Hub struct {
	verifier TokenVerifier

	mu    sync.RWMutex
	conns map[string]Conn            // 連線 ID -> 連線
	rooms map[string]map[string]Conn // 房間名稱 -> 成員
	users map[string]uint            // 連線 ID -> 已驗證的用戶 ID
}

// NewHub 建立 Hub
func NewHub(verifier TokenVerifier) *Hub {
	return &Hub{
		verifier: verifier,
		conns:    make(map[string]Conn),
		rooms:    make(map[string]map[string]Conn),
		users:    make(map[string]uint),
	}
}

// Attach 註冊新連線，尚未 join 前只會收到全域廣播
func (h *Hub) Attach(conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn.ID()] = conn
}

// Detach 移除連線與它的所有房間訂閱，可重複呼叫
func (h *Hub) Detach(conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.detachLocked(conn.ID())
}

func (h *Hub) detachLocked(connID string) {
	if _, ok := h.conns[connID]; !ok {
		return
	}
	delete(h.conns, connID)
	delete(h.users, connID)
	for room, members := range h.rooms {
		delete(members, connID)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
}

// Join 驗證 token 並訂閱房間：一定訂閱 user_<id>，chatID 非零時再訂閱 chat_<id>。
// token 無效時回傳 auth.ErrInvalidToken，連線保持開啟
func (h *Hub) Join(conn Conn, token string, chatID uint) error {
	claims, err := h.verifier.ParseToken(token)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.conns[conn.ID()]; !ok {
		return ErrNotAttached
	}
	if _, ok := h.users[conn.ID()]; ok {
		return ErrAlreadyJoined
	}

	h.users[conn.ID()] = claims.UserID
	h.subscribeLocked(conn, UserRoom(claims.UserID))
	if chatID != 0 {
		h.subscribeLocked(conn, ChatRoom(chatID))
	}
	return nil
}

func (h *Hub) subscribeLocked(conn Conn, room string) {
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[string]Conn)
		h.rooms[room] = members
	}
	members[conn.ID()] = conn
}

// BroadcastMessage 把新消息推給聊天室房間的所有成員
func (h *Hub) BroadcastMessage(chatID uint, event MessageEvent) {
	frame, err := encodeEvent(EventMessageNew, event)
	if err != nil {
		log.Printf("encode message event failed: %v", err)
		return
	}
	h.broadcastRoom(ChatRoom(chatID), frame)
}

// RelaySignal 把 signal 載荷原封不動轉發到指定房間。
// 房間不存在時靜默丟棄
func (h *Hub) RelaySignal(to string, payload json.RawMessage) {
	frame, err := json.Marshal(Envelope{Event: EventSignal, Data: payload})
	if err != nil {
		log.Printf("encode signal event failed: %v", err)
		return
	}
	h.broadcastRoom(to, frame)
}

// BroadcastStory 向所有連線廣播新的限時動態
func (h *Hub) BroadcastStory(event StoryEvent) {
	frame, err := encodeEvent(EventStoriesUpdate, event)
	if err != nil {
		log.Printf("encode story event failed: %v", err)
		return
	}

	h.mu.RLock()
	targets := make([]Conn, 0, len(h.conns))
	for _, conn := range h.conns {
		targets = append(targets, conn)
	}
	h.mu.RUnlock()

	h.deliver(targets, frame)
}

// broadcastRoom 先在讀鎖下收集成員，送出時不持鎖
func (h *Hub) broadcastRoom(room string, frame []byte) {
	h.mu.RLock()
	members := h.rooms[room]
	targets := make([]Conn, 0, len(members))
	for _, conn := range members {
		targets = append(targets, conn)
	}
	h.mu.RUnlock()

	h.deliver(targets, frame)
}

// deliver 逐一送出，送不出去的連線直接踢掉
func (h *Hub) deliver(targets []Conn, frame []byte) {
	for _, conn := range targets {
		if err := conn.Send(frame); err != nil {
			log.Printf("drop connection %s: %v", conn.ID(), err)
			h.Detach(conn)
			conn.Close()
		}
	}
}

// RoomSize 回傳房間目前的成員數
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// ConnCount 回傳目前的連線總數
func (h *Hub) ConnCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// CloseAll 關閉所有連線，服務關機時呼叫
func (h *Hub) CloseAll() {
	h.mu.Lock()
	conns := make([]Conn, 0, len(h.conns))
	for _, conn := range h.conns {
		conns = append(conns, conn)
	}
	h.conns = make(map[string]Conn)
	h.rooms = make(map[string]map[string]Conn)
	h.users = make(map[string]uint)
	h.mu.Unlock()

	for _, conn := range conns {
		conn.Close()
	}
}
