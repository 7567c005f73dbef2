package realtime

import (
	"encoding/json"
	"time"
)

// 即時通道上的事件名稱
const (
	EventJoin          = "join"           // 入站：驗證並訂閱房間
	EventSignal        = "signal"         // 雙向：點對點協商用的不透明載荷
	EventMessageNew    = "message:new"    // 出站：新消息已寫入
	EventStoriesUpdate = "stories:update" // 出站：有新的限時動態
)

// Envelope 是即時通道上所有事件的外層結構
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// JoinPayload 是 join 事件的載荷。
// chat_id 可省略，省略時只訂閱用戶自己的房間
type JoinPayload struct {
	Token  string `json:"token"`
	ChatID uint   `json:"chat_id"`
}

// SignalPayload 是 signal 事件的載荷。
// 只有 to 會被讀取，其餘內容原封不動轉發
type SignalPayload struct {
	To   string          `json:"to"`
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// MessageEvent 是 message:new 事件的載荷，客戶端按這個結構渲染新消息
type MessageEvent struct {
	ID         uint      `json:"id"`
	ChatID     uint      `json:"chat_id"`
	SenderID   uint      `json:"sender_id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	SenderName string    `json:"sender_name"`
}

// StoryEvent 是 stories:update 事件的載荷
type StoryEvent struct {
	UploaderID uint      `json:"uploader_id"`
	Filename   string    `json:"filename"`
	CreatedAt  time.Time `json:"created_at"`
	Expires    time.Time `json:"expires"`
}

// encodeEvent 把事件編碼成線上傳輸的位元組
func encodeEvent(event string, data interface{}) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: event, Data: raw})
}
