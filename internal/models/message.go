package models

import (
	"time"

	"gorm.io/gorm"
)

// Message 代表一條已持久化的聊天消息
type Message struct {
	gorm.Model
	ChatID   uint   `gorm:"index;not null" json:"chat_id"`
	SenderID uint   `gorm:"index;not null" json:"sender_id"`
	Content  string `gorm:"type:text;not null" json:"content"`
}

// MessageWithSender 是帶上發送者名稱的消息查詢結果，
// 供歷史消息接口與即時推送使用同一種結構
type MessageWithSender struct {
	ID         uint      `json:"id"`
	ChatID     uint      `json:"chat_id"`
	SenderID   uint      `json:"sender_id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	SenderName string    `json:"sender_name"`
}
