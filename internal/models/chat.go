package models

import (
	"gorm.io/gorm"
)

// Chat 表示一個聊天室，可以是兩人私聊或多人群組
type Chat struct {
	gorm.Model
	Name      string `gorm:"type:varchar(120)" json:"name"` // 群組名稱，私聊可為空
	CreatorID uint   `json:"creator_id"`                    // 建立者的用戶 ID
}

// ChatMember 表示用戶與聊天室之間的成員關係
type ChatMember struct {
	gorm.Model
	ChatID uint `gorm:"uniqueIndex:idx_chat_member" json:"chat_id"`
	UserID uint `gorm:"uniqueIndex:idx_chat_member" json:"user_id"`
}
