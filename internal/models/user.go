package models

import (
	"gorm.io/gorm"
)

// User 表示系統中的用戶
type User struct {
	gorm.Model        // 內嵌 gorm.Model，提供 ID、CreatedAt、UpdatedAt 和 DeletedAt 字段
	Phone      string `gorm:"uniqueIndex;not null" json:"phone"` // 手機號碼，必須唯一，同時作為登入帳號
	Name       string `gorm:"not null" json:"name"`              // 顯示名稱
	Password   string `json:"-"`                                 // 密碼雜湊，OTP 註冊的用戶可能為空，json 序列化時會被忽略
}
