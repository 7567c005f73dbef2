package models

import (
	"time"

	"gorm.io/gorm"
)

// Story 表示一個限時動態上傳，到期後不再出現在列表中
type Story struct {
	gorm.Model
	UploaderID  uint      `gorm:"index;not null" json:"uploader_id"`
	Filename    string    `gorm:"not null" json:"filename"` // 存儲在上傳目錄下的檔案名
	ContentType string    `gorm:"type:varchar(100)" json:"content_type"`
	Size        int64     `json:"size"`
	ExpiresAt   time.Time `gorm:"index" json:"expires_at"`
}
