package auth

import (
	"log"
)

// CodeSender 負責把驗證碼送到用戶手上。
// 腳手架不接簡訊閘道，預設實現只寫日誌
type CodeSender interface {
	Send(phone, code string) error
}

type LogSender struct{}

func NewLogSender() CodeSender {
	return LogSender{}
}

func (LogSender) Send(phone, code string) error {
	log.Printf("OTP code for %s: %s", phone, code)
	return nil
}
