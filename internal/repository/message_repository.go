package repository

import (
	"github.com/Alishba998/glowchat.github/internal/models"
	"github.com/Alishba998/glowchat.github/internal/storage"
)

type MessageRepository interface {
	Create(message *models.Message) error
	FindByChatID(chatID uint, limit int) ([]models.MessageWithSender, error)
}

type messageRepository struct {
	db *storage.Database
}

func NewMessageRepository(db *storage.Database) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

// FindByChatID 查詢聊天室的歷史消息，帶上發送者名稱，回傳按時間升序。
// limit 大於 0 時取最新的 limit 筆，次序仍然是升序
func (r *messageRepository) FindByChatID(chatID uint, limit int) ([]models.MessageWithSender, error) {
	rows := []models.MessageWithSender{}
	query := r.db.Model(&models.Message{}).
		Select("messages.id, messages.chat_id, messages.sender_id, messages.content, messages.created_at, users.name AS sender_name").
		Joins("JOIN users ON users.id = messages.sender_id").
		Where("messages.chat_id = ?", chatID).
		Order("messages.created_at DESC, messages.id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	// 查詢取最新的在前，翻回時間升序再回傳
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows, nil
}
