package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Alishba998/glowchat.github/internal/models"
	"github.com/Alishba998/glowchat.github/internal/storage"
)

type ChatRepository interface {
	Create(chat *models.Chat, memberIDs []uint) error
	FindByID(id uint) (*models.Chat, error)
	FindByUser(userID uint) ([]models.Chat, error)
	IsMember(chatID, userID uint) (bool, error)
}

type chatRepository struct {
	db *storage.Database
}

func NewChatRepository(db *storage.Database) ChatRepository {
	return &chatRepository{db: db}
}

// Create 在同一個事務內建立聊天室與全部成員關係，
// 任何一筆寫入失敗都會回滾
func (r *chatRepository) Create(chat *models.Chat, memberIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(chat).Error; err != nil {
			return err
		}
		for _, userID := range memberIDs {
			member := models.ChatMember{ChatID: chat.ID, UserID: userID}
			if err := tx.Create(&member).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *chatRepository) FindByID(id uint) (*models.Chat, error) {
	var chat models.Chat
	err := r.db.First(&chat, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &chat, nil
}

// FindByUser 查詢用戶加入的所有聊天室，新的在前
func (r *chatRepository) FindByUser(userID uint) ([]models.Chat, error) {
	var chats []models.Chat
	err := r.db.
		Joins("JOIN chat_members ON chat_members.chat_id = chats.id").
		Where("chat_members.user_id = ?", userID).
		Order("chats.created_at DESC").
		Find(&chats).Error
	return chats, err
}

func (r *chatRepository) IsMember(chatID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.ChatMember{}).
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
