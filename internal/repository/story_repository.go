package repository

import (
	"time"

	"github.com/Alishba998/glowchat.github/internal/models"
	"github.com/Alishba998/glowchat.github/internal/storage"
)

type StoryRepository interface {
	Create(story *models.Story) error
	FindActive(now time.Time) ([]models.Story, error)
	DeleteExpired(now time.Time) (int64, error)
}

type storyRepository struct {
	db *storage.Database
}

func NewStoryRepository(db *storage.Database) StoryRepository {
	return &storyRepository{db: db}
}

func (r *storyRepository) Create(story *models.Story) error {
	return r.db.Create(story).Error
}

// FindActive 查詢尚未過期的限時動態，新的在前
func (r *storyRepository) FindActive(now time.Time) ([]models.Story, error) {
	var stories []models.Story
	err := r.db.
		Where("expires_at > ?", now).
		Order("created_at DESC").
		Find(&stories).Error
	return stories, err
}

// DeleteExpired 清掉已過期的限時動態，返回刪除筆數
func (r *storyRepository) DeleteExpired(now time.Time) (int64, error) {
	result := r.db.Where("expires_at <= ?", now).Delete(&models.Story{})
	return result.RowsAffected, result.Error
}
