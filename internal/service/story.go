package service

import (
	"fmt"
	"time"

	"github.com/Alishba998/glowchat.github/internal/repository"
)

// StoryView 是限時動態的對外表示，URL 指向本地靜態檔案
type StoryView struct {
	ID         uint      `json:"id"`
	UploaderID uint      `json:"uploader_id"`
	Filename   string    `json:"filename"`
	URL        string    `json:"url"`
	CreatedAt  time.Time `json:"created_at"`
	Expires    time.Time `json:"expires"`
}

// StoryService 提供限時動態查詢與清理
type StoryService struct {
	stories repository.StoryRepository
}

// NewStoryService 建立動態服務
func NewStoryService(stories repository.StoryRepository) *StoryService {
	return &StoryService{stories: stories}
}

// Active 列出尚未過期的動態，新的在前
func (s *StoryService) Active() ([]StoryView, error) {
	rows, err := s.stories.FindActive(time.Now())
	if err != nil {
		return nil, fmt.Errorf("load stories: %w", err)
	}

	views := make([]StoryView, 0, len(rows))
	for _, st := range rows {
		views = append(views, StoryView{
			ID:         st.ID,
			UploaderID: st.UploaderID,
			Filename:   st.Filename,
			URL:        storyURL(st.Filename),
			CreatedAt:  st.CreatedAt,
			Expires:    st.ExpiresAt,
		})
	}
	return views, nil
}

// PurgeExpired 刪除已過期的動態列，回傳刪除筆數
func (s *StoryService) PurgeExpired() (int64, error) {
	n, err := s.stories.DeleteExpired(time.Now())
	if err != nil {
		return 0, fmt.Errorf("purge stories: %w", err)
	}
	return n, nil
}

func storyURL(filename string) string {
	return "/uploads/" + filename
}
