package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Alishba998/glowchat.github/internal/models"
	"github.com/Alishba998/glowchat.github/internal/realtime"
	"github.com/Alishba998/glowchat.github/internal/repository"
	"github.com/Alishba998/glowchat.github/pkg/config"
)

// ErrFileTooLarge 上傳檔案超過大小上限
var ErrFileTooLarge = errors.New("file too large")

// DirectUploadPath 是 local 模式下的直傳端點
const DirectUploadPath = "/api/uploads/stories"

// PresignResult 告訴客戶端要把檔案傳到哪裡
type PresignResult struct {
	Mode      string    `json:"mode"`
	URL       string    `json:"url"`
	Method    string    `json:"method"`
	Key       string    `json:"key,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// UploadService 處理動態檔案上傳：s3 模式簽發上傳網址，local 模式直接收檔
type UploadService struct {
	stories     repository.StoryRepository
	broadcaster Broadcaster
	presigner   Presigner

	mode     string
	dir      string
	maxSize  int64
	urlTTL   time.Duration
	storyTTL time.Duration
}

// NewUploadService 建立上傳服務
func NewUploadService(stories repository.StoryRepository, broadcaster Broadcaster, presigner Presigner, uploadCfg config.UploadConfig, storiesCfg config.StoriesConfig) *UploadService {
	return &UploadService{
		stories:     stories,
		broadcaster: broadcaster,
		presigner:   presigner,
		mode:        uploadCfg.Mode,
		dir:         uploadCfg.Dir,
		maxSize:     int64(uploadCfg.MaxSizeMB) * 1024 * 1024,
		urlTTL:      time.Duration(uploadCfg.S3.URLTTLMinutes) * time.Minute,
		storyTTL:    time.Duration(storiesCfg.TTLHours) * time.Hour,
	}
}

// Presign 回覆上傳位置。s3 模式回簽名過的 PUT 網址，否則指向直傳端點
func (s *UploadService) Presign(ctx context.Context, filename string) (*PresignResult, error) {
	if s.mode != "s3" || s.presigner == nil {
		return &PresignResult{
			Mode:   "local",
			URL:    DirectUploadPath,
			Method: http.MethodPost,
		}, nil
	}

	key := "stories/" + uuid.NewString() + strings.ToLower(filepath.Ext(filename))
	url, err := s.presigner.PresignPut(ctx, key, s.urlTTL)
	if err != nil {
		return nil, fmt.Errorf("presign upload: %w", err)
	}
	return &PresignResult{
		Mode:      "s3",
		URL:       url,
		Method:    http.MethodPut,
		Key:       key,
		ExpiresAt: time.Now().Add(s.urlTTL),
	}, nil
}

// SaveStory 接收直傳檔案：落地、寫入動態列，落庫成功後才全域廣播。
// 檔名一律換成 uuid，避免信任客戶端給的名字
func (s *UploadService) SaveStory(uploaderID uint, header *multipart.FileHeader) (*StoryView, error) {
	if header.Size > s.maxSize {
		return nil, ErrFileTooLarge
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	filename := uuid.NewString() + strings.ToLower(filepath.Ext(header.Filename))
	dst, err := os.Create(filepath.Join(s.dir, filename))
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return nil, fmt.Errorf("write file: %w", err)
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	story := &models.Story{
		UploaderID:  uploaderID,
		Filename:    filename,
		ContentType: contentType,
		Size:        header.Size,
		ExpiresAt:   time.Now().Add(s.storyTTL),
	}
	if err := s.stories.Create(story); err != nil {
		return nil, fmt.Errorf("create story: %w", err)
	}

	s.broadcaster.BroadcastStory(realtime.StoryEvent{
		UploaderID: story.UploaderID,
		Filename:   story.Filename,
		CreatedAt:  story.CreatedAt,
		Expires:    story.ExpiresAt,
	})

	return &StoryView{
		ID:         story.ID,
		UploaderID: story.UploaderID,
		Filename:   story.Filename,
		URL:        storyURL(story.Filename),
		CreatedAt:  story.CreatedAt,
		Expires:    story.ExpiresAt,
	}, nil
}
