package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Alishba998/glowchat.github/internal/service"
)

// UploadHandler 處理動態上傳與查詢
type UploadHandler struct {
	uploads *service.UploadService
	stories *service.StoryService
}

// NewUploadHandler 建立上傳處理器
func NewUploadHandler(uploads *service.UploadService, stories *service.StoryService) *UploadHandler {
	return &UploadHandler{uploads: uploads, stories: stories}
}

// Presign 回覆上傳位置，客戶端照 mode 決定用 PUT 還是直傳
func (h *UploadHandler) Presign(c *gin.Context) {
	var req struct {
		Filename    string `json:"filename" binding:"required"`
		ContentType string `json:"content_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無效的請求格式"})
		return
	}

	result, err := h.uploads.Presign(c.Request.Context(), req.Filename)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "簽發上傳網址失敗", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// UploadStory 接收直傳的動態檔案
func (h *UploadHandler) UploadStory(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少上傳檔案"})
		return
	}

	story, err := h.uploads.SaveStory(userID, file)
	if err != nil {
		if errors.Is(err, service.ErrFileTooLarge) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "檔案超過大小上限"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "儲存動態失敗", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"story": story})
}

// Stories 列出尚未過期的動態
func (h *UploadHandler) Stories(c *gin.Context) {
	stories, err := h.stories.Active()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查詢動態失敗", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stories": stories})
}
