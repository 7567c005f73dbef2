package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Alishba998/glowchat.github/internal/service"
)

// ChatHandler 處理聊天室與消息相關的請求
type ChatHandler struct {
	chats *service.ChatService
}

// NewChatHandler 建立聊天處理器
func NewChatHandler(chats *service.ChatService) *ChatHandler {
	return &ChatHandler{chats: chats}
}

// List 列出自己參與的聊天室
func (h *ChatHandler) List(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	chats, err := h.chats.ListChats(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查詢聊天室失敗", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"chats": chats})
}

// Create 建立聊天室，member_ids 可省略，建立者自動加入
func (h *ChatHandler) Create(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var req struct {
		Name      string `json:"name"`
		MemberIDs []uint `json:"member_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無效的請求格式"})
		return
	}

	chat, err := h.chats.CreateChat(userID, req.Name, req.MemberIDs)
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "指定的成員不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "創建聊天室失敗", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"chat": chat})
}

// Messages 取得聊天室的歷史消息，支援 ?limit= 限制筆數
func (h *ChatHandler) Messages(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	chatID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無效的聊天室 ID"})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "無效的筆數限制"})
			return
		}
	}

	messages, err := h.chats.Messages(userID, uint(chatID), limit)
	if err != nil {
		h.renderChatError(c, err, "查詢消息失敗")
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// Send 發送消息到聊天室
func (h *ChatHandler) Send(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	chatID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無效的聊天室 ID"})
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無效的請求格式"})
		return
	}

	message, err := h.chats.SendMessage(userID, uint(chatID), req.Content)
	if err != nil {
		h.renderChatError(c, err, "發送消息失敗")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": message})
}

// renderChatError 把聊天服務的錯誤轉成對應的 HTTP 狀態
func (h *ChatHandler) renderChatError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrChatNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "聊天室不存在"})
	case errors.Is(err, service.ErrNotMember):
		c.JSON(http.StatusForbidden, gin.H{"error": "不是聊天室成員"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback, "details": err.Error()})
	}
}
