package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Alishba998/glowchat.github/internal/service"
)

// AuthHandler 處理註冊、登入與驗證碼相關的請求
type AuthHandler struct {
	users *service.UserService
}

// NewAuthHandler 建立認證處理器
func NewAuthHandler(users *service.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

// Register 處理用戶註冊
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Phone    string `json:"phone" binding:"required"`
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無效的請求格式"})
		return
	}

	user, token, err := h.users.Register(req.Name, req.Phone, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrPhoneRegistered) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "手機號已被註冊"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "創建使用者失敗", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

// Login 處理密碼登入
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Phone    string `json:"phone" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無效的請求格式"})
		return
	}

	_, token, err := h.users.Login(req.Phone, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "手機號或密碼錯誤"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "登入失敗", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// RequestOTP 發送驗證碼，回應只帶有效時間，碼不會出現在響應裡
func (h *AuthHandler) RequestOTP(c *gin.Context) {
	var req struct {
		Phone string `json:"phone" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無效的請求格式"})
		return
	}

	ttl, err := h.users.RequestOTP(c.Request.Context(), req.Phone)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "發送驗證碼失敗", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"expires_in": int(ttl.Seconds())})
}

// VerifyOTP 核對驗證碼並回傳 token
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req struct {
		Phone string `json:"phone" binding:"required"`
		Code  string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無效的請求格式"})
		return
	}

	_, token, err := h.users.VerifyOTP(c.Request.Context(), req.Phone, req.Code)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCode) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "驗證碼錯誤或已過期"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "驗證失敗", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
