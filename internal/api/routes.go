package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Alishba998/glowchat.github/internal/api/handlers"
	"github.com/Alishba998/glowchat.github/internal/auth"
	"github.com/Alishba998/glowchat.github/internal/middleware"
	"github.com/Alishba998/glowchat.github/internal/realtime"
	"github.com/Alishba998/glowchat.github/internal/service"
)

// SetupRoutes 設置所有路由
func SetupRoutes(r *gin.Engine, svcs *service.Services, hub *realtime.Hub, tokens *auth.TokenManager, uploadDir string) {
	authHandler := handlers.NewAuthHandler(svcs.User)
	chatHandler := handlers.NewChatHandler(svcs.Chat)
	uploadHandler := handlers.NewUploadHandler(svcs.Upload, svcs.Story)

	api := r.Group("/api")
	{
		// 公開路由
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.POST("/otp/request", authHandler.RequestOTP)
		api.POST("/otp/verify", authHandler.VerifyOTP)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// 需要認證的路由
		authorized := api.Group("")
		authorized.Use(middleware.Auth(tokens))
		{
			authorized.GET("/chats", chatHandler.List)
			authorized.POST("/chats", chatHandler.Create)
			authorized.GET("/chats/:id/messages", chatHandler.Messages)
			authorized.POST("/chats/:id/messages", chatHandler.Send)

			authorized.GET("/stories", uploadHandler.Stories)
			authorized.POST("/uploads/presign", uploadHandler.Presign)
			authorized.POST("/uploads/stories", uploadHandler.UploadStory)
		}
	}

	// WebSocket 升級，驗證走連線內的 join 事件
	r.GET("/ws", handlers.ServeWS(hub))

	// 本地上傳的檔案直接由這裡供應
	r.Static("/uploads", uploadDir)

	// 404 處理
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "找不到請求的資源"})
	})
}
