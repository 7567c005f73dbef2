package service

import (
	"context"
	"time"

	"github.com/Alishba998/glowchat.github/internal/auth"
	"github.com/Alishba998/glowchat.github/internal/realtime"
	"github.com/Alishba998/glowchat.github/internal/repository"
	"github.com/Alishba998/glowchat.github/pkg/config"
)

// Broadcaster 是服務層對即時推播的依賴，由 realtime.Hub 實作
type Broadcaster interface {
	BroadcastMessage(chatID uint, event realtime.MessageEvent)
	BroadcastStory(event realtime.StoryEvent)
}

// Presigner 簽發物件儲存的上傳網址，由 storage.S3Presigner 實作
type Presigner interface {
	PresignPut(ctx context.Context, object string, expiry time.Duration) (string, error)
}

// Services 聚合所有業務服務
type Services struct {
	User   *UserService
	Chat   *ChatService
	Story  *StoryService
	Upload *UploadService
}

// NewServices 建立服務層。presigner 在 local 上傳模式下可為 nil
func NewServices(repos *repository.Repositories, tokens *auth.TokenManager, otpStore auth.OTPStore, sender auth.CodeSender, broadcaster Broadcaster, presigner Presigner, cfg *config.Config) *Services {
	return &Services{
		User:   NewUserService(repos.User, tokens, otpStore, sender, cfg.OTP),
		Chat:   NewChatService(repos.Chat, repos.Message, repos.User, broadcaster),
		Story:  NewStoryService(repos.Story),
		Upload: NewUploadService(repos.Story, broadcaster, presigner, cfg.Upload, cfg.Stories),
	}
}
