package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/Alishba998/glowchat.github/internal/api"
	"github.com/Alishba998/glowchat.github/internal/auth"
	"github.com/Alishba998/glowchat.github/internal/models"
	"github.com/Alishba998/glowchat.github/internal/realtime"
	"github.com/Alishba998/glowchat.github/internal/repository"
	"github.com/Alishba998/glowchat.github/internal/service"
	"github.com/Alishba998/glowchat.github/internal/storage"
	"github.com/Alishba998/glowchat.github/pkg/config"
)

const shutdownTimeout = 30 * time.Second

// 清理過期動態的間隔
const sweepInterval = time.Hour

func main() {
	// 載入應用程式配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化資料庫連接，driver 由配置決定（postgres 或 sqlite）
	db, err := storage.NewDatabase(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// 自動遷移資料庫結構
	if err := db.AutoMigrate(
		&models.User{},
		&models.Chat{},
		&models.ChatMember{},
		&models.Message{},
		&models.Story{},
	); err != nil {
		log.Fatalf("Failed to auto migrate database: %v", err)
	}

	// 初始化 repositories
	repos := repository.NewRepositories(db)

	// token 簽發與驗證
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)

	// 驗證碼儲存：預設記憶體，多實例共用就切 redis
	var otpStore auth.OTPStore
	switch cfg.OTP.Store {
	case "redis":
		otpStore = auth.NewRedisOTPStore(redis.NewClient(&redis.Options{
			Addr:     cfg.OTP.Redis.Addr,
			Password: cfg.OTP.Redis.Password,
			DB:       cfg.OTP.Redis.DB,
		}))
	default:
		otpStore = auth.NewMemoryOTPStore()
	}

	// 即時推播中心，join 的 token 驗證交給 TokenManager
	hub := realtime.NewHub(tokens)

	// s3 模式才需要簽名器
	var presigner service.Presigner
	if cfg.Upload.Mode == "s3" {
		p, err := storage.NewS3Presigner(cfg.Upload.S3)
		if err != nil {
			log.Fatalf("Failed to initialize object store: %v", err)
		}
		presigner = p
	}

	// 初始化 services
	services := service.NewServices(repos, tokens, otpStore, auth.NewLogSender(), hub, presigner, cfg)

	// 設置 Gin 路由
	r := gin.Default()
	api.SetupRoutes(r, services, hub, tokens, cfg.Upload.Dir)

	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	// 啟動伺服器
	go func() {
		log.Printf("listening on %s", cfg.Server.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to run server: %v", err)
		}
	}()

	// 背景清理過期的動態列
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	go sweepStories(sweepCtx, services.Story)

	// 優雅關機：停止收請求、關掉推播連線與資料庫
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"http-server": func(ctx context.Context) error {
				return srv.Shutdown(ctx)
			},
			"realtime-hub": func(ctx context.Context) error {
				hub.CloseAll()
				return nil
			},
			"story-sweeper": func(ctx context.Context) error {
				stopSweep()
				return nil
			},
			"database": func(ctx context.Context) error {
				return db.Close()
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

// sweepStories 定期刪除過期的動態列
func sweepStories(ctx context.Context, stories *service.StoryService) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := stories.PurgeExpired()
			if err != nil {
				log.Printf("purge stories failed: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("purged %d expired stories", n)
			}
		}
	}
}
