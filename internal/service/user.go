package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Alishba998/glowchat.github/internal/auth"
	"github.com/Alishba998/glowchat.github/internal/models"
	"github.com/Alishba998/glowchat.github/internal/repository"
	"github.com/Alishba998/glowchat.github/pkg/config"
)

var (
	// ErrPhoneRegistered 手機號已被註冊
	ErrPhoneRegistered = errors.New("phone already registered")
	// ErrInvalidCredentials 帳號或密碼錯誤，兩種情況共用同一個錯誤
	ErrInvalidCredentials = errors.New("invalid phone or password")
	// ErrInvalidCode 驗證碼錯誤或已過期
	ErrInvalidCode = errors.New("invalid or expired code")
)

// UserService 處理註冊、登入與驗證碼流程
type UserService struct {
	users  repository.UserRepository
	tokens *auth.TokenManager
	otp    auth.OTPStore
	sender auth.CodeSender
	otpTTL time.Duration
	digits int
}

// NewUserService 建立用戶服務
func NewUserService(users repository.UserRepository, tokens *auth.TokenManager, otp auth.OTPStore, sender auth.CodeSender, cfg config.OTPConfig) *UserService {
	return &UserService{
		users:  users,
		tokens: tokens,
		otp:    otp,
		sender: sender,
		otpTTL: time.Duration(cfg.TTLMinutes) * time.Minute,
		digits: cfg.Digits,
	}
}

// Register 建立新用戶並回傳登入 token
func (s *UserService) Register(name, phone, password string) (*models.User, string, error) {
	if _, err := s.users.FindByPhone(phone); err == nil {
		return nil, "", ErrPhoneRegistered
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, "", fmt.Errorf("check phone: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{Phone: phone, Name: name, Password: hash}
	if err := s.users.Create(user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}
	return user, token, nil
}

// Login 驗證密碼並回傳 token。
// 手機號不存在和密碼錯誤回同一個錯誤，避免洩漏哪個欄位錯了
func (s *UserService) Login(phone, password string) (*models.User, string, error) {
	user, err := s.users.FindByPhone(phone)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}
	return user, token, nil
}

// RequestOTP 產生驗證碼並交給發送器，回傳碼的有效時間。
// 重複請求會覆蓋前一組碼
func (s *UserService) RequestOTP(ctx context.Context, phone string) (time.Duration, error) {
	code, err := auth.GenerateCode(s.digits)
	if err != nil {
		return 0, fmt.Errorf("generate code: %w", err)
	}
	if err := s.otp.Save(ctx, phone, code, s.otpTTL); err != nil {
		return 0, fmt.Errorf("save code: %w", err)
	}
	if err := s.sender.Send(phone, code); err != nil {
		return 0, fmt.Errorf("send code: %w", err)
	}
	return s.otpTTL, nil
}

// VerifyOTP 核對驗證碼並回傳 token，碼只能用一次。
// 手機號還沒有帳號時直接建立，名稱預設用手機號
func (s *UserService) VerifyOTP(ctx context.Context, phone, code string) (*models.User, string, error) {
	ok, err := s.otp.Consume(ctx, phone, code)
	if err != nil {
		return nil, "", fmt.Errorf("consume code: %w", err)
	}
	if !ok {
		return nil, "", ErrInvalidCode
	}

	user, err := s.users.FindByPhone(phone)
	if errors.Is(err, repository.ErrNotFound) {
		user = &models.User{Phone: phone, Name: phone}
		if err := s.users.Create(user); err != nil {
			return nil, "", fmt.Errorf("create user: %w", err)
		}
	} else if err != nil {
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}
	return user, token, nil
}
