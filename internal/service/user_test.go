package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Alishba998/glowchat.github/internal/auth"
	"github.com/Alishba998/glowchat.github/internal/service"
	"github.com/Alishba998/glowchat.github/pkg/config"
)

// captureSender 把驗證碼留給測試讀
type captureSender struct {
	mu    sync.Mutex
	phone string
	code  string
}

func (s *captureSender) Send(phone, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phone = phone
	s.code = code
	return nil
}

func (s *captureSender) last() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phone, s.code
}

func newUserService(t *testing.T) (*service.UserService, *auth.TokenManager, *captureSender) {
	t.Helper()
	tokens := auth.NewTokenManager("user-test-secret", time.Hour)
	sender := &captureSender{}
	svc := service.NewUserService(newFakeUserRepo(), tokens, auth.NewMemoryOTPStore(), sender, config.OTPConfig{
		TTLMinutes: 5,
		Digits:     6,
	})
	return svc, tokens, sender
}

func TestUserService_Register(t *testing.T) {
	svc, tokens, _ := newUserService(t)

	user, token, err := svc.Register("alice", "0912345678", "super-secret")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.ID == 0 {
		t.Error("Register() user has no ID")
	}
	if user.Password == "super-secret" {
		t.Error("Register() stored the plaintext password")
	}
	if !auth.CheckPassword(user.Password, "super-secret") {
		t.Error("Register() stored hash does not match the password")
	}

	claims, err := tokens.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("token UserID = %d, want %d", claims.UserID, user.ID)
	}
}

func TestUserService_RegisterDuplicatePhone(t *testing.T) {
	svc, _, _ := newUserService(t)

	if _, _, err := svc.Register("alice", "0912345678", "super-secret"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, _, err := svc.Register("bob", "0912345678", "other-secret")
	if !errors.Is(err, service.ErrPhoneRegistered) {
		t.Errorf("Register() error = %v, want ErrPhoneRegistered", err)
	}
}

func TestUserService_Login(t *testing.T) {
	svc, tokens, _ := newUserService(t)

	registered, _, err := svc.Register("alice", "0912345678", "super-secret")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	user, token, err := svc.Login("0912345678", "super-secret")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("Login() user ID = %d, want %d", user.ID, registered.ID)
	}
	claims, err := tokens.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if claims.UserID != registered.ID {
		t.Errorf("token UserID = %d, want %d", claims.UserID, registered.ID)
	}
}

// 手機號不存在和密碼錯誤必須回同一個錯誤
func TestUserService_LoginRejections(t *testing.T) {
	svc, _, _ := newUserService(t)

	if _, _, err := svc.Register("alice", "0912345678", "super-secret"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	tests := []struct {
		name     string
		phone    string
		password string
	}{
		{"wrong password", "0912345678", "wrong"},
		{"unknown phone", "0900000000", "super-secret"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Login(tt.phone, tt.password)
			if !errors.Is(err, service.ErrInvalidCredentials) {
				t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestUserService_OTPFlow(t *testing.T) {
	svc, tokens, sender := newUserService(t)
	ctx := context.Background()

	ttl, err := svc.RequestOTP(ctx, "0987654321")
	if err != nil {
		t.Fatalf("RequestOTP() error = %v", err)
	}
	if ttl != 5*time.Minute {
		t.Errorf("RequestOTP() ttl = %v, want 5m", ttl)
	}

	phone, code := sender.last()
	if phone != "0987654321" {
		t.Errorf("sender phone = %q, want 0987654321", phone)
	}
	if len(code) != 6 {
		t.Errorf("sender code = %q, want 6 digits", code)
	}

	// 陌生手機號驗證成功後自動建立帳號
	user, token, err := svc.VerifyOTP(ctx, "0987654321", code)
	if err != nil {
		t.Fatalf("VerifyOTP() error = %v", err)
	}
	if user.Name != "0987654321" {
		t.Errorf("auto-created user Name = %q, want the phone", user.Name)
	}
	claims, err := tokens.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("token UserID = %d, want %d", claims.UserID, user.ID)
	}

	// 碼用過一次就失效
	if _, _, err := svc.VerifyOTP(ctx, "0987654321", code); !errors.Is(err, service.ErrInvalidCode) {
		t.Errorf("VerifyOTP() reuse error = %v, want ErrInvalidCode", err)
	}
}

func TestUserService_VerifyOTPWrongCode(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()

	if _, err := svc.RequestOTP(ctx, "0987654321"); err != nil {
		t.Fatalf("RequestOTP() error = %v", err)
	}

	_, _, err := svc.VerifyOTP(ctx, "0987654321", "000000")
	if !errors.Is(err, service.ErrInvalidCode) {
		t.Errorf("VerifyOTP() error = %v, want ErrInvalidCode", err)
	}
}

func TestUserService_VerifyOTPExistingUser(t *testing.T) {
	svc, _, sender := newUserService(t)
	ctx := context.Background()

	registered, _, err := svc.Register("alice", "0912345678", "super-secret")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if _, err := svc.RequestOTP(ctx, "0912345678"); err != nil {
		t.Fatalf("RequestOTP() error = %v", err)
	}
	_, code := sender.last()

	user, _, err := svc.VerifyOTP(ctx, "0912345678", code)
	if err != nil {
		t.Fatalf("VerifyOTP() error = %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("VerifyOTP() user ID = %d, want existing user %d", user.ID, registered.ID)
	}
	if user.Name != "alice" {
		t.Errorf("VerifyOTP() user Name = %q, want alice", user.Name)
	}
}
