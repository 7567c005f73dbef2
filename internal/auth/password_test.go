package auth_test

import (
	"testing"

	"github.com/Alishba998/glowchat.github/internal/auth"
)

func TestPassword_RoundTrip(t *testing.T) {
	hash, err := auth.HashPassword("super-secret")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "super-secret" {
		t.Fatal("HashPassword() returned the plaintext")
	}

	if !auth.CheckPassword(hash, "super-secret") {
		t.Error("CheckPassword() = false for correct password")
	}
	if auth.CheckPassword(hash, "wrong-password") {
		t.Error("CheckPassword() = true for wrong password")
	}
}

// 用驗證碼註冊的帳號沒有密碼，空雜湊對任何輸入都要失敗
func TestPassword_EmptyHash(t *testing.T) {
	if auth.CheckPassword("", "anything") {
		t.Error("CheckPassword() = true for empty hash")
	}
}
