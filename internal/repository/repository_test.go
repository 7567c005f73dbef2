package repository_test

import (
	"path/filepath"
	"testing"

	"github.com/Alishba998/glowchat.github/internal/models"
	"github.com/Alishba998/glowchat.github/internal/repository"
	"github.com/Alishba998/glowchat.github/internal/storage"
	"github.com/Alishba998/glowchat.github/pkg/config"
)

// setupTestDB 開一個拋棄式的 sqlite 資料庫並跑完遷移
func setupTestDB(t *testing.T) *storage.Database {
	t.Helper()

	db, err := storage.NewDatabase(config.DBConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.AutoMigrate(
		&models.User{},
		&models.Chat{},
		&models.ChatMember{},
		&models.Message{},
		&models.Story{},
	); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, users repository.UserRepository, phone, name string) *models.User {
	t.Helper()

	user := &models.User{Phone: phone, Name: name, Password: "hash"}
	if err := users.Create(user); err != nil {
		t.Fatalf("create user %s: %v", phone, err)
	}
	return user
}
