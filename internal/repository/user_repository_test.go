package repository_test

import (
	"errors"
	"testing"

	"github.com/Alishba998/glowchat.github/internal/models"
	"github.com/Alishba998/glowchat.github/internal/repository"
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	users := repository.NewUserRepository(db)

	created := createTestUser(t, users, "0912345678", "alice")
	if created.ID == 0 {
		t.Fatal("Create() did not assign an ID")
	}

	byPhone, err := users.FindByPhone("0912345678")
	if err != nil {
		t.Fatalf("FindByPhone() error = %v", err)
	}
	if byPhone.ID != created.ID || byPhone.Name != "alice" {
		t.Errorf("FindByPhone() = %+v, want id=%d name=alice", byPhone, created.ID)
	}

	byID, err := users.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if byID.Phone != "0912345678" {
		t.Errorf("FindByID().Phone = %q, want 0912345678", byID.Phone)
	}
}

func TestUserRepository_NotFound(t *testing.T) {
	db := setupTestDB(t)
	users := repository.NewUserRepository(db)

	if _, err := users.FindByPhone("0900000000"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("FindByPhone() error = %v, want ErrNotFound", err)
	}
	if _, err := users.FindByID(999); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("FindByID() error = %v, want ErrNotFound", err)
	}
}

func TestUserRepository_DuplicatePhone(t *testing.T) {
	db := setupTestDB(t)
	users := repository.NewUserRepository(db)

	createTestUser(t, users, "0912345678", "alice")

	dup := &models.User{Phone: "0912345678", Name: "bob", Password: "hash"}
	if err := users.Create(dup); err == nil {
		t.Error("Create() with duplicate phone succeeded, want unique constraint error")
	}
}
