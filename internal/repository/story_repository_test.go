package repository_test

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/Alishba998/glowchat.github/internal/models"
	"github.com/Alishba998/glowchat.github/internal/repository"
)

func TestStoryRepository_FindActive(t *testing.T) {
	db := setupTestDB(t)
	users := repository.NewUserRepository(db)
	stories := repository.NewStoryRepository(db)

	alice := createTestUser(t, users, "0911111111", "alice")
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	fresh := &models.Story{
		Model:      gorm.Model{CreatedAt: now.Add(-time.Hour)},
		UploaderID: alice.ID,
		Filename:   "fresh.png",
		ExpiresAt:  now.Add(23 * time.Hour),
	}
	newer := &models.Story{
		Model:      gorm.Model{CreatedAt: now.Add(-time.Minute)},
		UploaderID: alice.ID,
		Filename:   "newer.png",
		ExpiresAt:  now.Add(24 * time.Hour),
	}
	expired := &models.Story{
		Model:      gorm.Model{CreatedAt: now.Add(-48 * time.Hour)},
		UploaderID: alice.ID,
		Filename:   "expired.png",
		ExpiresAt:  now.Add(-24 * time.Hour),
	}
	for _, story := range []*models.Story{fresh, newer, expired} {
		if err := stories.Create(story); err != nil {
			t.Fatalf("Create(%s) error = %v", story.Filename, err)
		}
	}

	active, err := stories.FindActive(now)
	if err != nil {
		t.Fatalf("FindActive() error = %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("FindActive() returned %d stories, want 2", len(active))
	}
	// 新的在前
	if active[0].Filename != "newer.png" || active[1].Filename != "fresh.png" {
		t.Errorf("FindActive() order = [%q, %q], want [newer.png, fresh.png]",
			active[0].Filename, active[1].Filename)
	}
}

func TestStoryRepository_DeleteExpired(t *testing.T) {
	db := setupTestDB(t)
	users := repository.NewUserRepository(db)
	stories := repository.NewStoryRepository(db)

	alice := createTestUser(t, users, "0911111111", "alice")
	now := time.Now()

	for i, expiresAt := range []time.Time{
		now.Add(-2 * time.Hour),
		now.Add(-time.Hour),
		now.Add(time.Hour),
	} {
		story := &models.Story{
			UploaderID: alice.ID,
			Filename:   "story.png",
			ExpiresAt:  expiresAt,
		}
		if err := stories.Create(story); err != nil {
			t.Fatalf("Create(%d) error = %v", i, err)
		}
	}

	deleted, err := stories.DeleteExpired(now)
	if err != nil {
		t.Fatalf("DeleteExpired() error = %v", err)
	}
	if deleted != 2 {
		t.Errorf("DeleteExpired() = %d, want 2", deleted)
	}

	active, err := stories.FindActive(now)
	if err != nil {
		t.Fatalf("FindActive() error = %v", err)
	}
	if len(active) != 1 {
		t.Errorf("FindActive() after purge returned %d stories, want 1", len(active))
	}
}
