package repository

import (
	"errors"

	"github.com/Alishba998/glowchat.github/internal/storage"
)

// ErrNotFound 在查詢不到記錄時返回，上層以 errors.Is 判斷
var ErrNotFound = errors.New("record not found")

type Repositories struct {
	User    UserRepository
	Chat    ChatRepository
	Message MessageRepository
	Story   StoryRepository
}

func NewRepositories(db *storage.Database) *Repositories {
	return &Repositories{
		User:    NewUserRepository(db),
		Chat:    NewChatRepository(db),
		Message: NewMessageRepository(db),
		Story:   NewStoryRepository(db),
	}
}
