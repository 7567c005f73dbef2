package service

import (
	"errors"
	"fmt"

	"github.com/Alishba998/glowchat.github/internal/models"
	"github.com/Alishba998/glowchat.github/internal/realtime"
	"github.com/Alishba998/glowchat.github/internal/repository"
)

var (
	// ErrChatNotFound 聊天室不存在
	ErrChatNotFound = errors.New("chat not found")
	// ErrNotMember 操作者不是聊天室成員
	ErrNotMember = errors.New("not a chat member")
	// ErrMemberNotFound 指定的成員不存在
	ErrMemberNotFound = errors.New("member not found")
)

// ChatService 處理聊天室與消息
type ChatService struct {
	chats       repository.ChatRepository
	messages    repository.MessageRepository
	users       repository.UserRepository
	broadcaster Broadcaster
}

// NewChatService 建立聊天服務
func NewChatService(chats repository.ChatRepository, messages repository.MessageRepository, users repository.UserRepository, broadcaster Broadcaster) *ChatService {
	return &ChatService{
		chats:       chats,
		messages:    messages,
		users:       users,
		broadcaster: broadcaster,
	}
}

// CreateChat 建立聊天室，建立者一定會成為成員
func (s *ChatService) CreateChat(creatorID uint, name string, memberIDs []uint) (*models.Chat, error) {
	members := []uint{creatorID}
	seen := map[uint]struct{}{creatorID: {}}
	for _, id := range memberIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		if _, err := s.users.FindByID(id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrMemberNotFound
			}
			return nil, fmt.Errorf("check member: %w", err)
		}
		seen[id] = struct{}{}
		members = append(members, id)
	}

	chat := &models.Chat{Name: name, CreatorID: creatorID}
	if err := s.chats.Create(chat, members); err != nil {
		return nil, fmt.Errorf("create chat: %w", err)
	}
	return chat, nil
}

// ListChats 列出用戶參與的聊天室
func (s *ChatService) ListChats(userID uint) ([]models.Chat, error) {
	chats, err := s.chats.FindByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}
	return chats, nil
}

// Messages 回傳聊天室的歷史消息，只開放給成員看
func (s *ChatService) Messages(userID, chatID uint, limit int) ([]models.MessageWithSender, error) {
	if err := s.requireMember(userID, chatID); err != nil {
		return nil, err
	}
	rows, err := s.messages.FindByChatID(chatID, limit)
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}
	return rows, nil
}

// SendMessage 寫入消息，寫入成功後才推播給聊天室房間
func (s *ChatService) SendMessage(senderID, chatID uint, content string) (*models.MessageWithSender, error) {
	if err := s.requireMember(senderID, chatID); err != nil {
		return nil, err
	}

	sender, err := s.users.FindByID(senderID)
	if err != nil {
		return nil, fmt.Errorf("find sender: %w", err)
	}

	msg := &models.Message{ChatID: chatID, SenderID: senderID, Content: content}
	if err := s.messages.Create(msg); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	view := &models.MessageWithSender{
		ID:         msg.ID,
		ChatID:     msg.ChatID,
		SenderID:   msg.SenderID,
		Content:    msg.Content,
		CreatedAt:  msg.CreatedAt,
		SenderName: sender.Name,
	}

	// 先落庫再推播，推不出去不影響已寫入的消息
	s.broadcaster.BroadcastMessage(chatID, realtime.MessageEvent{
		ID:         view.ID,
		ChatID:     view.ChatID,
		SenderID:   view.SenderID,
		Content:    view.Content,
		CreatedAt:  view.CreatedAt,
		SenderName: view.SenderName,
	})
	return view, nil
}

// requireMember 確認聊天室存在且 userID 是成員
func (s *ChatService) requireMember(userID, chatID uint) error {
	if _, err := s.chats.FindByID(chatID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrChatNotFound
		}
		return fmt.Errorf("find chat: %w", err)
	}

	ok, err := s.chats.IsMember(chatID, userID)
	if err != nil {
		return fmt.Errorf("check membership: %w", err)
	}
	if !ok {
		return ErrNotMember
	}
	return nil
}
