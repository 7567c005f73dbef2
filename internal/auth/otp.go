package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"
)

// OTPStore 保存等待驗證的一次性驗證碼。
// 同一手機號碼重複請求時，新的驗證碼會取代舊的
type OTPStore interface {
	// Save 保存驗證碼並設置有效期
	Save(ctx context.Context, phone, code string, ttl time.Duration) error
	// Consume 比對驗證碼，相符時刪除並返回 true；
	// 不相符或已過期時返回 false，不產生錯誤
	Consume(ctx context.Context, phone, code string) (bool, error)
}

// GenerateCode 生成指定位數的數字驗證碼
func GenerateCode(digits int) (string, error) {
	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", digits, n), nil
}

type otpEntry struct {
	code      string
	expiresAt time.Time
}

// memoryOTPStore 是單進程部署的預設實現
type memoryOTPStore struct {
	mu    sync.Mutex
	codes map[string]otpEntry
}

func NewMemoryOTPStore() OTPStore {
	return &memoryOTPStore{codes: make(map[string]otpEntry)}
}

func (s *memoryOTPStore) Save(_ context.Context, phone, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// 順手清掉已過期的條目，避免 map 無限增長
	now := time.Now()
	for key, entry := range s.codes {
		if now.After(entry.expiresAt) {
			delete(s.codes, key)
		}
	}

	s.codes[phone] = otpEntry{code: code, expiresAt: now.Add(ttl)}
	return nil
}

func (s *memoryOTPStore) Consume(_ context.Context, phone, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.codes[phone]
	if !ok {
		return false, nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.codes, phone)
		return false, nil
	}
	if entry.code != code {
		return false, nil
	}

	delete(s.codes, phone)
	return true, nil
}
