package auth

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const otpKeyPrefix = "glowchat:otp:"

// redisOTPStore 把驗證碼放進 Redis，
// 供多個實例共用同一批驗證碼的部署使用
type redisOTPStore struct {
	client *redis.Client
}

func NewRedisOTPStore(client *redis.Client) OTPStore {
	return &redisOTPStore{client: client}
}

func (s *redisOTPStore) Save(ctx context.Context, phone, code string, ttl time.Duration) error {
	return s.client.Set(ctx, otpKeyPrefix+phone, code, ttl).Err()
}

func (s *redisOTPStore) Consume(ctx context.Context, phone, code string) (bool, error) {
	key := otpKeyPrefix + phone

	stored, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if stored != code {
		return false, nil
	}

	if err := s.client.Del(ctx, key).Err(); err != nil {
		return false, err
	}
	return true, nil
}
