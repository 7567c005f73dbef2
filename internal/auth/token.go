package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

// ErrInvalidToken 在 token 缺失、格式錯誤或已過期時返回
var ErrInvalidToken = errors.New("invalid or expired token")

type Claims struct {
	UserID uint `json:"user_id"`
	jwt.StandardClaims
}

// TokenManager 簽發與驗證 bearer token。
// HTTP 的 Authorization 標頭與即時通道 join 事件的 token 字段使用同一種憑證
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// GenerateToken 生成一個新的 JWT token
func (m *TokenManager) GenerateToken(userID uint) (string, error) {
	nowTime := time.Now()
	expireTime := nowTime.Add(m.ttl)

	claims := Claims{
		UserID: userID,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expireTime.Unix(),
			IssuedAt:  nowTime.Unix(),
		},
	}

	tokenClaims := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tokenClaims.SignedString(m.secret)
}

// ParseToken 解析和驗證 JWT token
func (m *TokenManager) ParseToken(token string) (*Claims, error) {
	tokenClaims, err := jwt.ParseWithClaims(token, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := tokenClaims.Claims.(*Claims)
	if !ok || !tokenClaims.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
