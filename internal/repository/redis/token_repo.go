package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrTokenNotFound    = errors.New("token not found")
	ErrRedisUnavailable = errors.New("redis unavailable")
	ErrExtendFailed     = errors.New("token extend failed")
	ErrTokenDeleted     = errors.New("token delete failed")
)

const (
	TokenExpire = 60 * 30
)

// TokenRepository 单会话登录：每个主体（user/admin）只保留最后一次签发的 token
type TokenRepository struct{}

func tokenKey(kind string, id uint64) string {
	return fmt.Sprintf("login:%s:token:%d", kind, id)
}

func (r *TokenRepository) AddToken(kind string, id uint64, token string) error {
	if err := Client.Set(context.Background(), tokenKey(kind, id), token, time.Second*TokenExpire).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}

func (r *TokenRepository) GetToken(kind string, id uint64) (string, error) {
	token, err := Client.Get(context.Background(), tokenKey(kind, id)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", ErrRedisUnavailable
	}
	return token, nil
}

// ExtendToken 校验通过后顺延过期时间
func (r *TokenRepository) ExtendToken(kind string, id uint64) error {
	if _, err := Client.Expire(context.Background(), tokenKey(kind, id), time.Second*TokenExpire).Result(); err != nil {
		return ErrExtendFailed
	}
	return nil
}

func (r *TokenRepository) DeleteToken(kind string, id uint64) error {
	if err := Client.Del(context.Background(), tokenKey(kind, id)).Err(); err != nil {
		return ErrTokenDeleted
	}
	return nil
}
