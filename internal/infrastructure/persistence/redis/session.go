package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

// SessionStore 馆员会话存储
// Key设计：
//
//	library:session:{user_id}   登录会话（HASH），有效期与Refresh Token一致
//	library:blacklist:{token}   已登出的Access Token，有效期与Access Token一致
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore 创建会话存储
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func sessionKey(userID uint) string {
	return fmt.Sprintf("library:session:%d", userID)
}

func blacklistKey(token string) string {
	return "library:blacklist:" + token
}

// SaveSession 保存登录会话
// HSET和EXPIRE放在同一个MULTI中执行
func (s *SessionStore) SaveSession(ctx context.Context, userID uint, sessionData map[string]interface{}, ttl time.Duration) error {
	key := sessionKey(userID)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, sessionData)
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return &apperrors.AppError{Code: apperrors.ErrCodeRedisError, Message: "Failed to save session", Err: err}
	}
	return nil
}

// DeleteSession 删除登录会话
func (s *SessionStore) DeleteSession(ctx context.Context, userID uint) error {
	if err := s.client.Del(ctx, sessionKey(userID)).Err(); err != nil {
		return &apperrors.AppError{Code: apperrors.ErrCodeRedisError, Message: "Failed to delete session", Err: err}
	}
	return nil
}

// AddToBlacklist 将Token加入黑名单
func (s *SessionStore) AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error {
	if err := s.client.Set(ctx, blacklistKey(token), "revoked", ttl).Err(); err != nil {
		return &apperrors.AppError{Code: apperrors.ErrCodeRedisError, Message: "Failed to revoke token", Err: err}
	}
	return nil
}

// IsInBlacklist Token是否已被吊销
func (s *SessionStore) IsInBlacklist(ctx context.Context, token string) (bool, error) {
	exists, err := s.client.Exists(ctx, blacklistKey(token)).Result()
	if err != nil {
		return false, &apperrors.AppError{Code: apperrors.ErrCodeRedisError, Message: "Failed to check token", Err: err}
	}
	return exists > 0, nil
}
