package token

import (
	"fmt"
	"time"

	"github.com/eventease/manager/internal/errdef"
	"github.com/go-redis/redis"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewRepository(client *redis.Client) *repository {
	return &repository{client}
}

type repository struct {
	client *redis.Client
}

func (r repository) SetRefreshToken(userId uint, tokenId string, expiresIn time.Duration) error {
	key := refreshTokenKey(userId, tokenId)
	if err := r.client.Set(key, "valid", expiresIn).Err(); err != nil {
		return fmt.Errorf("failed to store refresh token: %v", err)
	}
	return nil
}

func (r repository) DeleteRefreshToken(userId uint, tokenId string) error {
	key := refreshTokenKey(userId, tokenId)
	deleted, err := r.client.Del(key).Result()
	if err != nil {
		return fmt.Errorf("failed to delete refresh token: %v", err)
	}
	if deleted < 1 {
		return errdef.NewNotFound("refresh token not found for user %d", userId)
	}
	return nil
}

func (r repository) DeleteRefreshTokens(userId uint) error {
	keys, err := r.client.Keys(fmt.Sprintf("refreshToken:%d:*", userId)).Result()
	if err != nil {
		return fmt.Errorf("failed to list refresh tokens: %v", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete refresh tokens: %v", err)
	}
	return nil
}

func refreshTokenKey(userId uint, tokenId string) string {
	return fmt.Sprintf("refreshToken:%d:%s", userId, tokenId)
}
