package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrCodeNotFound = errors.New("verification code not found")

const (
	blacklistKeyPrefix = "auth:blacklist:"
	emailCodeKeyPrefix = "auth:email-code:"
)

// TokenRepository tracks revoked refresh tokens and short-lived email
// verification codes in redis.
type TokenRepository interface {
	BlacklistRefreshToken(ctx context.Context, jti string, ttl time.Duration) error
	IsRefreshTokenBlacklisted(ctx context.Context, jti string) (bool, error)
	StoreEmailCode(ctx context.Context, email, code string, ttl time.Duration) error
	GetEmailCode(ctx context.Context, email string) (string, error)
	DeleteEmailCode(ctx context.Context, email string) error
}

type TokenRepositoryImpl struct {
	client *redis.Client
}

func NewTokenRepository(client *redis.Client) TokenRepository {
	return &TokenRepositoryImpl{client: client}
}

func (r *TokenRepositoryImpl) BlacklistRefreshToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // already expired, nothing to revoke
	}
	return r.client.Set(ctx, blacklistKeyPrefix+jti, "1", ttl).Err()
}

func (r *TokenRepositoryImpl) IsRefreshTokenBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := r.client.Exists(ctx, blacklistKeyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	return n > 0, nil
}

func (r *TokenRepositoryImpl) StoreEmailCode(ctx context.Context, email, code string, ttl time.Duration) error {
	return r.client.Set(ctx, emailCodeKeyPrefix+email, code, ttl).Err()
}

func (r *TokenRepositoryImpl) GetEmailCode(ctx context.Context, email string) (string, error) {
	code, err := r.client.Get(ctx, emailCodeKeyPrefix+email).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCodeNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read verification code: %w", err)
	}
	return code, nil
}

func (r *TokenRepositoryImpl) DeleteEmailCode(ctx context.Context, email string) error {
	return r.client.Del(ctx, emailCodeKeyPrefix+email).Err()
}
