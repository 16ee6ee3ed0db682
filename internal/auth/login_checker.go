package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

var ErrSessionRevoked = errors.New("session revoked or expired")

// LoginChecker validates access tokens and checks their session is still open.
type LoginChecker struct {
	tokenManager *TokenManager
	redisClient  *redis.Client
}

func NewLoginChecker(tokenManager *TokenManager, redisClient *redis.Client) *LoginChecker {
	return &LoginChecker{
		tokenManager: tokenManager,
		redisClient:  redisClient,
	}
}

func (c *LoginChecker) Check(ctx context.Context, token string) (*Claims, error) {
	claims, err := c.tokenManager.Validate(token)
	if err != nil {
		return nil, err
	}

	createdAtUnixStr, err := c.redisClient.Get(ctx, sessionKeyPrefix+claims.SessionID()).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionRevoked
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	createdAtUnix, err := strconv.ParseInt(createdAtUnixStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}
	if createdAtUnix <= 0 {
		return nil, ErrSessionRevoked
	}
	if time.Since(time.Unix(createdAtUnix, 0)) > c.tokenManager.TTL() {
		return nil, ErrSessionRevoked
	}

	return claims, nil
}
