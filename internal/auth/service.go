package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/aitrainer/pkg"
)

const (
	DefaultTTL       = 30 * time.Minute
	sessionKeyPrefix = "aitrainer-session||"
	sessionsSetKey   = "aitrainer-sessions"
)

var ErrSessionNotFound = errors.New("session not found")

type Service struct {
	redisClient  *redis.Client
	tokenManager *TokenManager
	// ability to inject random string generator func for session IDs (for unit and dev testing)
	RandStringFunc func(s int) (string, error)
}

func NewAuthService(
	tokenManager *TokenManager,
	redisClient *redis.Client,
) *Service {
	return &Service{
		tokenManager:   tokenManager,
		redisClient:    redisClient,
		RandStringFunc: pkg.GenerateRandomString,
	}
}

// Login opens a new session for the user and returns the signed access token for it.
func (as *Service) Login(ctx context.Context, email string, createdAt time.Time) (string, error) {
	sessionID, err := as.RandStringFunc(24)
	if err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}

	token, err := as.tokenManager.Generate(email, sessionID, createdAt)
	if err != nil {
		return "", err
	}

	sessionKey := sessionKeyPrefix + sessionID
	// the key outlives the token a bit, ScanAndClean takes care of the leftovers
	if err := as.redisClient.Set(ctx, sessionKey, createdAt.Unix(), 2*as.tokenManager.TTL()).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	if err := as.redisClient.SAdd(ctx, sessionsSetKey, sessionID).Err(); err != nil {
		return "", fmt.Errorf("register session: %w", err)
	}

	return token, nil
}

// Logout revokes the session. The returned bool reports whether the session was still active.
func (as *Service) Logout(ctx context.Context, sessionID string) (bool, error) {
	sessionKey := sessionKeyPrefix + sessionID
	createdAtUnixStr, err := as.redisClient.Get(ctx, sessionKey).Result()
	if errors.Is(err, redis.Nil) {
		return false, ErrSessionNotFound
	}
	if err != nil {
		return false, err
	}

	createdAtUnix, err := strconv.ParseInt(createdAtUnixStr, 10, 64)
	if err != nil {
		return false, err
	}

	// keep the key with 0 until it expires, so a revoked token is never looked up as unknown
	if err := as.redisClient.Set(ctx, sessionKey, 0, as.tokenManager.TTL()).Err(); err != nil {
		return false, err
	}

	if err := as.redisClient.SRem(ctx, sessionsSetKey, sessionID).Err(); err != nil {
		return false, err
	}

	return createdAtUnix > 0, nil
}

// ScanAndClean will run through all sessions, check the TTL, and clean them if old
func (as *Service) ScanAndClean(ctx context.Context) {
	sessionIDs, err := as.redisClient.SMembers(ctx, sessionsSetKey).Result()
	if err != nil {
		log.Errorf("auth service, scan and clean, get sessions: %s", err)
		return
	}

	if len(sessionIDs) == 0 {
		log.Debugln("auth service, scan and clean abort, no sessions")
		return
	}

	log.Debugf("auth service, scan and clean [%d sessions] start ...", len(sessionIDs))
	var toRemove []string
	for _, sessionID := range sessionIDs {
		createdAtUnixStr, err := as.redisClient.Get(ctx, sessionKeyPrefix+sessionID).Result()
		if errors.Is(err, redis.Nil) {
			// key already expired
			toRemove = append(toRemove, sessionID)
			continue
		}
		if err != nil {
			log.Errorf("auth service, scan and clean session %s: %s", sessionID, err)
			continue
		}

		createdAtUnix, err := strconv.ParseInt(createdAtUnixStr, 10, 64)
		if err != nil {
			log.Errorf("auth service, scan and clean session %s: %s", sessionID, err)
			continue
		}

		if time.Since(time.Unix(createdAtUnix, 0)) > as.tokenManager.TTL() {
			toRemove = append(toRemove, sessionID)
		}
	}

	for _, sessionID := range toRemove {
		if err := as.redisClient.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
			log.Errorf("auth service, clean session %s: %s", sessionID, err)
			continue
		}
		if err := as.redisClient.SRem(ctx, sessionsSetKey, sessionID).Err(); err != nil {
			log.Errorf("auth service, clean session %s: %s", sessionID, err)
			continue
		}
	}

	log.Debugf("auth service, scan and clean done, removed %d sessions", len(toRemove))
}

// RunCleanup calls ScanAndClean on every tick, until ctx is done.
func (as *Service) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			as.ScanAndClean(ctx)
		}
	}
}
