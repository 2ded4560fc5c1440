package auth

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// LoginChecker resolves session tokens to user IDs, for the auth middleware.
type LoginChecker struct {
	ttl         time.Duration
	redisClient *redis.Client
}

func NewLoginChecker(ttl time.Duration, redisClient *redis.Client) *LoginChecker {
	return &LoginChecker{
		ttl:         ttl,
		redisClient: redisClient,
	}
}

// UserIDForToken returns the user behind the token, or ErrNotLoggedIn
// when the session is missing or past its TTL.
func (c *LoginChecker) UserIDForToken(ctx context.Context, token string) (int, error) {
	session, err := getSession(ctx, c.redisClient, token)
	if err != nil {
		return 0, err
	}

	if time.Since(session.CreatedAt) > c.ttl {
		return 0, ErrNotLoggedIn
	}

	return session.UserID, nil
}
