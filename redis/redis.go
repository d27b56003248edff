package redis

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vivacare/clinic-backend/utils"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

func InitRedis() {
	Client = redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	// Test connection
	if _, err := Client.Ping(Ctx).Result(); err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
	}
	utils.GetLogger().Info("connected to Redis")
}

// StoreRefreshToken records the refresh token currently issued to a user.
// Re-issuing overwrites the previous one, so only the latest is valid.
func StoreRefreshToken(userID uint, token string, ttl time.Duration) error {
	return Client.Set(Ctx, refreshKey(userID), token, ttl).Err()
}

// ValidRefreshToken checks a presented refresh token against the stored one.
func ValidRefreshToken(userID uint, token string) bool {
	stored, err := Client.Get(Ctx, refreshKey(userID)).Result()
	return err == nil && stored == token
}

// RevokeRefreshToken drops the stored refresh token on logout.
func RevokeRefreshToken(userID uint) error {
	return Client.Del(Ctx, refreshKey(userID)).Err()
}

func refreshKey(userID uint) string {
	return fmt.Sprintf("refresh_token:%d", userID)
}
