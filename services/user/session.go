package user

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"homeserve/models"

	"github.com/go-redis/redis/v8"
)

const registrationSessionPrefix = "reg:"

// SaveUserRegistrationSession stores a registration session in Redis.
func SaveUserRegistrationSession(client *redis.Client, sessionID string, session models.UserRegistrationSession, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal registration session: %w", err)
	}
	ctx := context.Background()
	if err := client.Set(ctx, registrationSessionPrefix+sessionID, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store registration session: %w", err)
	}
	return nil
}

// GetUserRegistrationSession retrieves a registration session from Redis.
func GetUserRegistrationSession(client *redis.Client, sessionID string) (models.UserRegistrationSession, error) {
	var session models.UserRegistrationSession
	ctx := context.Background()
	data, err := client.Get(ctx, registrationSessionPrefix+sessionID).Result()
	if err != nil {
		if err == redis.Nil {
			return session, fmt.Errorf("registration session not found or expired")
		}
		return session, fmt.Errorf("failed to retrieve registration session: %w", err)
	}
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return session, fmt.Errorf("failed to unmarshal registration session: %w", err)
	}
	return session, nil
}

// DeleteUserRegistrationSession removes a registration session from Redis.
func DeleteUserRegistrationSession(client *redis.Client, sessionID string) error {
	ctx := context.Background()
	return client.Del(ctx, registrationSessionPrefix+sessionID).Err()
}
