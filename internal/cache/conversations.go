package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/internos/internos-api/internal/dto"
)

// ErrCacheMiss is returned when no snapshot exists for the user.
var ErrCacheMiss = errors.New("conversation cache: miss")

// ConversationCache holds per-user snapshots of the conversation listing, used
// as a fallback when the relational store is unavailable.
type ConversationCache interface {
	Store(ctx context.Context, userID uint64, conversations []dto.ConversationDTO) error
	Load(ctx context.Context, userID uint64) ([]dto.ConversationDTO, error)
}

const snapshotTTL = 24 * time.Hour

// RedisConversationCache keeps snapshots in redis as JSON blobs.
type RedisConversationCache struct {
	client *redis.Client
}

func NewRedisConversationCache(addr string) *RedisConversationCache {
	return &RedisConversationCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

func snapshotKey(userID uint64) string {
	return fmt.Sprintf("internos:conversations:%d", userID)
}

// Store replaces the user's snapshot.
func (c *RedisConversationCache) Store(ctx context.Context, userID uint64, conversations []dto.ConversationDTO) error {
	payload, err := json.Marshal(conversations)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if err := c.client.Set(ctx, snapshotKey(userID), payload, snapshotTTL).Err(); err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}
	return nil
}

// Load returns the user's snapshot, or ErrCacheMiss.
func (c *RedisConversationCache) Load(ctx context.Context, userID uint64) ([]dto.ConversationDTO, error) {
	payload, err := c.client.Get(ctx, snapshotKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var conversations []dto.ConversationDTO
	if err := json.Unmarshal(payload, &conversations); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return conversations, nil
}
