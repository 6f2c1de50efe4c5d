package webhook

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// updateTTL covers Telegram's redelivery window for unacknowledged updates.
const updateTTL = 24 * time.Hour

// RedisDeduper claims update ids with SETNX.
type RedisDeduper struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDeduper(ctx context.Context, url string) (*RedisDeduper, error) {
	opt, err := redis.ParseURL(strings.TrimSpace(url))
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opt)

	if err = client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	log.Println("[redis] connection established")

	return &RedisDeduper{client: client, ttl: updateTTL}, nil
}

func updateKey(updateID int) string {
	return fmt.Sprintf("boomerometro:update:%d", updateID)
}

func (d *RedisDeduper) Seen(ctx context.Context, updateID int) (bool, error) {
	claimed, err := d.client.SetNX(ctx, updateKey(updateID), 1, d.ttl).Result()
	if err != nil {
		return false, err
	}
	return !claimed, nil
}

// Release forgets a claim so a redelivery of updateID is accepted again.
func (d *RedisDeduper) Release(ctx context.Context, updateID int) error {
	return d.client.Del(ctx, updateKey(updateID)).Err()
}

func (d *RedisDeduper) Close() error {
	return d.client.Close()
}
