package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fortuna/courtside/internal/service"
)

// RedisStreamPublisher appends live snapshots and final game lines to Redis
// streams named scores.live.<team> and scores.final.<team>
type RedisStreamPublisher struct {
	client *redis.Client
	teamID string
	maxLen int64
	now    func() time.Time
}

// NewRedisStreamPublisher creates a publisher from an existing client
func NewRedisStreamPublisher(client *redis.Client, teamID string) *RedisStreamPublisher {
	return &RedisStreamPublisher{
		client: client,
		teamID: teamID,
		maxLen: 1000,
		now:    time.Now,
	}
}

// NewRedisPublisher connects to redisURL and creates a publisher
func NewRedisPublisher(redisURL, teamID string) (*RedisStreamPublisher, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return NewRedisStreamPublisher(client, teamID), nil
}

// Close closes the Redis connection
func (p *RedisStreamPublisher) Close() error {
	return p.client.Close()
}

// LiveStream is the stream live snapshots go to
func (p *RedisStreamPublisher) LiveStream() string {
	return "scores.live." + p.teamID
}

// FinalStream is the stream finished games go to
func (p *RedisStreamPublisher) FinalStream() string {
	return "scores.final." + p.teamID
}

// PublishLiveUpdate appends one live snapshot
func (p *RedisStreamPublisher) PublishLiveUpdate(ctx context.Context, view *service.LiveView) error {
	return p.add(ctx, p.LiveStream(), view)
}

// PublishFinal appends the last known line of a finished game
func (p *RedisStreamPublisher) PublishFinal(ctx context.Context, game service.LiveGame) error {
	return p.add(ctx, p.FinalStream(), game)
}

func (p *RedisStreamPublisher) add(ctx context.Context, stream string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s entry: %w", stream, err)
	}

	err = p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		MaxLen: p.maxLen,
		Values: map[string]interface{}{
			"data":      string(data),
			"timestamp": p.now().Unix(),
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("xadd %s: %w", stream, err)
	}
	return nil
}
