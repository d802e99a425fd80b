package notify

import (
	"context"

	"github.com/redis/go-redis/v9"
)

type redisPublisher struct{ rdb *redis.Client }

func NewRedisPublisher(rdb *redis.Client) Publisher { return &redisPublisher{rdb: rdb} }

func (p *redisPublisher) Publish(ctx context.Context, channel string, payload []byte) error {
	return p.rdb.Publish(ctx, channel, payload).Err()
}
