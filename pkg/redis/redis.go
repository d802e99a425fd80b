package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

func Open(addr string) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
	_ = rdb.Ping(context.Background()).Err()
	return rdb
}
