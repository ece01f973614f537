// Package messaging은 Redis pub/sub 기반 이벤트 발행을 제공합니다.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Publisher 메시지 발행 인터페이스
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Close() error
}

// RedisConfig Redis 연결 설정
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Channel  string `mapstructure:"channel"`
}

// redisPublisher Redis 발행자 구현체
type redisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher Redis 발행자 생성. 연결 확인에 실패하면 에러를 반환합니다.
func NewRedisPublisher(ctx context.Context, cfg RedisConfig) (Publisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("Redis 연결 실패: %w", err)
	}

	return &redisPublisher{client: client}, nil
}

// Publish 메시지를 JSON으로 직렬화하여 발행합니다.
func (r *redisPublisher) Publish(ctx context.Context, channel string, message interface{}) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("메시지 직렬화 실패: %w", err)
	}

	return r.client.Publish(ctx, channel, payload).Err()
}

// Close Redis 클라이언트 종료
func (r *redisPublisher) Close() error {
	return r.client.Close()
}

// NopPublisher는 Redis가 비활성화된 경우 사용하는 발행자입니다.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, channel string, message interface{}) error {
	return nil
}

func (NopPublisher) Close() error { return nil }
