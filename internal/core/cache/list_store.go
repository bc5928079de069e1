package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"recipe-grocery/internal/infrastructure/config"
	"recipe-grocery/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const listKeyPrefix = "grocery:list:"

// redisClient 是 ListStore 用到的 redis 指令子集，*redis.Client 即滿足
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

// ListStore 以 JSON 形式將購物清單存放在 redis
type ListStore struct {
	client redisClient
	ttl    time.Duration
}

// NewListStore 建立 redis 連線並測試；停用時回傳 nil
func NewListStore(ctx context.Context, cfg config.RedisConfig) (*ListStore, error) {
	if !cfg.Enabled {
		common.LogInfo("List storage disabled")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 測試連接
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	common.LogInfo("List storage connected",
		zap.String("addr", cfg.Addr),
		zap.Duration("ttl", cfg.ListTTL),
	)
	return newListStore(client, cfg.ListTTL), nil
}

func newListStore(client redisClient, ttl time.Duration) *ListStore {
	return &ListStore{client: client, ttl: ttl}
}

// Save 序列化並寫入清單
func (s *ListStore) Save(ctx context.Context, id string, list any) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to marshal list: %w", err)
	}

	if err := s.client.Set(ctx, listKeyPrefix+id, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save list %s: %w", id, err)
	}
	return nil
}

// Load 讀取清單到 dst；不存在時回傳 ErrListNotFound
func (s *ListStore) Load(ctx context.Context, id string, dst any) error {
	data, err := s.client.Get(ctx, listKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return common.ErrListNotFound
		}
		return fmt.Errorf("failed to load list %s: %w", id, err)
	}

	if err := common.ParseJSONBytes(data, dst); err != nil {
		return fmt.Errorf("failed to unmarshal list %s: %w", id, err)
	}
	return nil
}

// Ping 檢查 redis 連線
func (s *ListStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close 關閉 redis 連線
func (s *ListStore) Close() error {
	return s.client.Close()
}
