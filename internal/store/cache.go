package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mentorlink/webicast/internal/domain"
)

var ErrCacheMiss = errors.New("cache miss")

// Cache sits in front of session lookups. A miss is reported as ErrCacheMiss;
// any other error degrades the lookup to the database.
type Cache interface {
	Get(ctx context.Context, id domain.SessionID) (*domain.Session, error)
	Set(ctx context.Context, sess *domain.Session) error
	Delete(ctx context.Context, id domain.SessionID) error
}

// RedisConfig configures the optional session cache.
type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Address  string        `mapstructure:"address"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// SessionCache caches session lookups in Redis with a TTL. Entries are
// invalidated whenever the live flag changes.
type SessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionCache(cfg RedisConfig) (*SessionCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &SessionCache{client: client, ttl: cfg.TTL}, nil
}

func (c *SessionCache) key(id domain.SessionID) string {
	return fmt.Sprintf("webicast:session:%s", id)
}

func (c *SessionCache) Get(ctx context.Context, id domain.SessionID) (*domain.Session, error) {
	data, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached session: %w", err)
	}
	return &sess, nil
}

func (c *SessionCache) Set(ctx context.Context, sess *domain.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := c.client.Set(ctx, c.key(sess.ID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in redis: %w", err)
	}
	return nil
}

func (c *SessionCache) Delete(ctx context.Context, id domain.SessionID) error {
	if err := c.client.Del(ctx, c.key(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}
	return nil
}

func (c *SessionCache) Close() error {
	return c.client.Close()
}
