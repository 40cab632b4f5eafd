package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jbdamask/dinebot/pkg/llm"
)

const keyPrefix = "dinebot:session:"

// DefaultTTL is how long an idle session's history is kept.
const DefaultTTL = 30 * time.Minute

// RedisStore keeps each history as a Redis list of JSON messages. Every
// append refreshes the key's expiry.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to url, which may be a redis:// URL or a bare
// host:port, and pings the server.
func NewRedisStore(url string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redisOptions(url)
	if err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to reach redis at %s: %w", opts.Addr, err)
	}

	return &RedisStore{client: client, ttl: ttl}, nil
}

func redisOptions(url string) (*redis.Options, error) {
	if strings.Contains(url, "://") {
		opts, err := redis.ParseURL(url)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opts, nil
	}
	if url == "" {
		url = "localhost:6379"
	}
	return &redis.Options{Addr: url}, nil
}

func key(id string) string {
	return keyPrefix + id
}

func (s *RedisStore) Load(ctx context.Context, id string) ([]llm.Message, error) {
	raw, err := s.client.LRange(ctx, key(id), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", id, err)
	}
	return decodeMessages(raw)
}

func (s *RedisStore) Append(ctx context.Context, id string, msgs ...llm.Message) error {
	if len(msgs) == 0 {
		return nil
	}
	values, err := encodeMessages(msgs)
	if err != nil {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key(id), values...)
		pipe.Expire(ctx, key(id), s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to append to session %s: %w", id, err)
	}
	return nil
}

func (s *RedisStore) Reset(ctx context.Context, id string) error {
	return s.client.Del(ctx, key(id)).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func encodeMessages(msgs []llm.Message) ([]interface{}, error) {
	values := make([]interface{}, 0, len(msgs))
	for _, m := range msgs {
		data, err := json.Marshal(m)
		if err != nil {
			return nil, fmt.Errorf("failed to encode message: %w", err)
		}
		values = append(values, string(data))
	}
	return values, nil
}

func decodeMessages(raw []string) ([]llm.Message, error) {
	msgs := make([]llm.Message, 0, len(raw))
	for _, r := range raw {
		var m llm.Message
		if err := json.Unmarshal([]byte(r), &m); err != nil {
			return nil, fmt.Errorf("failed to decode message: %w", err)
		}
		msgs = append(msgs, m)
	}
	return msgs, nil
}
