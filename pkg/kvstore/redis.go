package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/tair/warehouse-inbound/pkg/logger"
)

// RedisStore keeps one Redis hash per record. Attribute values are
// JSON-encoded hash fields, so a partial Update maps directly onto HSET of
// the named fields. Collections are scoped by key prefix.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a store for one collection, e.g. prefix "product".
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Logger.Info().
		Str("redis_addr", addr).
		Msg("Connected to Redis")

	return client, nil
}

func (s *RedisStore) key(k string) string {
	return s.prefix + ":" + k
}

func (s *RedisStore) Get(ctx context.Context, key string) (Record, error) {
	raw, err := s.client.HGetAll(ctx, s.key(key)).Result()
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, ErrNotFound
	}
	return decodeHash(raw)
}

func (s *RedisStore) Put(ctx context.Context, key string, rec Record) error {
	fields, err := encodeHash(rec)
	if err != nil {
		return err
	}

	// Full replacement: drop attributes from any prior version of the record.
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.key(key))
	pipe.HSet(ctx, s.key(key), fields)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *RedisStore) Update(ctx context.Context, key string, fields Record) error {
	exists, err := s.client.Exists(ctx, s.key(key)).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return ErrNotFound
	}

	encoded, err := encodeHash(fields)
	if err != nil {
		return err
	}
	return s.client.HSet(ctx, s.key(key), encoded).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.key(key)).Err()
}

func (s *RedisStore) Scan(ctx context.Context) ([]Record, error) {
	var records []Record
	var cursor uint64

	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.prefix+":*", 100).Result()
		if err != nil {
			return nil, err
		}
		for _, k := range keys {
			raw, err := s.client.HGetAll(ctx, k).Result()
			if err != nil {
				return nil, err
			}
			if len(raw) == 0 {
				// Deleted between SCAN and HGETALL
				continue
			}
			rec, err := decodeHash(raw)
			if err != nil {
				return nil, err
			}
			records = append(records, rec)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}

	return records, nil
}

func encodeHash(rec Record) (map[string]any, error) {
	fields := make(map[string]any, len(rec))
	for name, value := range rec {
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode attribute %s: %w", name, err)
		}
		fields[name] = string(raw)
	}
	return fields, nil
}

func decodeHash(raw map[string]string) (Record, error) {
	rec := make(Record, len(raw))
	for name, value := range raw {
		var v any
		if err := json.Unmarshal([]byte(value), &v); err != nil {
			// Values written by other tooling may be plain strings
			if strings.HasPrefix(value, "{") || strings.HasPrefix(value, "[") {
				return nil, fmt.Errorf("failed to decode attribute %s: %w", name, err)
			}
			v = value
		}
		rec[name] = v
	}
	return rec, nil
}
