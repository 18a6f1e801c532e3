package editor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/debemdeboas/oremos-juntos/internal/content"
	"github.com/redis/go-redis/v9"
)

const defaultBufferTTL = 24 * time.Hour

// RedisRepository shares buffers between server instances. Each buffer is a
// JSON value whose expiry is refreshed on every save.
type RedisRepository struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisRepository(redisURL string, ttl time.Duration) (*RedisRepository, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewRedisRepositoryWithClient(client, ttl), nil
}

func NewRedisRepositoryWithClient(client *redis.Client, ttl time.Duration) *RedisRepository {
	if ttl <= 0 {
		ttl = defaultBufferTTL
	}
	return &RedisRepository{
		client: client,
		prefix: "oremos:buffer:",
		ttl:    ttl,
	}
}

func (r *RedisRepository) key(id BufferID) string {
	return r.prefix + string(id)
}

func (r *RedisRepository) Create(ctx context.Context, doc content.Document, version uint64) (*Buffer, error) {
	buf := NewBuffer(doc, version)
	if err := r.write(ctx, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func (r *RedisRepository) Get(ctx context.Context, id BufferID) (*Buffer, error) {
	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", ErrBufferNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("lookup edit buffer: %w", err)
	}

	var buf Buffer
	if err := json.Unmarshal(data, &buf); err != nil {
		return nil, fmt.Errorf("unmarshal edit buffer: %w", err)
	}
	return &buf, nil
}

// Save refuses buffers that expired, were deleted or were saved by someone
// else in the meantime. The key is watched so the check and the write commit
// together.
func (r *RedisRepository) Save(ctx context.Context, buf *Buffer) error {
	key := r.key(buf.ID)
	next := *buf
	next.Revision++
	data, err := json.Marshal(&next)
	if err != nil {
		return fmt.Errorf("marshal edit buffer: %w", err)
	}

	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		if err := r.check(ctx, tx, buf); err != nil {
			return err
		}
		_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, r.ttl)
			return nil
		})
		return err
	}, key)
	if err != nil {
		return r.txError("save", buf, err)
	}
	buf.Revision = next.Revision
	return nil
}

func (r *RedisRepository) Drop(ctx context.Context, buf *Buffer) error {
	key := r.key(buf.ID)
	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		if err := r.check(ctx, tx, buf); err != nil {
			return err
		}
		_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			return nil
		})
		return err
	}, key)
	if err != nil {
		return r.txError("drop", buf, err)
	}
	return nil
}

// check compares the stored revision of buf inside a watched transaction.
func (r *RedisRepository) check(ctx context.Context, tx *redis.Tx, buf *Buffer) error {
	data, err := tx.Get(ctx, r.key(buf.ID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return fmt.Errorf("%w: %s", ErrBufferNotFound, buf.ID)
	}
	if err != nil {
		return err
	}

	var stored struct {
		Revision uint64 `json:"revision"`
	}
	if err := json.Unmarshal(data, &stored); err != nil {
		return fmt.Errorf("unmarshal edit buffer: %w", err)
	}
	if stored.Revision != buf.Revision {
		return conflict(buf.ID, stored.Revision, buf.Revision)
	}
	return nil
}

func (r *RedisRepository) txError(op string, buf *Buffer, err error) error {
	switch {
	case errors.Is(err, redis.TxFailedErr):
		return fmt.Errorf("%w: %s touched during %s", ErrBufferConflict, buf.ID, op)
	case errors.Is(err, ErrBufferNotFound), errors.Is(err, ErrBufferConflict):
		return err
	}
	return fmt.Errorf("%s edit buffer: %w", op, err)
}

func (r *RedisRepository) Delete(ctx context.Context, id BufferID) error {
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		return fmt.Errorf("delete edit buffer: %w", err)
	}
	return nil
}

func (r *RedisRepository) write(ctx context.Context, buf *Buffer) error {
	data, err := json.Marshal(buf)
	if err != nil {
		return fmt.Errorf("marshal edit buffer: %w", err)
	}
	if err := r.client.Set(ctx, r.key(buf.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("save edit buffer: %w", err)
	}
	return nil
}

func (r *RedisRepository) Close() error {
	return r.client.Close()
}
