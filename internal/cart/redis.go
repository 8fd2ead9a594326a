package cart

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// SnapshotKey is the fixed namespace under which the serialized cart lives.
const SnapshotKey = "cart-storage"

// RedisSnapshotter persists cart snapshots as JSON under a single Redis key.
// Snapshots carry no TTL; a cart survives until it is cleared.
type RedisSnapshotter struct {
	rdb *redis.Client
	key string
}

// NewRedisSnapshotter creates a snapshotter on the given client. An empty
// key falls back to SnapshotKey.
func NewRedisSnapshotter(rdb *redis.Client, key string) *RedisSnapshotter {
	if key == "" {
		key = SnapshotKey
	}
	return &RedisSnapshotter{rdb: rdb, key: key}
}

func (r *RedisSnapshotter) Save(ctx context.Context, snap Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal cart snapshot: %w", err)
	}
	if err := r.rdb.Set(ctx, r.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to write cart snapshot: %w", err)
	}
	return nil
}

func (r *RedisSnapshotter) Load(ctx context.Context) (*Snapshot, error) {
	payload, err := r.rdb.Get(ctx, r.key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cart snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart snapshot: %w", err)
	}
	return &snap, nil
}
