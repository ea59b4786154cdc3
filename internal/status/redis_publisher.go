// Package status mirrors the active task's state to Redis so external
// displays can poll it. The durable task record never lives here; the key
// only ever holds the latest snapshot.
package status

import (
	"context"
	"encoding/json"

	"github.com/redis/rueidis"

	"flowtime-logger.com/flowtime-logger/internal/services"
)

type RedisPublisher struct {
	client rueidis.Client
	key    string
}

func NewRedisPublisher(client rueidis.Client, key string) *RedisPublisher {
	return &RedisPublisher{
		client: client,
		key:    key,
	}
}

func (p *RedisPublisher) Publish(ctx context.Context, snapshot services.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	cmd := p.client.B().Set().Key(p.key).Value(string(data)).Build()
	return p.client.Do(ctx, cmd).Error()
}
