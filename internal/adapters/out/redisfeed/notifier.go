// Package redisfeed shares document changes between fleetops instances over
// Redis pub/sub, one channel per collection.
package redisfeed

import (
	"context"
	"encoding/json"
	"log/slog"

	"fleetops/internal/core/ports"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const channelPrefix = "fleetops:changes:"

// Notifier implements docstore.Notifier on Redis pub/sub. Delivery is at most
// once: a subscriber that is not connected when a change is published misses it.
type Notifier struct {
	c      *redis.Client
	logger *slog.Logger
}

// New connects to the Redis server at addr.
func New(addr string, logger *slog.Logger) *Notifier {
	return &Notifier{
		c: redis.NewClient(&redis.Options{
			Addr: addr,
		}),
		logger: logger.With("component", "redis_feed"),
	}
}

// Ping checks the connection.
func (n *Notifier) Ping(ctx context.Context) error {
	if err := n.c.Ping(ctx).Err(); err != nil {
		return errors.Wrap(err, "redis ping")
	}
	return nil
}

// Close releases the client.
func (n *Notifier) Close() error {
	return n.c.Close()
}

type message struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
}

// Publish implements ports.ChangePublisher.
func (n *Notifier) Publish(ctx context.Context, changes ...ports.Change) error {
	for _, change := range changes {
		payload, err := json.Marshal(message{ID: change.ID, Kind: change.Kind.String()})
		if err != nil {
			return errors.Wrap(err, "encode change")
		}
		if err := n.c.Publish(ctx, channelPrefix+change.Collection, payload).Err(); err != nil {
			return errors.Wrap(err, "redis publish")
		}
	}
	return nil
}

// Subscribe implements ports.ChangeFeed. It returns once the subscription is
// confirmed by the server.
func (n *Notifier) Subscribe(ctx context.Context, collection string) (<-chan ports.Change, error) {
	pubsub := n.c.Subscribe(ctx, channelPrefix+collection)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, errors.Wrap(err, "redis subscribe")
	}

	out := make(chan ports.Change, 64)
	go func() {
		defer close(out)
		defer pubsub.Close()

		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				var m message
				if err := json.Unmarshal([]byte(msg.Payload), &m); err != nil || m.ID == "" {
					n.logger.Warn("skipping malformed change", "channel", msg.Channel, "payload", msg.Payload)
					continue
				}
				select {
				case out <- ports.Change{Collection: collection, ID: m.ID, Kind: ports.ParseChangeKind(m.Kind)}:
				default:
				}
			}
		}
	}()

	return out, nil
}
