// README: Notifier implementations: stdout log and redis pub/sub.
package notify

import (
	"context"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"

	"campuseats/internal/types"
)

// Notifier is a fire-and-forget message sink. Implementations deliver
// at-most-once; callers never depend on delivery success.
type Notifier interface {
	Send(ctx context.Context, message string) error
	SendToUser(ctx context.Context, userID types.ID, message string) error
}

// LogNotifier writes notifications to the process log. Used in dev mode and as
// the fallback when redis is not configured.
type LogNotifier struct{}

func (LogNotifier) Send(_ context.Context, message string) error {
	log.Printf("notify: %s", message)
	return nil
}

func (LogNotifier) SendToUser(_ context.Context, userID types.ID, message string) error {
	log.Printf("notify[%s]: %s", userID, message)
	return nil
}

// RedisNotifier publishes messages on per-user pub/sub channels; the push
// gateway subscribed to them owns actual delivery.
type RedisNotifier struct {
	rdb     *redis.Client
	channel string
}

func NewRedisNotifier(rdb *redis.Client, channel string) *RedisNotifier {
	return &RedisNotifier{rdb: rdb, channel: channel}
}

func (n *RedisNotifier) Send(ctx context.Context, message string) error {
	return n.rdb.Publish(ctx, n.channel+":broadcast", message).Err()
}

func (n *RedisNotifier) SendToUser(ctx context.Context, userID types.ID, message string) error {
	return n.rdb.Publish(ctx, fmt.Sprintf("%s:user:%s", n.channel, userID), message).Err()
}
