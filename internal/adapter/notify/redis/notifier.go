package redisnotify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/redis/go-redis/v9"

	"mapapylife/internal/app/ports"
)

const DefaultChannel = "mapapylife:zones:rebuilt"

type message struct {
	RunID string    `json:"run_id"`
	At    time.Time `json:"at"`
}

type Notifier struct {
	Client  *redis.Client
	Channel string
	Now     func() time.Time
	// RetryMin and RetryMax bound the resubscribe backoff.
	RetryMin time.Duration
	RetryMax time.Duration
}

var _ ports.RebuildNotifier = (*Notifier)(nil)

func New(client *redis.Client, channel string) *Notifier {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Notifier{Client: client, Channel: channel, Now: time.Now}
}

func (n *Notifier) PublishRebuilt(ctx context.Context, runID string) error {
	now := time.Now
	if n.Now != nil {
		now = n.Now
	}
	payload, err := encode(message{RunID: runID, At: now().UTC()})
	if err != nil {
		return err
	}
	if err := n.Client.Publish(ctx, n.Channel, payload).Err(); err != nil {
		return fmt.Errorf("publish rebuild %s: %w", runID, err)
	}
	return nil
}

const (
	defaultRetryMin = time.Second
	defaultRetryMax = 30 * time.Second
)

// Listen blocks until ctx is done, calling onRebuilt for every rebuild
// notification. A failed subscribe is retried with exponential backoff.
// Undecodable payloads are logged and dropped.
func (n *Notifier) Listen(ctx context.Context, onRebuilt func(runID string)) error {
	wait := n.retryMin()
	for {
		sub := n.Client.Subscribe(ctx, n.Channel)
		if _, err := sub.Receive(ctx); err != nil {
			_ = sub.Close()
			if ctx.Err() != nil {
				return nil
			}
			hlog.Warnf("notify: subscribe %s failed, retrying in %s: %v", n.Channel, wait, err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(wait):
			}
			wait = nextBackoff(wait, n.retryMax())
			continue
		}
		hlog.Infof("notify: listening for rebuilds on %s", n.Channel)
		n.consume(ctx, sub, onRebuilt)
		_ = sub.Close()
		if ctx.Err() != nil {
			return nil
		}
		wait = n.retryMin()
	}
}

func (n *Notifier) consume(ctx context.Context, sub *redis.PubSub, onRebuilt func(runID string)) {
	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			m, err := decode(msg.Payload)
			if err != nil {
				hlog.Warnf("notify: dropping payload %q: %v", msg.Payload, err)
				continue
			}
			onRebuilt(m.RunID)
		}
	}
}

func (n *Notifier) retryMin() time.Duration {
	if n.RetryMin > 0 {
		return n.RetryMin
	}
	return defaultRetryMin
}

func (n *Notifier) retryMax() time.Duration {
	if n.RetryMax > 0 {
		return n.RetryMax
	}
	return defaultRetryMax
}

func nextBackoff(cur, limit time.Duration) time.Duration {
	if next := cur * 2; next < limit {
		return next
	}
	return limit
}

func encode(m message) (string, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decode(payload string) (message, error) {
	var m message
	if err := json.Unmarshal([]byte(payload), &m); err != nil {
		return message{}, err
	}
	if m.RunID == "" {
		return message{}, fmt.Errorf("missing run_id")
	}
	return m, nil
}
