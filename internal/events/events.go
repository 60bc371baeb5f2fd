// Package events fans portfolio changes out to live subscribers.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"folio/internal/editor"
)

// Channel is the redis pub/sub channel carrying section updates.
const Channel = "portfolio_updates"

// SectionUpdated 通过 Redis Pub/Sub 转发给前端的消息，字段名与前端解析保持一致。
type SectionUpdated struct {
	Type      string    `json:"type"`
	Section   string    `json:"section"`
	Key       string    `json:"key"`
	Action    string    `json:"action"`
	ID        string    `json:"id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// FromChange converts an editor change into the wire message.
func FromChange(change editor.Change, at time.Time) SectionUpdated {
	return SectionUpdated{
		Type:      "section_updated",
		Section:   change.Section,
		Key:       change.Key,
		Action:    string(change.Action),
		ID:        change.ID,
		Timestamp: at.UTC(),
	}
}

// Publisher sends raw JSON payloads to subscribers.
type Publisher interface {
	Publish(ctx context.Context, payload []byte) error
}

// Subscriber delivers payloads until ctx is done.
type Subscriber interface {
	Subscribe(ctx context.Context) (<-chan []byte, func() error, error)
}

// RedisBus publishes and subscribes on Channel.
type RedisBus struct {
	client  redis.UniversalClient
	channel string
}

// NewRedisBus 使用给定 Redis 客户端构造消息总线。
func NewRedisBus(client redis.UniversalClient) *RedisBus {
	return &RedisBus{client: client, channel: Channel}
}

func (b *RedisBus) Publish(ctx context.Context, payload []byte) error {
	if err := b.client.Publish(ctx, b.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", b.channel, err)
	}
	return nil
}

// Subscribe returns a channel of payloads and a close func.
func (b *RedisBus) Subscribe(ctx context.Context) (<-chan []byte, func() error, error) {
	pubsub := b.client.Subscribe(ctx, b.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, fmt.Errorf("subscribe to %s: %w", b.channel, err)
	}

	out := make(chan []byte, 16)
	go func() {
		defer close(out)
		for msg := range pubsub.Channel() {
			select {
			case out <- []byte(msg.Payload):
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, pubsub.Close, nil
}

// PublishChange marshals change and publishes it.
func PublishChange(ctx context.Context, p Publisher, change editor.Change) error {
	payload, err := json.Marshal(FromChange(change, time.Now()))
	if err != nil {
		return fmt.Errorf("encode change: %w", err)
	}
	return p.Publish(ctx, payload)
}

// Nop discards everything. It is used when redis is not configured.
type Nop struct{}

func (Nop) Publish(context.Context, []byte) error { return nil }

func (Nop) Subscribe(ctx context.Context) (<-chan []byte, func() error, error) {
	ch := make(chan []byte)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, func() error { return nil }, nil
}
