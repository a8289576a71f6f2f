package redisx

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// PropertiesPubSub broadcasts booking-list changes per property so other
// instances can drop their cached views.
type PropertiesPubSub struct {
	rdb     *redis.Client
	channel string
}

func NewPropertiesPubSub(rdb *redis.Client) *PropertiesPubSub {
	return &PropertiesPubSub{
		rdb:     rdb,
		channel: ChannelPropertiesChanged(),
	}
}

type propertyChangedMsg struct {
	Type       string `json:"type"`
	PropertyID string `json:"property_id"`
	TsUnix     int64  `json:"ts_unix"`
}

func (p *PropertiesPubSub) PublishPropertyChanged(ctx context.Context, propertyID string) error {
	msg := propertyChangedMsg{
		Type:       "property_changed",
		PropertyID: propertyID,
		TsUnix:     time.Now().Unix(),
	}

	b, _ := json.Marshal(msg)

	return p.rdb.Publish(ctx, p.channel, b).Err()
}

func (p *PropertiesPubSub) Subscribe(ctx context.Context, handler func(ctx context.Context, propertyID string)) error {
	sub := p.rdb.Subscribe(ctx, p.channel)
	defer sub.Close()

	ch := sub.Channel(redis.WithChannelSize(256))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			var ev propertyChangedMsg
			if err := json.Unmarshal([]byte(m.Payload), &ev); err == nil &&
				ev.PropertyID != "" {
				handler(ctx, ev.PropertyID)
			}
		}
	}
}
