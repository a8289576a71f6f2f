// Package messaging publishes booking lifecycle events to Kafka.
package messaging

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/IBM/sarama"
)

const (
	TypeBookingCreated   = "booking.created"
	TypeBookingCancelled = "booking.cancelled"
)

type Config struct {
	Brokers []string
	Topic   string
}

// BookingEvent is the wire shape of a booking lifecycle notification.
// TotalPrice carries the retained amount for cancellations.
type BookingEvent struct {
	Type       string    `json:"type"`
	BookingID  string    `json:"booking_id"`
	PropertyID string    `json:"property_id"`
	GuestID    string    `json:"guest_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	GuestCount int       `json:"guest_count"`
	TotalPrice float64   `json:"total_price"`
	Status     string    `json:"status"`
	TsUnix     int64     `json:"ts_unix"`
}

// Producer emits booking events to a single topic, keyed by booking ID so
// per-booking ordering is preserved.
type Producer struct {
	sp     sarama.SyncProducer
	topic  string
	logger *slog.Logger
}

func NewProducer(cfg Config, logger *slog.Logger) (*Producer, error) {
	const op = "messaging.NewProducer"

	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("%s: no brokers configured", op)
	}

	sc := sarama.NewConfig()
	sc.Producer.RequiredAcks = sarama.WaitForAll
	sc.Producer.Retry.Max = 5
	sc.Producer.Return.Successes = true

	sp, err := sarama.NewSyncProducer(cfg.Brokers, sc)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return &Producer{sp: sp, topic: cfg.Topic, logger: logger}, nil
}

func (p *Producer) Publish(ev BookingEvent) error {
	const op = "messaging.Producer.Publish"

	if ev.TsUnix == 0 {
		ev.TsUnix = time.Now().Unix()
	}

	b, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	_, _, err = p.sp.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(ev.BookingID),
		Value: sarama.ByteEncoder(b),
	})
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	if p.logger != nil {
		p.logger.Debug("booking event published",
			"type", ev.Type, "booking_id", ev.BookingID, "property_id", ev.PropertyID)
	}

	return nil
}

func (p *Producer) Close() error {
	if p == nil || p.sp == nil {
		return nil
	}
	return p.sp.Close()
}
