// Package kafka publishes discovery events to Kafka.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/kailas-cloud/radar/internal/domain/geo"
	"github.com/kailas-cloud/radar/internal/metrics"
	"github.com/kailas-cloud/radar/internal/usecase/session"
)

// EventTypeDiscovered is the event_type of discovery events.
const EventTypeDiscovered = "target.discovered"

// Event is the JSON payload written to the discoveries topic.
type Event struct {
	EventID    string         `json:"event_id"`
	EventType  string         `json:"event_type"`
	SessionID  string         `json:"session_id"`
	PlayerID   string         `json:"player_id"`
	ItemID     int            `json:"item_id"`
	ItemName   string         `json:"item_name"`
	Coordinate geo.Coordinate `json:"coordinate"`
	Timestamp  time.Time      `json:"timestamp"`
}

// messageWriter is the subset of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher implements session.DiscoveryListener on top of a Kafka writer.
type Publisher struct {
	writer  messageWriter
	brokers []string
	topic   string
	logger  *zap.Logger
	newID   func() string
}

var _ session.DiscoveryListener = (*Publisher)(nil)

// NewPublisher creates a publisher writing to topic on brokers.
func NewPublisher(brokers []string, topic string, logger *zap.Logger) *Publisher {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
	}
	return newPublisher(w, brokers, topic, logger)
}

func newPublisher(w messageWriter, brokers []string, topic string, logger *zap.Logger) *Publisher {
	return &Publisher{
		writer:  w,
		brokers: brokers,
		topic:   topic,
		logger:  logger,
		newID:   uuid.NewString,
	}
}

// OnDiscovery publishes d keyed by player, so one player's events stay ordered.
func (p *Publisher) OnDiscovery(ctx context.Context, d session.Discovery) error {
	ev := Event{
		EventID:    p.newID(),
		EventType:  EventTypeDiscovered,
		SessionID:  d.SessionID,
		PlayerID:   d.PlayerID,
		ItemID:     d.Target.Item.ID,
		ItemName:   d.Target.Item.NameEN,
		Coordinate: d.Target.Coordinate,
		Timestamp:  d.At.UTC(),
	}
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(d.PlayerID),
		Value: value,
		Time:  ev.Timestamp,
	})
	if err != nil {
		metrics.EventsPublishedTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("publish %s to %s: %w", ev.EventID, p.topic, err)
	}

	metrics.EventsPublishedTotal.WithLabelValues("ok").Inc()
	p.logger.Debug("Discovery event published",
		zap.String("event_id", ev.EventID),
		zap.String("topic", p.topic),
		zap.String("player_id", ev.PlayerID),
		zap.Int("item_id", ev.ItemID),
	)
	return nil
}

// HealthCheck dials the brokers until one answers.
func (p *Publisher) HealthCheck(ctx context.Context) error {
	var errs []error
	for _, addr := range p.brokers {
		conn, err := kafka.DialContext(ctx, "tcp", addr)
		if err != nil {
			errs = append(errs, fmt.Errorf("dial %s: %w", addr, err))
			continue
		}
		_ = conn.Close()
		return nil
	}
	if len(errs) == 0 {
		return errors.New("no brokers configured")
	}
	return errors.Join(errs...)
}

// Close flushes pending messages and closes the writer.
func (p *Publisher) Close() error {
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("close writer for topic %s: %w", p.topic, err)
	}
	return nil
}
