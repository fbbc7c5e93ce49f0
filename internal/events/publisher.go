package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/segmentio/kafka-go"
)

var (
	publishedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "activities_service",
		Subsystem: "events",
		Name:      "published_total",
		Help:      "Number of enrollment events delivered to Kafka.",
	}, []string{"event_type"})

	publishErrorCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "activities_service",
		Subsystem: "events",
		Name:      "publish_errors_total",
		Help:      "Number of enrollment events that could not be delivered.",
	}, []string{"event_type"})
)

func init() {
	prometheus.MustRegister(publishedCounter, publishErrorCounter)
}

// Publisher delivers enrollment events to a single Kafka topic. Delivery is
// best-effort: failures are logged and counted, never returned to the caller,
// so a broker outage cannot block a signup.
type Publisher struct {
	writer *kafka.Writer
	logger *log.Logger
}

// NewPublisher creates a Publisher writing to the given topic. Messages are
// keyed by activity name so events for one roster stay ordered.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Compression:  kafka.Snappy,
			Async:        false,
		},
		logger: log.New(log.Writer(), "[events] ", log.LstdFlags),
	}
}

// SignedUp emits a ParticipantSignedUp event.
func (p *Publisher) SignedUp(ctx context.Context, activity, email string) {
	p.publish(ctx, TypeSignedUp, activity, ParticipantSignedUp{
		EventID:    uuid.NewString(),
		Activity:   activity,
		Email:      email,
		OccurredAt: time.Now().UTC(),
	})
}

// Unregistered emits a ParticipantUnregistered event.
func (p *Publisher) Unregistered(ctx context.Context, activity, email string) {
	p.publish(ctx, TypeUnregistered, activity, ParticipantUnregistered{
		EventID:    uuid.NewString(),
		Activity:   activity,
		Email:      email,
		OccurredAt: time.Now().UTC(),
	})
}

func (p *Publisher) publish(ctx context.Context, eventType, activity string, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		p.logger.Printf("marshal error (event_type=%s): %v", eventType, err)
		publishErrorCounter.WithLabelValues(eventType).Inc()
		return
	}

	msg := kafka.Message{
		Key:   []byte(activity),
		Value: body,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventType)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Printf("publish error (event_type=%s, activity=%s): %v", eventType, activity, err)
		publishErrorCounter.WithLabelValues(eventType).Inc()
		return
	}
	publishedCounter.WithLabelValues(eventType).Inc()
}

// Close releases the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
