package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/infrastructure/monitoring/logging"
	"github.com/sboesen2/Drug-Interaction-Dashboard/pkg/errors"
)

const (
	EventNetworkExported = "network.exported"
	EventSource          = "drugdash"
	SchemaVersion        = "1.0"
)

// EventEnvelope wraps every published payload.
type EventEnvelope struct {
	EventID       string            `json:"event_id"`
	EventType     string            `json:"event_type"`
	Source        string            `json:"source"`
	Timestamp     time.Time         `json:"timestamp"`
	SchemaVersion string            `json:"schema_version"`
	TraceID       string            `json:"trace_id,omitempty"`
	Payload       json.RawMessage   `json:"payload"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// NetworkExportedPayload announces a network document stored in object
// storage.
type NetworkExportedPayload struct {
	Drug       string    `json:"drug"`
	Key        string    `json:"key"`
	Size       int64     `json:"size"`
	URL        string    `json:"url"`
	ExpiresAt  time.Time `json:"expires_at"`
	Policy     string    `json:"policy"`
	Mechanisms int       `json:"mechanisms"`
	Drugs      int       `json:"drugs"`
}

// Publisher is the write side EventPublisher needs.
type Publisher interface {
	Publish(ctx context.Context, msg *Message) error
}

// EventRecorder observes publish outcomes. Implemented by the Prometheus
// collector.
type EventRecorder interface {
	RecordEvent(topic string, err error)
}

type nopEventRecorder struct{}

func (nopEventRecorder) RecordEvent(string, error) {}

// EventPublisher encodes dashboard events into envelopes on one topic.
type EventPublisher struct {
	producer Publisher
	topic    string
	logger   logging.Logger
	recorder EventRecorder
	newID    func() string
	now      func() time.Time
}

func NewEventPublisher(p Publisher, topic string, log logging.Logger, recorder EventRecorder) *EventPublisher {
	if recorder == nil {
		recorder = nopEventRecorder{}
	}
	return &EventPublisher{
		producer: p,
		topic:    topic,
		logger:   log.Named("events"),
		recorder: recorder,
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

// Topic returns the destination topic.
func (e *EventPublisher) Topic() string { return e.topic }

// PublishNetworkExported emits a network.exported event keyed by drug name,
// so every export of one drug lands on the same partition.
func (e *EventPublisher) PublishNetworkExported(ctx context.Context, p NetworkExportedPayload) error {
	env, err := e.envelope(ctx, EventNetworkExported, p)
	if err != nil {
		return err
	}
	value, err := json.Marshal(env)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode event")
	}

	err = e.producer.Publish(ctx, &Message{
		Topic: e.topic,
		Key:   []byte(p.Drug),
		Value: value,
		Headers: map[string]string{
			"event_type":     env.EventType,
			"schema_version": env.SchemaVersion,
		},
		Time: env.Timestamp,
	})
	e.recorder.RecordEvent(e.topic, err)
	if err != nil {
		return err
	}
	logging.FromContext(ctx, e.logger).Debug("Event published",
		logging.String("event_id", env.EventID),
		logging.String("event_type", env.EventType),
		logging.String(logging.FieldDrug, p.Drug))
	return nil
}

func (e *EventPublisher) envelope(ctx context.Context, eventType string, payload any) (*EventEnvelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode event payload")
	}
	return &EventEnvelope{
		EventID:       e.newID(),
		EventType:     eventType,
		Source:        EventSource,
		Timestamp:     e.now().UTC(),
		SchemaVersion: SchemaVersion,
		TraceID:       logging.RequestIDFromContext(ctx),
		Payload:       raw,
	}, nil
}

//Personal.AI order the ending
