package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	pubsub "cloud.google.com/go/pubsub/v2"
)

// Envelope is the versioned wire format every analytics emission shares.
type Envelope struct {
	Version     int             `json:"version"`
	EventID     string          `json:"event_id"`
	Kind        Kind            `json:"kind"`
	Name        string          `json:"name,omitempty"`
	AnonymousID string          `json:"anonymous_id"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Payload     json.RawMessage `json:"payload,omitempty"`
}

const envelopeVersion = 1

// Sink delivers envelopes to the downstream analytics pipeline.
type Sink interface {
	Publish(ctx context.Context, envelope Envelope) error
}

type pubsubSink struct {
	publisher *pubsub.Publisher
}

// NewPubSubSink wraps a Pub/Sub publisher as an analytics sink.
func NewPubSubSink(publisher *pubsub.Publisher) Sink {
	return &pubsubSink{publisher: publisher}
}

func (s *pubsubSink) Publish(ctx context.Context, envelope Envelope) error {
	if s.publisher == nil {
		return errors.New("analytics publisher not initialized")
	}
	data, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	result := s.publisher.Publish(ctx, &pubsub.Message{
		Data: data,
		Attributes: map[string]string{
			"kind": string(envelope.Kind),
			"name": envelope.Name,
		},
	})
	_, err = result.Get(ctx)
	return err
}
