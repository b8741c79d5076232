package events

import (
	"context"
	"errors"
	"testing"

	"digilist/pkg/kafka"
	"digilist/pkg/middleware"
	"digilist/pkg/model"
)

type fakeProducer struct {
	msgs []kafka.Message
	err  error
}

func (f *fakeProducer) Publish(ctx context.Context, msg kafka.Message) error {
	f.msgs = append(f.msgs, msg)
	return f.err
}

func TestPublish(t *testing.T) {
	fp := &fakeProducer{}
	p := &kafkaPublisher{producer: fp}

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-42")
	event := model.BookingEvent{
		Type:      model.EventBookingStatusChanged,
		BookingID: "b-1",
		ListingID: "l-1",
		Status:    model.BookingCancelled,
		Total:     625,
	}

	if err := p.Publish(ctx, event); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if len(fp.msgs) != 1 {
		t.Fatalf("expected one message, got %d", len(fp.msgs))
	}

	msg := fp.msgs[0]
	if msg.Key != "b-1" {
		t.Errorf("expected booking id as key, got %q", msg.Key)
	}
	if msg.GetEventType() != model.EventBookingStatusChanged {
		t.Errorf("unexpected event type %q", msg.GetEventType())
	}
	if msg.GetCorrelationID() != "req-42" {
		t.Errorf("expected request id as correlation id, got %q", msg.GetCorrelationID())
	}
	if msg.GetEventID() == "" {
		t.Error("expected an event id")
	}
	if src, _ := msg.GetHeader(kafka.HeaderSource); src != Source {
		t.Errorf("unexpected source %q", src)
	}

	var decoded model.BookingEvent
	if err := msg.DecodeValue(&decoded); err != nil {
		t.Fatalf("DecodeValue() error = %v", err)
	}
	if decoded != event {
		t.Errorf("round trip mismatch: %+v != %+v", decoded, event)
	}
}

func TestPublish_ProducerError(t *testing.T) {
	wantErr := errors.New("broker down")
	p := &kafkaPublisher{producer: &fakeProducer{err: wantErr}}

	if err := p.Publish(context.Background(), model.BookingEvent{BookingID: "b-1"}); !errors.Is(err, wantErr) {
		t.Errorf("expected producer error, got %v", err)
	}
}
