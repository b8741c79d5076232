package middleware

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"digilist/pkg/kafka"
	"digilist/pkg/logger"
)

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	produce := m.ProducerMiddleware()
	consume := m.ConsumerMiddleware()

	ok := func(context.Context, kafka.Message) error { return nil }
	fail := func(context.Context, kafka.Message) error { return errors.New("boom") }

	_ = produce(context.Background(), kafka.Message{}, ok)
	_ = produce(context.Background(), kafka.Message{}, fail)
	_ = consume(context.Background(), kafka.Message{}, ok)
	_ = consume(context.Background(), kafka.Message{}, ok)

	s := m.Snapshot()
	if s.Published != 1 || s.PublishFailed != 1 {
		t.Errorf("unexpected producer counters %+v", s)
	}
	if s.Consumed != 2 || s.ConsumeFailed != 0 {
		t.Errorf("unexpected consumer counters %+v", s)
	}
}

func TestLoggingConsumerMiddleware_LogsFailures(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Output: &buf, Level: logger.DEBUG})

	mw := LoggingConsumerMiddleware(log)
	msg := kafka.Message{Key: "b1", Headers: map[string]string{kafka.HeaderEventID: "e1"}}
	err := mw(context.Background(), msg, func(context.Context, kafka.Message) error {
		return errors.New("store failed")
	})

	if err == nil {
		t.Fatal("expected error to pass through")
	}
	out := buf.String()
	if !strings.Contains(out, "Failed to process message") || !strings.Contains(out, `"event_id":"e1"`) {
		t.Errorf("unexpected log output %q", out)
	}
}
