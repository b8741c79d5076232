package middleware

import (
	"context"
	"sync/atomic"
	"time"

	"digilist/pkg/kafka"
	"digilist/pkg/logger"
)

// Metrics counts Kafka operations for one process.
type Metrics struct {
	published       atomic.Int64
	publishFailed   atomic.Int64
	publishDuration atomic.Int64 // nanoseconds

	consumed        atomic.Int64
	consumeFailed   atomic.Int64
	consumeDuration atomic.Int64 // nanoseconds
}

type Snapshot struct {
	Published          int64
	PublishFailed      int64
	AvgPublishDuration time.Duration
	Consumed           int64
	ConsumeFailed      int64
	AvgConsumeDuration time.Duration
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) Snapshot() Snapshot {
	s := Snapshot{
		Published:     m.published.Load(),
		PublishFailed: m.publishFailed.Load(),
		Consumed:      m.consumed.Load(),
		ConsumeFailed: m.consumeFailed.Load(),
	}
	if n := s.Published + s.PublishFailed; n > 0 {
		s.AvgPublishDuration = time.Duration(m.publishDuration.Load() / n)
	}
	if n := s.Consumed + s.ConsumeFailed; n > 0 {
		s.AvgConsumeDuration = time.Duration(m.consumeDuration.Load() / n)
	}
	return s
}

// Log writes the current counters as one structured record.
func (m *Metrics) Log(log *logger.Logger) {
	s := m.Snapshot()
	log.Info("Kafka metrics",
		"published", s.Published,
		"publish_failed", s.PublishFailed,
		"avg_publish_duration", s.AvgPublishDuration,
		"consumed", s.Consumed,
		"consume_failed", s.ConsumeFailed,
		"avg_consume_duration", s.AvgConsumeDuration,
	)
}

func (m *Metrics) ProducerMiddleware() kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()
		err := next(ctx, msg)

		m.publishDuration.Add(int64(time.Since(start)))
		if err != nil {
			m.publishFailed.Add(1)
		} else {
			m.published.Add(1)
		}
		return err
	}
}

func (m *Metrics) ConsumerMiddleware() kafka.ConsumerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next kafka.MessageHandler) error {
		start := time.Now()
		err := next(ctx, msg)

		m.consumeDuration.Add(int64(time.Since(start)))
		if err != nil {
			m.consumeFailed.Add(1)
		} else {
			m.consumed.Add(1)
		}
		return err
	}
}
