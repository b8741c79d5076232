package kafka

import (
	"context"
	"fmt"
	"sync"
	"time"

	kafka_config "digilist/pkg/kafka/config"
	"digilist/pkg/logger"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/compress"
)

// messageWriter is the part of *kafka.Writer the producer and consumer use.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer wraps kafka-go writer with middleware and a dead letter queue
type Producer struct {
	writer     messageWriter
	dlqWriter  messageWriter
	topic      string
	dlqTopic   string
	log        *logger.Logger
	middleware []ProducerMiddleware
	closed     bool
	mu         sync.RWMutex
}

// ProducerMiddleware allows intercepting publish operations
type ProducerMiddleware func(ctx context.Context, msg Message, next func(ctx context.Context, msg Message) error) error

func NewProducer(cfg *kafka_config.Config, topic string, dlqTopic string, log *logger.Logger) (*Producer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}

	if topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}

	compression := compressionCodec(cfg.ProducerCompression)

	var requiredAcks kafka.RequiredAcks
	switch cfg.ProducerRequireAcks {
	case 0:
		requiredAcks = kafka.RequireNone
	case 1:
		requiredAcks = kafka.RequireOne
	default:
		requiredAcks = kafka.RequireAll
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{}, // Hash by key for ordering
		RequiredAcks: requiredAcks,
		Compression:  compression,
		MaxAttempts:  cfg.ProducerMaxAttempts,
		BatchTimeout: cfg.ProducerBatchTimeout,
		Async:        cfg.ProducerAsync,
		Logger:       kafka.LoggerFunc(func(string, ...any) {}),
		ErrorLogger:  errorLogger(log),
	}

	var dlqWriter messageWriter
	if dlqTopic != "" {
		dlqWriter = newDLQWriter(cfg, dlqTopic, compression, log)
	}

	return newProducer(writer, dlqWriter, topic, dlqTopic, log), nil
}

func newProducer(writer, dlqWriter messageWriter, topic, dlqTopic string, log *logger.Logger) *Producer {
	return &Producer{
		writer:     writer,
		dlqWriter:  dlqWriter,
		topic:      topic,
		dlqTopic:   dlqTopic,
		log:        log,
		middleware: make([]ProducerMiddleware, 0),
	}
}

func (p *Producer) Use(middleware ProducerMiddleware) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.middleware = append(p.middleware, middleware)
}

func (p *Producer) Publish(ctx context.Context, msg Message) error {
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return ErrProducerClosed
	}
	chain := p.middleware
	p.mu.RUnlock()

	if msg.Key == "" {
		return ErrEmptyKey
	}
	if len(msg.Value) == 0 {
		return ErrEmptyValue
	}
	if msg.Topic == "" {
		msg.Topic = p.topic
	}

	handler := p.publishInternal
	for i := len(chain) - 1; i >= 0; i-- {
		middleware := chain[i]
		next := handler
		handler = func(ctx context.Context, m Message) error {
			return middleware(ctx, m, next)
		}
	}

	return handler(ctx, msg)
}

func (p *Producer) publishInternal(ctx context.Context, msg Message) error {
	err := p.writer.WriteMessages(ctx, toKafkaMessage(msg, msg.Timestamp))
	if err == nil {
		return nil
	}

	if p.dlqWriter != nil {
		if dlqErr := writeDLQ(ctx, p.dlqWriter, msg, p.topic, err, nil); dlqErr != nil {
			return fmt.Errorf("failed to send to DLQ: %v (original error: %w)", dlqErr, err)
		}
		p.log.Warn("Message sent to DLQ after publish failure",
			"topic", p.topic,
			"dlq_topic", p.dlqTopic,
			"key", msg.Key,
			"event_id", msg.GetEventID(),
			"error", err,
		)
	}
	return err
}

func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	var err error
	if p.writer != nil {
		err = p.writer.Close()
	}
	if p.dlqWriter != nil {
		if dlqErr := p.dlqWriter.Close(); err == nil {
			err = dlqErr
		}
	}

	return err
}

func newDLQWriter(cfg *kafka_config.Config, dlqTopic string, compression kafka.Compression, log *logger.Logger) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        dlqTopic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Compression:  compression,
		MaxAttempts:  3,
		Logger:       kafka.LoggerFunc(func(string, ...any) {}),
		ErrorLogger:  errorLogger(log),
	}
}

// writeDLQ copies msg with failure metadata onto the dead letter writer.
func writeDLQ(ctx context.Context, w messageWriter, msg Message, topic string, cause error, extra map[string]string) error {
	headers := make(map[string]string, len(msg.Headers)+3+len(extra))
	for k, v := range msg.Headers {
		headers[k] = v
	}
	headers[HeaderOriginalTopic] = topic
	headers[HeaderDLQError] = cause.Error()
	headers[HeaderDLQTimestamp] = time.Now().Format(time.RFC3339)
	for k, v := range extra {
		headers[k] = v
	}
	msg.Headers = headers

	return w.WriteMessages(ctx, toKafkaMessage(msg, time.Now()))
}

func toKafkaMessage(msg Message, ts time.Time) kafka.Message {
	km := kafka.Message{
		Key:   []byte(msg.Key),
		Value: msg.Value,
		Time:  ts,
	}
	for k, v := range msg.Headers {
		km.Headers = append(km.Headers, kafka.Header{Key: k, Value: []byte(v)})
	}
	return km
}

func fromKafkaMessage(km kafka.Message) Message {
	msg := Message{
		Key:       string(km.Key),
		Value:     km.Value,
		Headers:   make(map[string]string, len(km.Headers)),
		Topic:     km.Topic,
		Partition: km.Partition,
		Offset:    km.Offset,
		Timestamp: km.Time,
	}
	for _, header := range km.Headers {
		msg.Headers[header.Key] = string(header.Value)
	}
	return msg
}

func compressionCodec(name string) kafka.Compression {
	switch name {
	case "gzip":
		return compress.Gzip
	case "lz4":
		return compress.Lz4
	case "zstd":
		return compress.Zstd
	case "none":
		return compress.None
	default:
		return compress.Snappy
	}
}

func errorLogger(log *logger.Logger) kafka.Logger {
	return kafka.LoggerFunc(func(msg string, args ...any) {
		log.Error("kafka client error", "detail", fmt.Sprintf(msg, args...))
	})
}
