package kafka

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	kafka_config "digilist/pkg/kafka/config"
	"digilist/pkg/logger"

	"github.com/segmentio/kafka-go"
)

const maxDLQBackoff = 30 * time.Second

// messageReader is the part of *kafka.Reader the consumer uses.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Consumer struct {
	reader     messageReader
	dlqWriter  messageWriter
	topic      string
	groupID    string
	maxRetries int
	backoff    time.Duration
	handler    MessageHandler
	log        *logger.Logger
	middleware []ConsumerMiddleware
	closed     bool
	mu         sync.RWMutex
	wg         sync.WaitGroup
}

type ConsumerMiddleware func(ctx context.Context, msg Message, next MessageHandler) error

func NewConsumer(cfg *kafka_config.Config, topic string, groupID string, dlqTopic string, handler MessageHandler, log *logger.Logger) (*Consumer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}

	if topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}

	if groupID == "" {
		return nil, fmt.Errorf("group ID cannot be empty")
	}

	if handler == nil {
		return nil, fmt.Errorf("message handler cannot be nil")
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:           cfg.Brokers,
		Topic:             topic,
		GroupID:           groupID,
		MinBytes:          cfg.ConsumerMinBytes,
		MaxBytes:          cfg.ConsumerMaxBytes,
		MaxWait:           cfg.ConsumerMaxWait,
		CommitInterval:    cfg.ConsumerCommitInterval,
		HeartbeatInterval: cfg.ConsumerHeartbeatInterval,
		SessionTimeout:    cfg.ConsumerSessionTimeout,
		RebalanceTimeout:  cfg.ConsumerRebalanceTimeout,
		StartOffset:       cfg.ConsumerStartOffset,
		Logger:            kafka.LoggerFunc(func(string, ...any) {}),
		ErrorLogger:       errorLogger(log),
	})

	var dlqWriter messageWriter
	if dlqTopic != "" {
		dlqWriter = newDLQWriter(cfg, dlqTopic, compressionCodec(cfg.ProducerCompression), log)
	}

	return newConsumer(reader, dlqWriter, topic, groupID, cfg.ConsumerMaxRetries, handler, log), nil
}

func newConsumer(reader messageReader, dlqWriter messageWriter, topic, groupID string, maxRetries int, handler MessageHandler, log *logger.Logger) *Consumer {
	return &Consumer{
		reader:     reader,
		dlqWriter:  dlqWriter,
		topic:      topic,
		groupID:    groupID,
		maxRetries: maxRetries,
		backoff:    200 * time.Millisecond,
		handler:    handler,
		log:        log,
		middleware: make([]ConsumerMiddleware, 0),
	}
}

func (c *Consumer) Use(middleware ConsumerMiddleware) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.middleware = append(c.middleware, middleware)
}

// Start consumes until ctx is cancelled. An offset is committed only once its
// message is handled or parked on the DLQ.
func (c *Consumer) Start(ctx context.Context) error {
	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return ErrConsumerClosed
	}
	c.mu.RUnlock()

	c.wg.Add(1)
	defer c.wg.Done()

	handler := c.chain()

	for {
		kafkaMsg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return ctx.Err()
			}
			if errors.Is(err, io.EOF) {
				return ErrConsumerClosed
			}
			c.log.Error("Failed to fetch message", "topic", c.topic, "error", err)
			if !sleep(ctx, time.Second) {
				return ctx.Err()
			}
			continue
		}

		commit, err := c.processMessage(ctx, handler, fromKafkaMessage(kafkaMsg))
		if err != nil {
			c.log.Error("Failed to process message",
				"topic", kafkaMsg.Topic,
				"partition", kafkaMsg.Partition,
				"offset", kafkaMsg.Offset,
				"error", err,
			)
		}
		if !commit {
			// Commits are cumulative, so nothing past this offset may be
			// committed either. The message is redelivered on restart.
			return ctx.Err()
		}

		if err := c.reader.CommitMessages(ctx, kafkaMsg); err != nil {
			c.log.Error("Failed to commit offset", "topic", kafkaMsg.Topic, "offset", kafkaMsg.Offset, "error", err)
		}
	}
}

func (c *Consumer) chain() MessageHandler {
	c.mu.RLock()
	defer c.mu.RUnlock()

	handler := c.handler
	for i := len(c.middleware) - 1; i >= 0; i-- {
		middleware := c.middleware[i]
		next := handler
		handler = func(ctx context.Context, m Message) error {
			return middleware(ctx, m, next)
		}
	}
	return handler
}

// processMessage retries transient failures in place and parks everything
// else on the DLQ. commit reports whether the offset may be committed.
func (c *Consumer) processMessage(ctx context.Context, handler MessageHandler, msg Message) (bool, error) {
	for {
		err := handler(ctx, msg)
		if err == nil {
			return true, nil
		}

		retries := msg.GetRetryCount()
		if ShouldRetry(err, retries, c.maxRetries) {
			msg.IncrementRetryCount()
			c.log.Warn("Retrying message",
				"event_id", msg.GetEventID(),
				"attempt", retries+1,
				"max_retries", c.maxRetries,
				"error", err,
			)
			if !sleep(ctx, c.backoff*time.Duration(retries+1)) {
				return false, ctx.Err()
			}
			continue
		}

		if c.dlqWriter == nil {
			c.log.Error("Dropping message without a DLQ", "event_id", msg.GetEventID(), "error", err)
			return true, err
		}
		if !c.park(ctx, msg, retries, err) {
			return false, err
		}
		return true, err
	}
}

// park writes msg to the DLQ, retrying until it succeeds or ctx is done.
func (c *Consumer) park(ctx context.Context, msg Message, retries int, cause error) bool {
	extra := map[string]string{HeaderDLQGroup: c.groupID, HeaderRetryCount: strconv.Itoa(retries)}
	for attempt := 1; ; attempt++ {
		dlqErr := writeDLQ(ctx, c.dlqWriter, msg, c.topic, cause, extra)
		if dlqErr == nil {
			c.log.Warn("Message sent to DLQ", "event_id", msg.GetEventID(), "retries", retries, "error", cause)
			return true
		}

		c.log.Error("Failed to send message to DLQ",
			"event_id", msg.GetEventID(),
			"attempt", attempt,
			"error", dlqErr,
			"original_error", cause,
		)
		if !sleep(ctx, min(c.backoff*time.Duration(attempt), maxDLQBackoff)) {
			return false
		}
	}
}

func (c *Consumer) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	var err error
	if c.reader != nil {
		err = c.reader.Close()
	}

	// Start returns once the reader is closed or its context is done.
	c.wg.Wait()

	if c.dlqWriter != nil {
		if dlqErr := c.dlqWriter.Close(); err == nil {
			err = dlqErr
		}
	}

	return err
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
