package kafka_config

import "time"

const (
	DefaultKafkaBrokers = "localhost:9092"

	DefaultBookingEventsTopic    = "digilist.bookings.events"
	DefaultBookingEventsDLQTopic = "digilist.bookings.events.dlq"
	DefaultAuditConsumerGroup    = "digilist-audit"

	// Booking events are small and infrequent; acks from every replica keep a
	// status change from being lost on leader failover.
	DefaultProducerMaxAttempts  = 5
	DefaultProducerBatchTimeout = 5 * time.Millisecond
	DefaultProducerRequireAcks  = -1
	DefaultProducerCompression  = "snappy"
	DefaultProducerAsync        = false

	// A new audit group starts from the oldest event so the trail has no gap.
	DefaultConsumerStartOffset       = -2
	DefaultConsumerMinBytes          = 1
	DefaultConsumerMaxBytes          = 1 * 1024 * 1024 // 1MB
	DefaultConsumerMaxWait           = 500 * time.Millisecond
	DefaultConsumerCommitInterval    = 0 // synchronous commits
	DefaultConsumerHeartbeatInterval = 3 * time.Second
	DefaultConsumerSessionTimeout    = 30 * time.Second
	DefaultConsumerRebalanceTimeout  = 60 * time.Second
	DefaultConsumerMaxRetries        = 3

	DefaultEnableMiddleware = true
)
