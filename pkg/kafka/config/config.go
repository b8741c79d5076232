package kafka_config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"digilist/pkg/logger"

	"github.com/segmentio/kafka-go"
)

// Config holds the Kafka settings shared by the bookings producer and the
// audit consumer.
type Config struct {
	Brokers []string

	BookingEventsTopic string
	// BookingEventsDLQTopic parks events that could not be published or
	// consumed. Empty disables the DLQ.
	BookingEventsDLQTopic string
	AuditConsumerGroup    string

	// Producer configuration
	ProducerMaxAttempts  int
	ProducerBatchTimeout time.Duration
	ProducerRequireAcks  int    // -1 = all, 0 = none, 1 = leader only
	ProducerCompression  string // "none", "gzip", "snappy", "lz4", "zstd"
	ProducerAsync        bool

	// Consumer configuration
	ConsumerStartOffset       int64 // -1 = newest, -2 = oldest
	ConsumerMinBytes          int
	ConsumerMaxBytes          int
	ConsumerMaxWait           time.Duration
	ConsumerCommitInterval    time.Duration // 0 commits synchronously
	ConsumerHeartbeatInterval time.Duration
	ConsumerSessionTimeout    time.Duration
	ConsumerRebalanceTimeout  time.Duration
	ConsumerMaxRetries        int

	// Middleware configuration
	EnableMiddleware bool
}

// FromEnv creates a Kafka config from environment variables without validating it.
func FromEnv() *Config {
	brokers := ParseBrokers(getEnvStr(EnvKafkaBrokers, DefaultKafkaBrokers))

	return &Config{
		Brokers: brokers,

		BookingEventsTopic:    getEnvStr(EnvBookingEventsTopic, DefaultBookingEventsTopic),
		BookingEventsDLQTopic: getEnvStr(EnvBookingEventsDLQTopic, DefaultBookingEventsDLQTopic),
		AuditConsumerGroup:    getEnvStr(EnvAuditConsumerGroup, DefaultAuditConsumerGroup),

		ProducerMaxAttempts:  getEnvInt(EnvKafkaProducerMaxAttempts, DefaultProducerMaxAttempts),
		ProducerBatchTimeout: getEnvDuration(EnvKafkaProducerBatchTimeout, DefaultProducerBatchTimeout),
		ProducerRequireAcks:  getEnvInt(EnvKafkaProducerRequireAcks, DefaultProducerRequireAcks),
		ProducerCompression:  getEnvStr(EnvKafkaProducerCompression, DefaultProducerCompression),
		ProducerAsync:        getEnvBool(EnvKafkaProducerAsync, DefaultProducerAsync),

		ConsumerStartOffset:       getEnvInt64(EnvKafkaConsumerStartOffset, DefaultConsumerStartOffset),
		ConsumerMinBytes:          getEnvInt(EnvKafkaConsumerMinBytes, DefaultConsumerMinBytes),
		ConsumerMaxBytes:          getEnvInt(EnvKafkaConsumerMaxBytes, DefaultConsumerMaxBytes),
		ConsumerMaxWait:           getEnvDuration(EnvKafkaConsumerMaxWait, DefaultConsumerMaxWait),
		ConsumerCommitInterval:    getEnvDuration(EnvKafkaConsumerCommitInterval, DefaultConsumerCommitInterval),
		ConsumerHeartbeatInterval: getEnvDuration(EnvKafkaConsumerHeartbeatInterval, DefaultConsumerHeartbeatInterval),
		ConsumerSessionTimeout:    getEnvDuration(EnvKafkaConsumerSessionTimeout, DefaultConsumerSessionTimeout),
		ConsumerRebalanceTimeout:  getEnvDuration(EnvKafkaConsumerRebalanceTimeout, DefaultConsumerRebalanceTimeout),
		ConsumerMaxRetries:        getEnvInt(EnvKafkaConsumerMaxRetries, DefaultConsumerMaxRetries),

		EnableMiddleware: getEnvBool(EnvKafkaEnableMiddleware, DefaultEnableMiddleware),
	}
}

// Load reads and validates the Kafka configuration, exiting the process when
// it is invalid.
func Load(log *logger.Logger) *Config {
	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatal("Kafka configuration validation failed", "error", err)
	}
	cfg.LogConfiguration(log)
	return cfg
}

// Validate collects every configuration problem into one error.
func (cfg *Config) Validate() error {
	var errors []string

	if len(cfg.Brokers) == 0 {
		errors = append(errors, "At least one Kafka broker is required")
	}

	for i, broker := range cfg.Brokers {
		if _, _, err := net.SplitHostPort(broker); err != nil {
			errors = append(errors, fmt.Sprintf("Broker %d must be host:port, got: %q", i, broker))
		}
	}

	if cfg.BookingEventsTopic == "" {
		errors = append(errors, "BookingEventsTopic cannot be empty")
	}
	if cfg.BookingEventsDLQTopic != "" && cfg.BookingEventsDLQTopic == cfg.BookingEventsTopic {
		errors = append(errors, fmt.Sprintf("BookingEventsDLQTopic must differ from BookingEventsTopic, got: %s", cfg.BookingEventsDLQTopic))
	}
	if cfg.AuditConsumerGroup == "" {
		errors = append(errors, "AuditConsumerGroup cannot be empty")
	}

	if cfg.ProducerMaxAttempts <= 0 {
		errors = append(errors, fmt.Sprintf("ProducerMaxAttempts must be positive, got: %d", cfg.ProducerMaxAttempts))
	}

	if cfg.ProducerBatchTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ProducerBatchTimeout must be positive, got: %s", cfg.ProducerBatchTimeout))
	}

	validCompressions := map[string]bool{
		"none": true, "gzip": true, "snappy": true, "lz4": true, "zstd": true,
	}
	if !validCompressions[cfg.ProducerCompression] {
		errors = append(errors, fmt.Sprintf("ProducerCompression must be one of [none, gzip, snappy, lz4, zstd], got: %s", cfg.ProducerCompression))
	}

	validAcks := map[int]bool{-1: true, 0: true, 1: true}
	if !validAcks[cfg.ProducerRequireAcks] {
		errors = append(errors, fmt.Sprintf("ProducerRequireAcks must be -1, 0, or 1, got: %d", cfg.ProducerRequireAcks))
	}

	if cfg.ConsumerStartOffset != kafka.LastOffset && cfg.ConsumerStartOffset != kafka.FirstOffset {
		errors = append(errors, fmt.Sprintf("ConsumerStartOffset must be -1 (newest) or -2 (oldest), got: %d", cfg.ConsumerStartOffset))
	}

	if cfg.ConsumerMinBytes <= 0 {
		errors = append(errors, fmt.Sprintf("ConsumerMinBytes must be positive, got: %d", cfg.ConsumerMinBytes))
	}

	if cfg.ConsumerMaxBytes <= 0 {
		errors = append(errors, fmt.Sprintf("ConsumerMaxBytes must be positive, got: %d", cfg.ConsumerMaxBytes))
	}

	if cfg.ConsumerMaxWait <= 0 {
		errors = append(errors, fmt.Sprintf("ConsumerMaxWait must be positive, got: %s", cfg.ConsumerMaxWait))
	}

	if cfg.ConsumerCommitInterval < 0 {
		errors = append(errors, fmt.Sprintf("ConsumerCommitInterval cannot be negative, got: %s", cfg.ConsumerCommitInterval))
	}

	if cfg.ConsumerHeartbeatInterval <= 0 {
		errors = append(errors, fmt.Sprintf("ConsumerHeartbeatInterval must be positive, got: %s", cfg.ConsumerHeartbeatInterval))
	}

	if cfg.ConsumerSessionTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ConsumerSessionTimeout must be positive, got: %s", cfg.ConsumerSessionTimeout))
	}

	if cfg.ConsumerRebalanceTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ConsumerRebalanceTimeout must be positive, got: %s", cfg.ConsumerRebalanceTimeout))
	}

	if cfg.ConsumerMaxRetries < 0 {
		errors = append(errors, fmt.Sprintf("ConsumerMaxRetries cannot be negative, got: %d", cfg.ConsumerMaxRetries))
	}

	if len(errors) > 0 {
		errMsg := "Kafka configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

// ParseBrokers splits a comma separated broker list, dropping empty entries.
func ParseBrokers(s string) []string {
	var brokers []string
	for _, broker := range strings.Split(s, ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			brokers = append(brokers, broker)
		}
	}
	return brokers
}

func (cfg *Config) LogConfiguration(log *logger.Logger) {
	log.Info("Kafka configuration loaded successfully",
		"brokers", cfg.Brokers,
		"booking_events_topic", cfg.BookingEventsTopic,
		"booking_events_dlq_topic", cfg.BookingEventsDLQTopic,
		"audit_consumer_group", cfg.AuditConsumerGroup,
		"producer_max_attempts", cfg.ProducerMaxAttempts,
		"producer_batch_timeout", cfg.ProducerBatchTimeout,
		"producer_require_acks", cfg.ProducerRequireAcks,
		"producer_compression", cfg.ProducerCompression,
		"producer_async", cfg.ProducerAsync,
		"consumer_start_offset", cfg.ConsumerStartOffset,
		"consumer_min_bytes", cfg.ConsumerMinBytes,
		"consumer_max_bytes", cfg.ConsumerMaxBytes,
		"consumer_max_wait", cfg.ConsumerMaxWait,
		"consumer_commit_interval", cfg.ConsumerCommitInterval,
		"consumer_heartbeat_interval", cfg.ConsumerHeartbeatInterval,
		"consumer_session_timeout", cfg.ConsumerSessionTimeout,
		"consumer_rebalance_timeout", cfg.ConsumerRebalanceTimeout,
		"consumer_max_retries", cfg.ConsumerMaxRetries,
		"enable_middleware", cfg.EnableMiddleware,
	)
}

func getEnvStr(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if int64Value, err := strconv.ParseInt(value, 10, 64); err == nil {
			return int64Value
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
