package config

import (
	"encoding/base64"
	"fmt"
	"net/netip"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"digilist/pkg/client"
	"digilist/pkg/logger"
)

var (
	mongoURIRegex   = regexp.MustCompile(`^mongodb(\+srv)?://`)
	credentialRegex = regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	currencyRegex   = regexp.MustCompile(`^[A-Z]{3}$`)
)

type Config struct {
	ServiceName string

	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Port string

	RateLimitRequests int
	RateLimitWindow   time.Duration
	// TrustedProxies lists the proxy addresses or CIDRs whose X-Forwarded-For
	// header is honoured when keying the rate limiter.
	TrustedProxies []string

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// RedisAddr enables the shared idempotency store. Empty keeps it in memory.
	RedisAddr     string
	RedisPassword string

	DefaultCurrency string
	DefaultTaxRate  float64
	// ReceiptSealKey is a base64 encoded AES key (16, 24 or 32 bytes).
	ReceiptSealKey  string
	DefaultTimeZone string

	// ListingsServiceURL makes the bookings service read listings over HTTP
	// instead of from the shared Listings collection.
	ListingsServiceURL string

	Log    *logger.Logger
	Client *client.Client
}

// Load reads the configuration from the environment and exits the process
// when it is invalid.
func Load(serviceName string) *Config {
	cfg := FromEnv(serviceName)
	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

// FromEnv reads the configuration without validating it.
func FromEnv(serviceName string) *Config {
	return &Config{
		ServiceName: serviceName,

		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		Port: getEnvStr(EnvPort, DefaultPort),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),
		TrustedProxies:    getEnvList(EnvTrustedProxies),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		RedisAddr:     getEnvStr(EnvRedisAddr, ""),
		RedisPassword: getEnvStr(EnvRedisPassword, ""),

		DefaultCurrency: strings.ToUpper(getEnvStr(EnvDefaultCurrency, DefaultCurrency)),
		DefaultTaxRate:  getEnvFloat(EnvDefaultTaxRate, DefaultTaxRate),
		ReceiptSealKey:  getEnvStr(EnvReceiptSealKey, ""),
		DefaultTimeZone: getEnvStr(EnvDefaultTimeZone, DefaultTimeZone),

		ListingsServiceURL: getEnvStr(EnvListingsServiceURL, ""),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    getEnvStr(EnvLogFormat, logger.JSON),
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}
}

// SetMongo connects the shared Mongo client.
func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

// SetRedis connects Redis when an address is configured.
func (cfg *Config) SetRedis() {
	if cfg.RedisAddr == "" {
		return
	}
	cfg.Client.SetRedis(cfg.Log, cfg.RedisAddr, cfg.RedisPassword, cfg.MongoConnTimeout)
}

// Validate collects every configuration problem into one error.
func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		errors = append(errors, "MongoURI cannot be empty")
	} else if len(cfg.MongoURI) < 10 || !mongoURIRegex.MatchString(cfg.MongoURI) {
		errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", redactMongoURI(cfg.MongoURI)))
	}
	if cfg.MongoDatabaseName == "" {
		errors = append(errors, "MongoDatabaseName cannot be empty")
	}

	durations := []struct {
		name  string
		value time.Duration
	}{
		{"MongoConnTimeout", cfg.MongoConnTimeout},
		{"RateLimitWindow", cfg.RateLimitWindow},
		{"RequestTimeout", cfg.RequestTimeout},
		{"IdempotencyTTL", cfg.IdempotencyTTL},
		{"ReadTimeout", cfg.ReadTimeout},
		{"WriteTimeout", cfg.WriteTimeout},
		{"IdleTimeout", cfg.IdleTimeout},
		{"ShutdownTimeout", cfg.ShutdownTimeout},
	}
	for _, d := range durations {
		if d.value <= 0 {
			errors = append(errors, fmt.Sprintf("%s must be positive, got: %s", d.name, d.value))
		}
	}

	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if _, err := parseTrustedProxies(cfg.TrustedProxies); err != nil {
		errors = append(errors, err.Error())
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}

	if !currencyRegex.MatchString(cfg.DefaultCurrency) {
		errors = append(errors, fmt.Sprintf("DefaultCurrency must be a 3 letter ISO 4217 code, got: %s", cfg.DefaultCurrency))
	}
	if cfg.DefaultTaxRate < 0 || cfg.DefaultTaxRate > 1 {
		errors = append(errors, fmt.Sprintf("DefaultTaxRate must be between 0 and 1, got: %v", cfg.DefaultTaxRate))
	}

	if cfg.ReceiptSealKey != "" {
		key, err := base64.StdEncoding.DecodeString(cfg.ReceiptSealKey)
		if err != nil {
			errors = append(errors, "ReceiptSealKey must be base64 encoded")
		} else if n := len(key); n != 16 && n != 24 && n != 32 {
			errors = append(errors, fmt.Sprintf("ReceiptSealKey must decode to 16, 24 or 32 bytes, got: %d", n))
		}
	}

	if _, err := time.LoadLocation(cfg.DefaultTimeZone); err != nil {
		errors = append(errors, fmt.Sprintf("DefaultTimeZone must be an IANA time zone, got: %s", cfg.DefaultTimeZone))
	}

	if cfg.ListingsServiceURL != "" {
		if u, err := url.Parse(cfg.ListingsServiceURL); err != nil || u.Scheme == "" || u.Host == "" {
			errors = append(errors, fmt.Sprintf("ListingsServiceURL must be an absolute URL, got: %s", cfg.ListingsServiceURL))
		}
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"port", cfg.Port,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"trusted_proxies", cfg.TrustedProxies,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"idempotency_store", cfg.idempotencyStore(),
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"default_currency", cfg.DefaultCurrency,
		"default_tax_rate", cfg.DefaultTaxRate,
		"receipt_seal_key_set", cfg.ReceiptSealKey != "",
		"default_time_zone", cfg.DefaultTimeZone,
		"listings_service_url", cfg.ListingsServiceURL,
	)
}

// TrustedProxyPrefixes returns TrustedProxies as prefixes. Entries that do not
// parse are skipped; Validate reports them.
func (cfg *Config) TrustedProxyPrefixes() []netip.Prefix {
	prefixes, _ := parseTrustedProxies(cfg.TrustedProxies)
	return prefixes
}

// parseTrustedProxies accepts bare addresses and CIDRs.
func parseTrustedProxies(entries []string) ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(entries))
	var bad []string
	for _, entry := range entries {
		if strings.Contains(entry, "/") {
			p, err := netip.ParsePrefix(entry)
			if err != nil {
				bad = append(bad, entry)
				continue
			}
			prefixes = append(prefixes, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			bad = append(bad, entry)
			continue
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	if len(bad) > 0 {
		return prefixes, fmt.Errorf("TrustedProxies must be IP addresses or CIDRs, got: %s", strings.Join(bad, ", "))
	}
	return prefixes, nil
}

func (cfg *Config) idempotencyStore() string {
	if cfg.RedisAddr != "" {
		return "redis"
	}
	return "memory"
}

func redactMongoURI(uri string) string {
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown(cfg.Log)
}

func NormalizePaginationLimit(limit int) int {
	if limit <= 0 {
		limit = MinPaginationLimit
	} else if limit > DefaultPaginationLimit {
		limit = DefaultPaginationLimit
	}
	return limit
}

func NormalizeOffset(offset int64) int64 {
	return max(0, offset)
}
