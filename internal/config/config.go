package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Config stores service and worker settings.
type Config struct {
	Port      int
	DB        DB
	Delivery  Delivery
	Auth      Auth
	RateLimit RateLimit
	Redis     Redis
	CORS      CORS
	Audit     Audit
	Ops       Ops
	Kafka     Kafka
	Log       Log
}

// DB describes the Postgres connection.
type DB struct {
	Host    string
	Port    string
	User    string
	Pass    string
	Name    string
	SSLMode string
	Migrate bool
}

// DSN returns a pgx connection string.
func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		d.User, d.Pass, net.JoinHostPort(d.Host, d.Port), d.Name, d.SSLMode)
}

// Delivery tunes the assignment and transition operations.
type Delivery struct {
	OperationTimeout  time.Duration
	StrictTransitions bool
}

// Auth configures login tokens.
type Auth struct {
	Secret   string
	TokenTTL time.Duration
	Enforce  bool
}

// RateLimit configures the login limiter.
type RateLimit struct {
	Enabled    bool
	Backend    string
	Rate       float64
	Burst      int
	TTL        time.Duration
	MaxBuckets int
}

// Redis is used by the shared rate limiter backend.
type Redis struct {
	Addr string
}

// CORS lists origins allowed to call the API.
type CORS struct {
	AllowedOrigins []string
}

// Audit holds the availability auditor cron schedule. Empty disables it.
type Audit struct {
	Schedule string
}

// Ops configures the metrics and pprof listener.
type Ops struct {
	Addr string
	User string
	Pass string
}

// Kafka configures the courier-status consumer.
type Kafka struct {
	Brokers     []string
	GroupID     string
	StatusTopic string
}

// Log selects the logger backend and level.
type Log struct {
	Format string
	Level  string
}

// Rate limiter backends
const (
	RateLimitBackendMemory = "memory"
	RateLimitBackendRedis  = "redis"
)

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		Port:      DefaultPort(),
		DB:        DefaultDB(),
		Delivery:  DefaultDelivery(),
		Auth:      DefaultAuth(),
		RateLimit: DefaultRateLimit(),
		CORS:      DefaultCORS(),
		Audit:     DefaultAudit(),
		Ops:       DefaultOps(),
		Kafka:     DefaultKafka(),
		Log:       DefaultLog(),
	}

	if err := loadEnv(cfg); err != nil {
		return nil, err
	}

	fs := pflag.CommandLine
	fs.ParseErrorsWhitelist.UnknownFlags = true
	if fs.Lookup("port") == nil {
		fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	}
	if err := fs.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}
	if f := fs.Lookup("port"); f != nil && f.Changed {
		p, err := strconv.Atoi(f.Value.String())
		if err != nil {
			return nil, fmt.Errorf("parse flags: port: %w", err)
		}
		cfg.Port = p
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadEnv(cfg *Config) error {
	var err error

	if cfg.Port, err = envInt("PORT", cfg.Port); err != nil {
		return err
	}

	cfg.DB.Host = envString("POSTGRES_HOST", cfg.DB.Host)
	cfg.DB.Port = envString("POSTGRES_PORT", cfg.DB.Port)
	cfg.DB.User = envString("POSTGRES_USER", cfg.DB.User)
	cfg.DB.Pass = envString("POSTGRES_PASSWORD", cfg.DB.Pass)
	cfg.DB.Name = envString("POSTGRES_DB", cfg.DB.Name)
	cfg.DB.SSLMode = envString("POSTGRES_SSLMODE", cfg.DB.SSLMode)
	if cfg.DB.Migrate, err = envBool("DB_MIGRATE", cfg.DB.Migrate); err != nil {
		return err
	}

	if cfg.Delivery.OperationTimeout, err = envDuration("DELIVERY_OPERATION_TIMEOUT", cfg.Delivery.OperationTimeout); err != nil {
		return err
	}
	if cfg.Delivery.StrictTransitions, err = envBool("DELIVERY_STRICT_TRANSITIONS", cfg.Delivery.StrictTransitions); err != nil {
		return err
	}

	cfg.Auth.Secret = envString("AUTH_SECRET", cfg.Auth.Secret)
	if cfg.Auth.TokenTTL, err = envDuration("AUTH_TOKEN_TTL", cfg.Auth.TokenTTL); err != nil {
		return err
	}
	if cfg.Auth.Enforce, err = envBool("AUTH_ENFORCE", cfg.Auth.Enforce); err != nil {
		return err
	}

	if cfg.RateLimit.Enabled, err = envBool("RATE_LIMIT_ENABLED", cfg.RateLimit.Enabled); err != nil {
		return err
	}
	cfg.RateLimit.Backend = strings.ToLower(envString("RATE_LIMIT_BACKEND", cfg.RateLimit.Backend))
	if cfg.RateLimit.Rate, err = envFloat("RATE_LIMIT_RATE", cfg.RateLimit.Rate); err != nil {
		return err
	}
	if cfg.RateLimit.Burst, err = envInt("RATE_LIMIT_BURST", cfg.RateLimit.Burst); err != nil {
		return err
	}
	if cfg.RateLimit.TTL, err = envDuration("RATE_LIMIT_TTL", cfg.RateLimit.TTL); err != nil {
		return err
	}
	if cfg.RateLimit.MaxBuckets, err = envInt("RATE_LIMIT_MAX_BUCKETS", cfg.RateLimit.MaxBuckets); err != nil {
		return err
	}
	cfg.Redis.Addr = envString("REDIS_ADDR", cfg.Redis.Addr)

	if v, ok := os.LookupEnv("CORS_ALLOWED_ORIGINS"); ok && v != "" {
		cfg.CORS.AllowedOrigins = splitList(v)
	}

	cfg.Audit.Schedule = envRaw("AUDIT_SCHEDULE", cfg.Audit.Schedule)

	cfg.Ops.Addr = envRaw("OPS_ADDR", cfg.Ops.Addr)
	cfg.Ops.User = envString("OPS_USER", cfg.Ops.User)
	cfg.Ops.Pass = envString("OPS_PASS", cfg.Ops.Pass)

	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = splitList(v)
	}
	cfg.Kafka.GroupID = envString("KAFKA_GROUP_ID", cfg.Kafka.GroupID)
	cfg.Kafka.StatusTopic = envString("KAFKA_STATUS_TOPIC", cfg.Kafka.StatusTopic)

	cfg.Log.Format = strings.ToLower(envString("LOG_FORMAT", cfg.Log.Format))
	cfg.Log.Level = strings.ToLower(envString("LOG_LEVEL", cfg.Log.Level))
	return nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if p, err := strconv.Atoi(c.DB.Port); err != nil || p <= 0 || p > 65535 {
		return fmt.Errorf("invalid POSTGRES_PORT: %q", c.DB.Port)
	}
	if c.Delivery.OperationTimeout <= 0 {
		return fmt.Errorf("invalid DELIVERY_OPERATION_TIMEOUT: %s", c.Delivery.OperationTimeout)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("invalid AUTH_TOKEN_TTL: %s", c.Auth.TokenTTL)
	}
	switch c.RateLimit.Backend {
	case RateLimitBackendMemory:
	case RateLimitBackendRedis:
		if c.RateLimit.Enabled && c.Redis.Addr == "" {
			return fmt.Errorf("RATE_LIMIT_BACKEND=redis requires REDIS_ADDR")
		}
	default:
		return fmt.Errorf("invalid RATE_LIMIT_BACKEND: %q", c.RateLimit.Backend)
	}
	if c.RateLimit.Enabled && (c.RateLimit.Rate <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("invalid rate limit: rate=%v burst=%d", c.RateLimit.Rate, c.RateLimit.Burst)
	}
	return nil
}

func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// envRaw distinguishes an explicitly empty value (disable) from an unset one.
func envRaw(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(v)
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func envFloat(key string, def float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func envBool(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
