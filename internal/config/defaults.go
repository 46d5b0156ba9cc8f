package config

import "time"

const defaultPort = 8080

var defaultDB = DB{
	Host:    "127.0.0.1",
	Port:    "5432",
	User:    "myuser",
	Pass:    "mypassword",
	Name:    "delivery",
	SSLMode: "disable",
}

var defaultDelivery = Delivery{
	OperationTimeout:  3 * time.Second,
	StrictTransitions: false,
}

var defaultAuth = Auth{
	Secret:   "dev-secret-change-me",
	TokenTTL: 12 * time.Hour,
}

var defaultRateLimit = RateLimit{
	Enabled:    true,
	Backend:    RateLimitBackendMemory,
	Rate:       1,
	Burst:      5,
	TTL:        10 * time.Minute,
	MaxBuckets: 10_000,
}

var defaultKafka = Kafka{
	GroupID:     "delivery-worker",
	StatusTopic: "courier-status",
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultDelivery returns the default delivery settings.
func DefaultDelivery() Delivery {
	return defaultDelivery
}

// DefaultAuth returns the default token settings.
func DefaultAuth() Auth {
	return defaultAuth
}

// DefaultRateLimit returns the default login limiter settings.
func DefaultRateLimit() RateLimit {
	return defaultRateLimit
}

// DefaultCORS allows every origin.
func DefaultCORS() CORS {
	return CORS{AllowedOrigins: []string{"*"}}
}

// DefaultAudit runs the availability auditor once a minute.
func DefaultAudit() Audit {
	return Audit{Schedule: "@every 1m"}
}

// DefaultOps returns the default ops listener.
func DefaultOps() Ops {
	return Ops{Addr: ":9090"}
}

// DefaultKafka returns the default consumer settings.
func DefaultKafka() Kafka {
	return defaultKafka
}

// DefaultLog returns the default logger settings.
func DefaultLog() Log {
	return Log{Format: "json", Level: "info"}
}
