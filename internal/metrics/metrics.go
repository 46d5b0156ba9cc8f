package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewDeliveryTransitionsTotal counts applied lifecycle transitions by target state
func NewDeliveryTransitionsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "delivery_transitions_total",
		Help: "Total number of applied delivery request state transitions",
	}, []string{"state"})
}

// NewStatusEventsTotal counts courier status events consumed by the worker, by result
func NewStatusEventsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "courier_status_events_total",
		Help: "Total number of courier status events handled by the worker",
	}, []string{"result"})
}

// NewAvailabilityViolations reports couriers whose availability disagrees with their active requests
func NewAvailabilityViolations() prometheus.Gauge {
	return prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "courier_availability_violations",
		Help: "Number of couriers whose availability does not match their active delivery requests",
	})
}
