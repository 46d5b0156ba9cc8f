package app

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/dig"

	"delivery-coordinator/internal/http/middleware"
	"delivery-coordinator/internal/metrics"
)

type metricsOut struct {
	dig.Out

	RateLimitExceededTotal prometheus.Counter     `name:"rate_limit_exceeded_total"`
	TransitionsTotal       *prometheus.CounterVec `name:"delivery_transitions_total"`
	StatusEventsTotal      *prometheus.CounterVec `name:"courier_status_events_total"`
	AvailabilityViolations prometheus.Gauge       `name:"courier_availability_violations"`
	HTTP                   *middleware.HTTPMetrics
}

type registryOut struct {
	dig.Out

	Registry   *prometheus.Registry
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

func newRegistry() registryOut {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registryOut{Registry: reg, Registerer: reg, Gatherer: reg}
}

func provideMetrics(reg prometheus.Registerer) (metricsOut, error) {
	rl, err := register(reg, "rate_limit_exceeded_total", metrics.NewRateLimitExceededTotal())
	if err != nil {
		return metricsOut{}, err
	}
	tr, err := register(reg, "delivery_transitions_total", metrics.NewDeliveryTransitionsTotal())
	if err != nil {
		return metricsOut{}, err
	}
	ev, err := register(reg, "courier_status_events_total", metrics.NewStatusEventsTotal())
	if err != nil {
		return metricsOut{}, err
	}
	av, err := register(reg, "courier_availability_violations", metrics.NewAvailabilityViolations())
	if err != nil {
		return metricsOut{}, err
	}
	return metricsOut{
		RateLimitExceededTotal: rl,
		TransitionsTotal:       tr,
		StatusEventsTotal:      ev,
		AvailabilityViolations: av,
		HTTP:                   middleware.NewHTTPMetrics(reg),
	}, nil
}

// register returns the already registered collector when one with the same
// descriptor exists, so building two containers against one registry works.
func register[C prometheus.Collector](reg prometheus.Registerer, name string, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		var zero C
		return zero, fmt.Errorf("register %s: %w", name, err)
	}
	return c, nil
}
