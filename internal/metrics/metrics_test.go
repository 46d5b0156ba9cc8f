package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestCollectors_RegisterTogether(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	transitions := NewDeliveryTransitionsTotal()
	events := NewStatusEventsTotal()
	violations := NewAvailabilityViolations()
	limited := NewRateLimitExceededTotal()

	require.NoError(t, reg.Register(transitions))
	require.NoError(t, reg.Register(events))
	require.NoError(t, reg.Register(violations))
	require.NoError(t, reg.Register(limited))

	transitions.WithLabelValues("delivered").Inc()
	violations.Set(2)

	require.Equal(t, 1.0, testutil.ToFloat64(transitions.WithLabelValues("delivered")))
	require.Equal(t, 2.0, testutil.ToFloat64(violations))
	require.Equal(t, 0.0, testutil.ToFloat64(limited))
}
