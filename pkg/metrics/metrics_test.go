package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counterValue суммирует значения счетчика с заданным именем по всем меткам
func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		var total float64
		for _, m := range family.GetMetric() {
			total += m.GetCounter().GetValue()
		}
		return total
	}
	return 0
}

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New("appointments", reg)

	m.IncBooked()
	m.IncBooked()
	m.IncCancelled()
	m.IncValidationRejection("BOOK-01")
	m.ObserveHTTPRequest("POST", "/appointments", 201, 10*time.Millisecond)
	m.ObserveDBQuery("query_row", time.Millisecond, errors.New("boom"))

	assert.Equal(t, 2.0, counterValue(t, reg, "appointments_appointments_booked_total"))
	assert.Equal(t, 1.0, counterValue(t, reg, "appointments_appointments_cancelled_total"))
	assert.Equal(t, 1.0, counterValue(t, reg, "appointments_validation_rejections_total"))
	assert.Equal(t, 1.0, counterValue(t, reg, "appointments_http_requests_total"))
	assert.Equal(t, 1.0, counterValue(t, reg, "appointments_db_queries_total"))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncBooked()
		m.IncCancelled()
		m.IncValidationRejection("CANCEL-01")
		m.ObserveHTTPRequest("GET", "/configuration", 200, time.Millisecond)
		m.ObserveDBQuery("exec", time.Millisecond, nil)
	})
}
