package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.RentalBooked()
	m.RentalBooked()
	m.RentalReturned(true)
	m.PaymentStatusApplied("PAID")
	m.JobRun("reconcile-payments", errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.rentalsBooked))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rentalsReturned.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.paymentStatus.WithLabelValues("PAID")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.jobRuns.WithLabelValues("reconcile-payments", "error")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RentalBooked()
		m.ObserveHTTP("GET", "/cars", 200, time.Millisecond)
		m.ObserveProvider("create", nil, time.Millisecond)
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveHTTP("GET", "/cars", 200, 5*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `carsharing_http_requests_total{method="GET",route="/cars",status="200"} 1`)
}
