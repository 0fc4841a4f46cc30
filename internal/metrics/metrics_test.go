package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountersAccumulate(t *testing.T) {
	m := New()

	m.AddCheckIns("member", 1)
	m.AddCheckIns("dependent", 2)
	m.AddCheckIns("dependent", 1)
	m.AddCheckOuts("dependent", 1)
	m.IncrementRosterReads()
	m.IncrementRejected("check_in")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CheckIns.WithLabelValues("member")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.CheckIns.WithLabelValues("dependent")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CheckOuts.WithLabelValues("dependent")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RosterReads))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RejectedBatches.WithLabelValues("check_in")))
}

func TestInstancesAreIndependent(t *testing.T) {
	a := New()
	b := New()

	a.IncrementRosterReads()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.RosterReads))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.RosterReads))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.IncrementRosterReads()
	m.ObserveRequest(http.MethodGet, "/api/v1/health", "200", time.Now())

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "checkin_roster_reads_total 1")
	assert.Contains(t, rec.Body.String(), "checkin_http_request_duration_seconds")
}
