package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jrsteele09/eduflow/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := metrics.New()
	m.RemoteCall("courses.create", "ok")
	m.RemoteCall("courses.create", "ok")
	m.AuthExchange("error")

	count, err := testutil.GatherAndCount(m.Registry(), "eduflow_remote_calls_total")
	require.NoError(t, err)
	require.Equal(t, 1, count)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.True(t, strings.Contains(body, `eduflow_remote_calls_total{op="courses.create",outcome="ok"} 2`))
	require.True(t, strings.Contains(body, `eduflow_auth_exchanges_total{outcome="error"} 1`))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *metrics.Metrics
	m.RemoteCall("x", "ok")
	m.AuthExchange("ok")
	m.Render("login")
	require.Nil(t, m.Registry())

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
