package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequest(t *testing.T) {
	m := New()

	m.ObserveRequest(http.MethodGet, "/games/{game_id}", http.StatusOK, 10*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/games/{game_id}", http.StatusOK, 20*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/games/{game_id}", http.StatusNotFound, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/games/{game_id}", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/games/{game_id}", "404")))
}

func TestRecordLogin(t *testing.T) {
	m := New()

	m.RecordLogin(true)
	m.RecordLogin(false)
	m.RecordLogin(false)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Logins.WithLabelValues(LoginSuccess)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Logins.WithLabelValues(LoginFailure)))
}

func TestInstancesAreIndependent(t *testing.T) {
	first := New()
	second := New()

	first.GamesCreated.Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(first.GamesCreated))
	assert.Equal(t, 0.0, testutil.ToFloat64(second.GamesCreated))
}

func TestHandlerExposesDomainCounters(t *testing.T) {
	m := New()
	m.AttemptsRecorded.Inc()
	m.Registrations.Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "tilepath_attempts_recorded_total 1")
	assert.Contains(t, string(body), "tilepath_registrations_total 1")
	assert.Contains(t, string(body), "go_goroutines")
}
