package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveBatch(t *testing.T) {
	m := New()

	m.ObserveBatch(5, 7, false, 0.01)
	m.ObserveBatch(2, 1000, true, 0.2)

	assert.Equal(t, 7.0, testutil.ToFloat64(m.GamesGenerated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ExhaustedBatches))
	assert.Equal(t, 1, testutil.CollectAndCount(m.AttemptsPerBatch))
}

func TestObserveRefresh(t *testing.T) {
	m := New()

	m.ObserveRefresh(3, nil)
	m.ObserveRefresh(0, nil)
	m.ObserveRefresh(0, errors.New("timeout"))
	m.ObserveRefresh(1, errors.New("partial"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HistoryRefreshes.WithLabelValues(RefreshSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HistoryRefreshes.WithLabelValues(RefreshEmpty)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.HistoryRefreshes.WithLabelValues(RefreshFailed)))
}

func TestNewUsesIndependentRegistry(t *testing.T) {
	// 多次建立不會因重複註冊而 panic
	assert.NotPanics(t, func() {
		New()
		New()
	})
}

func TestHandler(t *testing.T) {
	m := New()
	m.RecommendRequests.WithLabelValues("ok").Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `lotto_recommend_requests_total{outcome="ok"} 1`)
}
