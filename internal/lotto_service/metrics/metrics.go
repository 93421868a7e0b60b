package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

// 刷新結果標籤
const (
	RefreshSuccess = "success"
	RefreshEmpty   = "empty"
	RefreshFailed  = "failed"
)

// Metrics 推薦服務的 Prometheus 指標
type Metrics struct {
	registry *prometheus.Registry

	RecommendRequests *prometheus.CounterVec
	GamesGenerated    prometheus.Counter
	ExhaustedBatches  prometheus.Counter
	AttemptsPerBatch  prometheus.Histogram
	RecommendLatency  prometheus.Histogram
	HistoryRefreshes  *prometheus.CounterVec
	HistoryDraws      prometheus.Gauge
}

// New 建立並註冊所有指標，每個實例使用獨立的 registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		RecommendRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lotto_recommend_requests_total",
			Help: "Total number of recommendation requests by outcome",
		}, []string{"outcome"}),
		GamesGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lotto_games_generated_total",
			Help: "Total number of combinations returned",
		}),
		ExhaustedBatches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lotto_exhausted_batches_total",
			Help: "Batches that hit the attempt budget before reaching the requested count",
		}),
		AttemptsPerBatch: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "lotto_attempts_per_batch",
			Help:    "Sampling attempts used per batch",
			Buckets: []float64{1, 2, 5, 10, 20, 50, 100, 250, 500, 1000},
		}),
		RecommendLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "lotto_recommend_latency_seconds",
			Help:    "Latency of recommendation generation",
			Buckets: prometheus.DefBuckets,
		}),
		HistoryRefreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lotto_history_refresh_total",
			Help: "Live history refreshes by result",
		}, []string{"result"}),
		HistoryDraws: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lotto_history_draws",
			Help: "Number of draws in the current history snapshot",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RecommendRequests,
		m.GamesGenerated,
		m.ExhaustedBatches,
		m.AttemptsPerBatch,
		m.RecommendLatency,
		m.HistoryRefreshes,
		m.HistoryDraws,
	)
	return m
}

// Registry 返回指標的 registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler 返回 /metrics 的 HTTP handler
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveBatch 記錄一次批次產生的結果
func (m *Metrics) ObserveBatch(games, attempts int, exhausted bool, seconds float64) {
	m.GamesGenerated.Add(float64(games))
	m.AttemptsPerBatch.Observe(float64(attempts))
	m.RecommendLatency.Observe(seconds)
	if exhausted {
		m.ExhaustedBatches.Inc()
	}
}

// ObserveRefresh 記錄一次線上刷新
func (m *Metrics) ObserveRefresh(fetched int, err error) {
	switch {
	case err != nil:
		m.HistoryRefreshes.WithLabelValues(RefreshFailed).Inc()
	case fetched == 0:
		m.HistoryRefreshes.WithLabelValues(RefreshEmpty).Inc()
	default:
		m.HistoryRefreshes.WithLabelValues(RefreshSuccess).Inc()
	}
}

// Module 指標模組
var Module = fx.Module("metrics",
	fx.Provide(New),
)
