// Package monitoring 提供预测指标
package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics 预测流水线指标
type Metrics struct {
	predictions *prometheus.CounterVec
	warnings    prometheus.Counter
	failures    prometheus.Counter
	cacheHits   prometheus.Counter
	latency     prometheus.Histogram
}

// NewMetrics 创建并注册指标; reg 为 nil 时使用默认注册器
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "diabetescheck_predictions_total",
			Help: "Predictions answered, by outcome.",
		}, []string{"outcome"}),
		warnings: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "diabetescheck_prediction_warnings_total",
			Help: "Submissions rejected before the classifier was called.",
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "diabetescheck_prediction_failures_total",
			Help: "Submissions where feature assembly or inference failed.",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "diabetescheck_cache_hits_total",
			Help: "Predictions served from the outcome cache.",
		}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "diabetescheck_prediction_latency_seconds",
			Help:    "Time spent producing a label, cache lookups included.",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
	}

	reg.MustRegister(m.predictions, m.warnings, m.failures, m.cacheHits, m.latency)
	return m
}

// ObservePrediction 记录一次成功的预测
func (m *Metrics) ObservePrediction(outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.predictions.WithLabelValues(outcome).Inc()
	m.latency.Observe(took.Seconds())
}

// IncWarning 记录校验警告
func (m *Metrics) IncWarning() {
	if m == nil {
		return
	}
	m.warnings.Inc()
}

// IncFailure 记录预测失败
func (m *Metrics) IncFailure() {
	if m == nil {
		return
	}
	m.failures.Inc()
}

// IncCacheHit 记录缓存命中
func (m *Metrics) IncCacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}
