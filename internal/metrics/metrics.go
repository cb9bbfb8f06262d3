package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// フロー結果のラベル値
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

var (
	flowsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "postboard_flows_total",
		Help: "Tracks the number of completed board flows by outcome.",
	}, []string{"flow", "outcome"})

	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "postboard_request_duration_seconds",
		Help:    "Tracks the latencies of requests to the posts service.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})

	registry = newRegistry()
)

func newRegistry() *prometheus.Registry {
	r := prometheus.NewRegistry()
	r.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		flowsTotal,
		requestDuration,
	)
	return r
}

// メトリクス公開用のレジストリ
func Registry() *prometheus.Registry {
	return registry
}

// フロー完了を記録
func ObserveFlow(flow string, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	flowsTotal.WithLabelValues(flow, outcome).Inc()
}

// リクエスト所要時間 (秒) を記録
func ObserveRequestDuration(method string, seconds float64) {
	requestDuration.WithLabelValues(method).Observe(seconds)
}
