package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "zipapi_requests_total",
		Help: "Total number of /api/zip requests",
	})
	RequestDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "zipapi_request_duration_ms",
		Help:    "Request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	})
	FallbackTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "zipapi_fallback_total",
		Help: "Total number of responses answered with the fallback string",
	})
	BloomErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "zipapi_bloom_errors_total",
		Help: "Total redis errors during visitor dedup",
	})
	RateLimitedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "zipapi_rate_limited_total",
		Help: "Total requests rejected by the rate limiter",
	})
	TableEntries = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "zipapi_table_entries",
		Help: "Number of zip codes loaded at startup by source",
	}, []string{"source"})
)

func init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDurationMs)
	prometheus.MustRegister(FallbackTotal)
	prometheus.MustRegister(BloomErrorsTotal)
	prometheus.MustRegister(RateLimitedTotal)
	prometheus.MustRegister(TableEntries)
}

// 文档注释：返回 Prometheus 指标监听器
// 背景：统一暴露注册指标到 /metrics 路径，供 Prometheus 抓取；在主入口挂载。
func Handler() http.Handler { return promhttp.Handler() }
