// Package metrics holds Prometheus instruments used by the validation
// middleware.  All collectors are registered with the global registry, so
// importing this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ValidationFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paramguard_validation_failures_total",
			Help: "Requests rejected by a registered validator, by field source.",
		}, []string{"source"})

	QueryParseErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "paramguard_query_parse_errors_total",
			Help: "Requests whose query string could not be decoded.",
		})

	EncodeFallbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "paramguard_encode_fallbacks_total",
			Help: "Validation errors that fell back to plain text because encoding failed.",
		})

	RequestsForwardedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "paramguard_requests_forwarded_total",
			Help: "Requests that passed validation and reached the next handler.",
		})
)

func init() {
	prometheus.MustRegister(
		ValidationFailuresTotal,
		QueryParseErrorsTotal,
		EncodeFallbacksTotal,
		RequestsForwardedTotal,
	)
}
