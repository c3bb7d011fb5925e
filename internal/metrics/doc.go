// Package metrics exports readiness coordination statistics to Prometheus.
package metrics
