// Package server exposes the readiness state of a coordinated entity over
// HTTP: a liveness endpoint, a readiness probe backed by the coordinator's
// outcome, and the Prometheus metrics endpoint.
package server
