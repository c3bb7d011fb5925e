// Package cli renders readiness runs in the terminal: the run header, a
// spinner with a readiness bar while subsystems report, and the outcome.
package cli
