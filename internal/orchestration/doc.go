// Package orchestration coordinates the initialization of the independent
// subsystems that make up one entity. A Coordinator fans a start call out to
// every subsystem, collects their one-shot readiness signals, enforces a
// deadline, and reports exactly one Outcome per attempt: success, the first
// failure, or a timeout carrying the subsystems that did become ready.
package orchestration
