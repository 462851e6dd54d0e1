// Package tracing exposes a minimal span API (Init, StartSpan, EndSpan)
// delegating to OpenTelemetry. The receptionist opens one span per handler
// so the decision flow of a simulation can be replayed from traces.
package tracing
