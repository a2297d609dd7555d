// Package otel provides OpenTelemetry metric exporter bindings for goIdentity
// counters.
//
// [NewOTelExporter] registers Int64ObservableCounter instruments for each
// goIdentity metric. A single callback reads
// [goIdentity.Engine.MetricsSnapshot] on each collection cycle.
//
// # What this package must NOT do
//
//   - Own the OTel MeterProvider — callers supply the Meter.
//   - Mutate engine state.
package otel
