// Package perf evaluates measured APU-RPU transfer latency against an
// analytical cache-coherence model.
//
// The pipeline is a straight line: a raw tabular sample set is validated
// and filtered, aggregated into per-packet-size statistics, and compared
// against either a second measured configuration or the closed-form latency
// model. Every stage is a pure function over immutable inputs, so
// independent datasets can be processed concurrently without coordination.
package perf
