// Package goIdentity provides a credential-issuance and session-authentication
// engine with stateless, signed JWT access and refresh tokens and pluggable
// user storage.
//
// The package is designed for concurrent server workloads: Engine methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// goIdentity is the public surface. It exposes [Engine], [Builder], [Config],
// the [Directory] storage contract, and value types (TokenPair, Profile,
// MetricsSnapshot). Token signing lives in the token sub-package and password
// hashing in the password sub-package; neither imports this package.
//
// # What this package must NOT do
//
//   - Keep server-side session state. Token validity is determined entirely
//     by signature and expiry at verification time.
//   - Expose password digests through any outward-facing type. [Profile]
//     carries no digest field.
//   - Ship usable signing secrets. [DefaultConfig] returns TTL and cost
//     defaults only; Build fails until the caller provides two distinct
//     secrets.
//
// # Performance contract
//
// Identify is the hot path. It performs one token parse and one Directory
// lookup per call and no other I/O. Password hashing is the only
// latency-significant operation and runs synchronously on the calling
// goroutine; it is pure and parallel-safe.
package goIdentity
