// Package middleware exposes HTTP middleware adapters for bearer-token
// authentication built on top of goIdentity.Engine identity resolution.
//
// # Guards
//
//   - [Guard] — resolves the caller and requires an active account.
//   - [GuardAny] — resolves the caller without the active-account gate.
//
// Each guard reads the Authorization header, calls the engine's identify
// operation, and injects the resolved profile into the request context.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Engine calls. It does NOT
// implement authentication logic itself — all decisions are delegated to
// [goIdentity.Engine.IdentifyActive] and [goIdentity.Engine.Identify].
//
// # What this package must NOT do
//
//   - Parse or create JWTs directly (delegates to Engine).
//   - Touch the user store (Engine handles I/O).
//   - Make authorization decisions beyond pass/reject from the engine.
package middleware
