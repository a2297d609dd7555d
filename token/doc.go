// Package token constructs and parses signed, typed, expiring tokens using two
// independent HS256 secrets, one per token kind.
//
// # Why two secrets
//
// Access and refresh tokens carry the same claim layout but are signed under
// separate secrets selected by [Kind]. A leaked access secret therefore cannot
// be used to mint refresh tokens, and vice versa. The kind is additionally
// embedded in the signed payload as the "type" claim, so a token of the wrong
// kind fails verification even when presented against its own correct secret.
//
// # Architecture boundaries
//
// This package owns signing and verification only. What a subject means, and
// whether the account behind it still exists or is active, is decided by the
// Engine after Parse succeeds.
package token
