// Package password implements password hashing and verification with bcrypt.
//
// # Output format
//
// Digests use bcrypt's modular crypt encoding:
//
//	$2a$<cost>$<22-char salt><31-char hash>
//
// Salt and cost travel inside the digest, so [Bcrypt.Verify] needs only the
// plaintext and the stored digest.
//
// # Architecture boundaries
//
// This package owns hashing and verification only. Password policy (length
// bounds) is enforced by the Engine before Hash is called.
//
// # What this package must NOT do
//
//   - Store or retrieve passwords — callers supply plaintext and receive digests.
//   - Import any other goIdentity package.
//   - Signal anything beyond match/no-match from Verify; malformed digests
//     report false, not an error.
package password
