// Package crypto orchestrates the primitives used by sealgate.
//
// Contents
//
//   - PEM normalization and SPKI/PKCS#8 RSA key loading (NormalizePEM,
//     LoadPublicKey, LoadPrivateKey)
//   - RSA-OAEP(SHA-256) session-key wrap and unwrap (Wrap, Unwrap)
//   - Session key generation (NewSessionKey)
//   - base64url-without-padding helpers shared by all wire formats (B64u,
//     B64uDecode)
//   - Short key-material fingerprints for cache keys and display (Fingerprint)
//   - Best-effort memory wiping for sensitive byte slices (Wipe)
//
// # Notes
//
// All functions here are pure over their inputs; nothing caches key material.
// Callers should treat returned secrets as sensitive and rely on Wipe when
// practical to reduce their lifetime in memory.
package crypto
