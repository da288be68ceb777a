// Package session owns the initiating side's session key lifecycle.
//
// It generates short-lived AES-256 keys, wraps them under the peer's RSA
// public key, reuses the cached session while fresh, and replaces it on
// expiry or public-key change. The expensive RSA wrap runs at most once per
// TTL window; everything in between is symmetric work under the cached key.
package session
