// Package main runs the sealgate gateway: the stateless receiving side of
// the hybrid-encryption exchange.
//
// HTTP API
//
//	POST /v1/exchange
//	    Accept a {wrapped_key_b64, payload} request envelope, unwrap the
//	    session key with the configured private key, decrypt the payload,
//	    apply the echo transform, and return {ok:true, payload} with the
//	    re-encrypted response. Failures return {ok:false, error} with a
//	    taxonomy message only.
//
//	GET /v1/pubkey
//	    Return the gateway's SPKI public key PEM, derived from the private
//	    key, for client session bootstrap.
//
//	GET /healthz
//	    Liveness probe.
//
//	GET /metrics
//	    Prometheus metrics.
//
// Behaviour
//
//   - The private key is loaded once at startup from SEALGATE_PRIVATE_KEY
//     (PEM text, single-line escaped form accepted) and passed explicitly to
//     the exchange service; configuration is never re-read or rewritten.
//   - No session key, wrapped or raw, is ever persisted; every request is
//     independent and nothing survives between requests.
//   - The default listen address is :8080 (SEALGATE_LISTEN).
package main
