// Package exchange implements the receiving side of the protocol: the
// stateless per-request unwrap, decrypt, transform, re-encrypt cycle.
//
// Every request carries its own wrapped key, so two concurrent requests are
// unrelated and share no mutable state. Nothing from one request survives to
// influence a later one.
package exchange
