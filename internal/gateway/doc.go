// Package gateway provides the HTTP surface of the exchange protocol: a chi
// server exposing the stateless exchange service, and a client for talking
// to such a gateway.
//
// All requests are JSON over HTTP. The server never logs key material or
// plaintext; failure responses carry only taxonomy messages. The client
// caches the gateway's public key for a short TTL so repeated sends don't
// refetch it.
package gateway
