package crypto

import "encoding/base64"

// B64u encodes with base64url without padding, the encoding of every binary
// wire field.
func B64u(b []byte) string { return base64.RawURLEncoding.EncodeToString(b) }

// B64uDecode decodes a base64url string without padding.
func B64uDecode(s string) ([]byte, error) { return base64.RawURLEncoding.DecodeString(s) }
