// Package domain defines the core data models and contracts shared across
// sealgate. It contains plain types (wire/state), the error taxonomy, and
// interfaces only; behavior lives in the crypto, packet and services packages.
package domain
