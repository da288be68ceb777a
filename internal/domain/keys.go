package domain

// KeyRole tags key material as the public or private half of a pair.
type KeyRole string

// KeyFormat names the DER structure inside a PEM block.
type KeyFormat string

const (
	RolePublic  KeyRole = "public"
	RolePrivate KeyRole = "private"

	FormatSPKI  KeyFormat = "SPKI"
	FormatPKCS8 KeyFormat = "PKCS8"
)

// KeyMaterial is a validated, normalized PEM-encoded RSA key tagged with its
// role and format. Immutable after load; never transmitted.
type KeyMaterial struct {
	PEM         string
	Role        KeyRole
	Format      KeyFormat
	Fingerprint string
}
