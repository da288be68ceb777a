package crypto

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"strings"

	"github.com/pkg/errors"

	"sealgate/internal/domain"
)

// NormalizePEM reconciles environment-sourced PEM text into a canonical,
// parser-ready form. It is pure and total: it never errors, and input that
// cannot be reconciled into a BEGIN/END pair comes back as best-effort
// line-cleaned text, leaving the downstream key parse as the authoritative
// error signal.
//
// Steps, in order:
//   - absent or blank input yields ""
//   - one layer of matching wrapping quotes ("..." or '...') is stripped
//   - literal \r\n, \n and \r escape sequences become real newlines (the
//     common single-line configuration transport), then real CRLF/CR line
//     endings are normalized to LF
//   - every line is trimmed, defending against indentation from config
//     formatting
//   - if a BEGIN line exists, exactly the inclusive slice to its matching END
//     line is kept, discarding stray surrounding text; otherwise all
//     non-empty lines are kept
//   - lines are rejoined with LF and a trailing newline is guaranteed, since
//     strict PEM parsers require one
func NormalizePEM(in string) string {
	s := strings.TrimSpace(in)
	if s == "" {
		return ""
	}
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			s = s[1 : len(s)-1]
		}
	}
	s = strings.ReplaceAll(s, `\r\n`, "\n")
	s = strings.ReplaceAll(s, `\n`, "\n")
	s = strings.ReplaceAll(s, `\r`, "\n")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}

	begin, end := -1, -1
	for i, l := range lines {
		if strings.HasPrefix(l, "-----BEGIN ") && strings.HasSuffix(l, "-----") {
			begin = i
			break
		}
	}
	if begin >= 0 {
		label := strings.TrimSuffix(strings.TrimPrefix(lines[begin], "-----BEGIN "), "-----")
		for i := begin; i < len(lines); i++ {
			if lines[i] == "-----END "+label+"-----" {
				end = i
				break
			}
		}
	}

	var kept []string
	if begin >= 0 && end >= begin {
		kept = lines[begin : end+1]
	} else {
		for _, l := range lines {
			if l != "" {
				kept = append(kept, l)
			}
		}
	}
	if len(kept) == 0 {
		return ""
	}
	return strings.Join(kept, "\n") + "\n"
}

// ParsePublicKey parses normalized SPKI PEM into an RSA public key.
func ParsePublicKey(pemText string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(pemText))
	if block == nil {
		return nil, errors.Wrap(domain.ErrKeyFormat, "no PEM block in public key")
	}
	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, errors.Wrap(domain.ErrKeyFormat, "parsing SPKI public key")
	}
	rsaPub, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, errors.Wrap(domain.ErrKeyFormat, "public key is not RSA")
	}
	return rsaPub, nil
}

// ParsePrivateKey parses normalized PKCS#8 PEM into an RSA private key.
func ParsePrivateKey(pemText string) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode([]byte(pemText))
	if block == nil {
		return nil, errors.Wrap(domain.ErrKeyFormat, "no PEM block in private key")
	}
	priv, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, errors.Wrap(domain.ErrKeyFormat, "parsing PKCS#8 private key")
	}
	rsaPriv, ok := priv.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.Wrap(domain.ErrKeyFormat, "private key is not RSA")
	}
	return rsaPriv, nil
}

// LoadPublicKey normalizes raw configuration text and validates it as an SPKI
// RSA public key, returning tagged key material alongside the parsed key.
// Meant to run once at startup; the result is passed around explicitly.
func LoadPublicKey(raw string) (domain.KeyMaterial, *rsa.PublicKey, error) {
	norm := NormalizePEM(raw)
	if norm == "" {
		return domain.KeyMaterial{}, nil, errors.Wrap(domain.ErrKeyFormat, "no public key configured")
	}
	pub, err := ParsePublicKey(norm)
	if err != nil {
		return domain.KeyMaterial{}, nil, err
	}
	return domain.KeyMaterial{
		PEM:         norm,
		Role:        domain.RolePublic,
		Format:      domain.FormatSPKI,
		Fingerprint: Fingerprint(norm),
	}, pub, nil
}

// LoadPrivateKey is LoadPublicKey's PKCS#8 counterpart for the receiving side.
func LoadPrivateKey(raw string) (domain.KeyMaterial, *rsa.PrivateKey, error) {
	norm := NormalizePEM(raw)
	if norm == "" {
		return domain.KeyMaterial{}, nil, errors.Wrap(domain.ErrKeyFormat, "no private key configured")
	}
	priv, err := ParsePrivateKey(norm)
	if err != nil {
		return domain.KeyMaterial{}, nil, err
	}
	return domain.KeyMaterial{
		PEM:         norm,
		Role:        domain.RolePrivate,
		Format:      domain.FormatPKCS8,
		Fingerprint: Fingerprint(norm),
	}, priv, nil
}

// EncodePublicKey renders an RSA public key as SPKI PEM.
func EncodePublicKey(pub *rsa.PublicKey) (string, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return "", err
	}
	return string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})), nil
}

// EncodePrivateKey renders an RSA private key as PKCS#8 PEM.
func EncodePrivateKey(priv *rsa.PrivateKey) (string, error) {
	der, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return "", err
	}
	return string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})), nil
}
