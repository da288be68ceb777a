package commands

import (
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"sealgate/internal/crypto"
)

// keygenCmd generates an RSA key pair and writes it as PEM files: the SPKI
// public half for the initiating side and the PKCS#8 private half for the
// gateway.
func keygenCmd() *cobra.Command {
	var (
		bits int
		out  string
	)
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate an RSA key pair as SPKI/PKCS#8 PEM files",
		RunE: func(cmd *cobra.Command, args []string) error {
			priv, err := rsa.GenerateKey(rand.Reader, bits)
			if err != nil {
				return fmt.Errorf("generating %d-bit RSA key: %w", bits, err)
			}

			privPEM, err := crypto.EncodePrivateKey(priv)
			if err != nil {
				return err
			}
			pubPEM, err := crypto.EncodePublicKey(&priv.PublicKey)
			if err != nil {
				return err
			}

			privPath := filepath.Join(out, "sealgate_private.pem")
			pubPath := filepath.Join(out, "sealgate_public.pem")
			if err := writeFile(privPath, []byte(privPEM), 0o600); err != nil {
				return err
			}
			if err := writeFile(pubPath, []byte(pubPEM), 0o644); err != nil {
				return err
			}

			fmt.Printf("Wrote %s and %s. Fingerprint=%s\n",
				privPath, pubPath, crypto.Fingerprint(pubPEM))
			return nil
		},
	}
	cmd.Flags().IntVar(&bits, "bits", 2048, "RSA modulus size")
	cmd.Flags().StringVar(&out, "out", ".", "output directory")
	return cmd
}
