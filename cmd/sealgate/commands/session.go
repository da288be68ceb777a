package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// sessionCmd ensures a session against the gateway's public key and prints
// the wrapped-key envelope plus cache state.
func sessionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Ensure a session and print the wrapped-key envelope",
		RunE: func(cmd *cobra.Command, args []string) error {
			pubPEM, err := resolvePublicKey(cmd.Context())
			if err != nil {
				return fmt.Errorf("resolving gateway public key: %w", err)
			}
			env, err := wire.Sessions.Ensure(pubPEM)
			if err != nil {
				return fmt.Errorf("ensuring session: %w", err)
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(env); err != nil {
				return err
			}
			if sess, ok := wire.Sessions.Current(); ok {
				fmt.Printf("fingerprint=%s expires=%s\n",
					sess.Fingerprint, sess.ExpiresAt.Format("2006-01-02T15:04:05Z07:00"))
			}
			return nil
		},
	}
}
