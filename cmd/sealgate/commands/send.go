package commands

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"sealgate/internal/domain"
)

// sendCmd runs one full exchange: ensure a session, encrypt the payload,
// post it to the gateway, and print the decrypted response.
func sendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <json>",
		Short: "Encrypt a JSON payload, exchange it with the gateway, print the decrypted response",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			pubPEM, err := resolvePublicKey(ctx)
			if err != nil {
				return fmt.Errorf("resolving gateway public key: %w", err)
			}
			env, err := wire.Sessions.Ensure(pubPEM)
			if err != nil {
				return fmt.Errorf("ensuring session: %w", err)
			}
			logrus.WithField("fresh", env.Fresh).Debug("session ready")

			pkt, err := wire.Sessions.Encrypt(args[0])
			if err != nil {
				return fmt.Errorf("encrypting payload: %w", err)
			}
			payload, err := pkt.Encode()
			if err != nil {
				return err
			}

			resp, err := wire.Client.Exchange(ctx, domain.RequestEnvelope{
				WrappedKeyB64: env.WrappedKeyB64,
				Payload:       payload,
			})
			if err != nil {
				return fmt.Errorf("exchanging with gateway: %w", err)
			}
			if !resp.OK {
				return fmt.Errorf("gateway refused exchange: %s", resp.Error)
			}

			respPkt, err := domain.DecodePacket(resp.Payload)
			if err != nil {
				return fmt.Errorf("decoding response packet: %w", err)
			}
			plain, err := wire.Sessions.Decrypt(respPkt)
			if err != nil {
				return fmt.Errorf("decrypting response: %w", err)
			}

			fmt.Println(plain)
			return nil
		},
	}
}
