package commands

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"sealgate/internal/app"
)

var (
	gatewayURL string
	pubkeyFile string
	verbose    bool

	wire *app.Wire
)

func Execute() error {
	root := &cobra.Command{
		Use:   "sealgate",
		Short: "Hybrid-encrypted JSON exchange client",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
			cfg := app.Load()
			if gatewayURL != "" {
				cfg.GatewayURL = gatewayURL
			}
			wire = app.NewWire(cfg)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&gatewayURL, "gateway", "", "gateway base URL (default $SEALGATE_GATEWAY_URL)")
	root.PersistentFlags().StringVar(&pubkeyFile, "pubkey", "", "path to the gateway public key PEM (default: fetch from gateway)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(keygenCmd(), sendCmd(), sessionCmd())
	return root.Execute()
}

// resolvePublicKey prefers a local PEM file and falls back to fetching the
// key from the gateway.
func resolvePublicKey(ctx context.Context) (string, error) {
	if pubkeyFile != "" {
		b, err := os.ReadFile(pubkeyFile)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	return wire.Client.FetchPublicKey(ctx)
}
