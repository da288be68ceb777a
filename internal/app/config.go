package app

import (
	"net/http"
	"strings"
	"time"

	"github.com/spf13/viper"

	"sealgate/internal/domain"
)

// Config holds runtime wiring options for the CLI and the gateway.
type Config struct {
	GatewayURL string        // gateway base URL, e.g. http://127.0.0.1:8080
	Listen     string        // gateway listen address
	PrivateKey string        // raw PKCS#8 PEM text, gateway side only
	PublicKey  string        // raw SPKI PEM text, client side override
	SessionTTL time.Duration // client session lifetime
	HTTP       *http.Client  // optional; defaults to http.DefaultClient
}

// Load reads configuration from SEALGATE_* environment variables with
// defaults. Raw PEM values pass through untouched; normalization happens
// once, at key-load time, and the environment is never rewritten.
func Load() Config {
	v := viper.New()
	v.SetEnvPrefix("sealgate")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("listen", ":8080")
	v.SetDefault("gateway-url", "http://127.0.0.1:8080")
	v.SetDefault("session-ttl", domain.SessionTTL)

	return Config{
		GatewayURL: v.GetString("gateway-url"),
		Listen:     v.GetString("listen"),
		PrivateKey: v.GetString("private-key"),
		PublicKey:  v.GetString("public-key"),
		SessionTTL: v.GetDuration("session-ttl"),
	}
}
