// Package commands defines the sealgate CLI and wires dependencies for
// subcommands.
//
// Commands
//
//   - keygen   Generate an RSA key pair as SPKI/PKCS#8 PEM files
//   - send     Encrypt a JSON payload, exchange it with the gateway, print
//     the decrypted response
//   - session  Ensure a session and print the wrapped-key envelope
//
// # Implementation
//
// The root command loads configuration and builds the dependency graph
// (session store, session service, gateway client) before any subcommand
// runs, so handlers share one app context.
package commands
