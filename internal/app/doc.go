// Package app contains the core application logic. It wires configuration,
// parsing, normalization and the output sinks together and exposes the
// operations the CLI and the HTTP server run, decoupled from either entrypoint.
package app
