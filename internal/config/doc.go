// Package config loads the application configuration. Values are layered,
// each source overriding the previous one:
//
//	defaults < YAML config file < GITGRAPHGO_* environment < CLI flags
//
// The merged tree is decoded into a Config and validated before use.
package config
