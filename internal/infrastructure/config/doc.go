// Package config provides 12-factor configuration for the desktop bridge backend.
//
// Configuration is loaded from environment variables with defaults suited to a
// loopback-only desktop backend. CLI flags override the environment.
//
// Configuration Sections:
//   - Server: listen address
//   - Logging: level and output format
//   - RateLimit: per-client request throttle
//   - CORS: origins allowed to drive the bridge
//   - Dialog: dialog backend and optional filter file
//   - Files: read size limit
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("bridge listening on %s\n", cfg.Server.Addr())
package config
