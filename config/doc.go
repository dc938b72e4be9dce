// Package config provides configuration loading and validation for statuspad.
//
// The package handles YAML configuration files, environment variables, and CLI flags
// with automatic merging and validation using go-playground/validator.
//
// # Configuration Precedence
//
// Values are loaded in this order (later sources override earlier ones):
//
//  1. Default values
//  2. Configuration file(s) - multiple files merged left-to-right
//  3. Environment variables (STATUSPAD_ prefix)
//  4. CLI flags
//
// # Usage
//
//	cfg, err := config.Load([]string{"config.yaml"}, cmd.Flags())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Store in context for subcommands
//	ctx = config.WithContext(ctx, cfg)
//
//	// Retrieve later
//	cfg, err = config.FromContext(ctx)
//
// # Environment Variables
//
// All config keys map to environment variables with STATUSPAD_ prefix:
//   - server.port → STATUSPAD_SERVER_PORT
//   - ratelimit.max_requests → STATUSPAD_RATELIMIT_MAX_REQUESTS
//   - auth.token → STATUSPAD_AUTH_TOKEN
//
// # Validation
//
// Configuration is validated using struct tags:
//   - Port must be 1-65535
//   - Rate-limit window and max_requests must be positive
//   - Env must be dev or prod
//   - Log level must be debug, info, warn, or error
package config
