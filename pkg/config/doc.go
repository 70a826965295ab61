// Package config provides configuration management for the gateway.
//
// This package handles loading, validating, and managing configuration from
// YAML files with environment variable overrides. It provides a type-safe
// configuration system with validation and sensible defaults; the gateway
// is fully runnable with no configuration file at all.
//
// # Configuration Loading
//
// Configuration can be loaded in two ways:
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("config.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("config.yaml")
//
// Passing an empty path yields a pure-defaults configuration.
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention GATEWAY_SECTION_FIELD.
// For example:
//
//   - GATEWAY_PROXY_LISTEN_ADDRESS overrides proxy.listen_address
//   - GATEWAY_BACKEND_BASE_URL overrides backend.base_url
//   - GATEWAY_LOGGING_LEVEL overrides telemetry.logging.level
//
// LITELLM_BASE_URL is accepted as a fallback for backend.base_url for
// compatibility with existing deployments. Environment variables always
// take precedence over file-based configuration.
//
// # Configuration Precedence
//
// Configuration values are applied in the following order (later overrides
// earlier):
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Singleton Pattern
//
// For application-wide configuration access, use the singleton pattern:
//
//	// At application startup
//	if err := config.Initialize("config.yaml"); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Anywhere in the application
//	cfg := config.GetConfig()
//
// For testing, prefer dependency injection with explicit Config instances
// rather than the global singleton.
package config
