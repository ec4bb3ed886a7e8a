// Package config provides configuration management for mmpp.
//
// Configuration is optional. Without a file every command runs on the
// defaults in defaults.go, adjusted by environment variables.
//
// # Configuration Loading
//
// Configuration can be loaded in two ways:
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("mmpp.yaml")
//
//  2. From a YAML file (or none) with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("mmpp.yaml")
//     cfg, err := config.LoadConfigWithEnvOverrides("")
//
// Unknown keys in the file are an error.
//
// # Example
//
//	parser:
//	  max_depth: 64
//	  max_input_bytes: 65536
//	format:
//	  extensions: [".graph"]
//	  debounce_interval: 250ms
//	telemetry:
//	  logging:
//	    level: info
//	    format: json
//	  metrics:
//	    enabled: true
//	    textfile_path: /var/lib/node_exporter/mmpp.prom
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention MMPP_SECTION_FIELD.
// For example:
//
//   - MMPP_PARSER_MAX_DEPTH overrides parser.max_depth
//   - MMPP_FORMAT_EXTENSIONS overrides format.extensions (comma separated)
//   - MMPP_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// Environment variables always take precedence over file-based configuration.
//
// # Configuration Precedence
//
// Configuration values are applied in the following order (later overrides earlier):
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Global Configuration
//
// The command line tool publishes the loaded configuration with SetConfig.
// GetConfig returns it, or the defaults when nothing was set. ReloadConfig
// replaces it atomically and keeps the old one on failure.
//
// # Validation
//
// Validation collects every problem into a ValidationError of FieldErrors,
// each naming the dotted path of the offending field.
package config
