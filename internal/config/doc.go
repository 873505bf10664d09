// Package config provides centralized configuration management for the
// pricemark pipeline. It handles loading configuration from multiple
// sources, validation, and provides a type-safe API for the markup,
// detection and limit settings used throughout the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of
// precedence:
//
//	1. Environment variables (highest priority)
//	2. YAML configuration file
//	3. Default values (lowest priority)
//
// The file path comes from PRICEMARK_CONFIG_FILE, falling back to
// config.yaml in the working directory when present.
//
// # Environment Variables
//
// All environment variables follow the pattern PRICEMARK_* for
// namespacing:
//
//	PRICEMARK_MARKUP_PERCENTAGES=5,10,15
//	PRICEMARK_MARKUP_DECIMAL_PLACES=2
//	PRICEMARK_DETECTION_MIN_CONFIDENCE=0.3
//	PRICEMARK_LIMITS_MAX_ROWS=50000
//	PRICEMARK_LOGGING_LEVEL=info
//
// # Validation
//
// All configuration is validated at load time to ensure:
//
//	- Percentages are present and non-negative
//	- Decimal places stay within 0 to 10
//	- Confidence thresholds fall in [0, 1]
//	- Row limits are positive
//
// # Usage
//
// Load configuration at application startup:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	logger := cfg.Logger()
package config
