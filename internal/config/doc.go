// Package config loads Skipper's TOML configuration.
//
// # Resolution Order
//
//  1. Built-in defaults (Default)
//  2. The TOML file: an explicit path, else ~/.config/skipper/config.toml.
//     A missing file is not an error.
//  3. Environment variables SKIPPER_API_BASE, SKIPPER_POSTCODE and
//     SKIPPER_AREA. LoadDotEnv can populate them from a .env file first.
//
// Command-line flags are applied by the caller after Load.
//
// # TOML Format
//
//	api_base = "https://app.wewantwaste.co.uk"
//	postcode = "NR32"
//	area = "Lowestoft"
//	request_timeout = "10s"
//	retries = 0
//	retry_backoff = "1s"
//
// Every field is optional; blank strings fall back to defaults. retries is
// capped at 5. With the default of 0 exactly one request is made.
package config
