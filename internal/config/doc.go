// Package config loads flowdeck's TOML configuration.
//
// # Configuration Discovery
//
// Load follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/flowdeck/config.toml
//  3. If the file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing or empty, use defaults
//
// # TOML Format
//
//	api_base = "https://api.flow.microsoft.com"
//	api_version = "2016-11-01"
//	environment = "Default-00000000-0000-0000-0000-000000000000"
//	page_size = 50
//	token_file = "~/.config/flowdeck/token"
//	log_file = "~/.local/state/flowdeck/flowdeck.log"
//	log_level = "info"
//	log_format = "text"
//	request_timeout_seconds = 30
//
// Every field is optional. Tilde expansion is applied to token_file and
// log_file; log_file = "-" sends logs to stderr.
//
// # Error Handling
//
//   - Missing file: defaults, no error
//   - Permission denied: "open config: ..."
//   - Invalid TOML: "parse config: ..."
package config
