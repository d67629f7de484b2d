// Package config loads the uihooks CLI configuration.
//
// Values come from, lowest precedence first: built-in defaults, a
// uihooks.yaml (or .json/.toml) file in the working directory or named by
// --config, UIHOOKS_* environment variables, and command-line flags.
// Nested keys use an underscore in the environment:
//
//	UIHOOKS_ADDR=:9090
//	UIHOOKS_LOG_LEVEL=debug
//	UIHOOKS_BRIDGE_READ_TIMEOUT=30s
//	UIHOOKS_BRIDGE_ALLOWED_ORIGINS=https://a.example,https://b.example
package config
