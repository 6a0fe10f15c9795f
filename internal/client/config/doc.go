// Package config loads runtime configuration for the vibejournal CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables prefixed with VIBE_ (VIBE_SERVER_URL,
//     VIBE_ONLINE_CHECK_INTERVAL, VIBE_HTTP_TIMEOUT, VIBE_TOKEN_STORE,
//     VIBE_DATA_DIR, VIBE_PLAYER, VIBE_LOG_LEVEL).
//  3. Optional config file selected with -c or -config; JSON, or YAML when
//     the name ends in .yaml / .yml.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   backend base URL
//	-i int      online status check interval (seconds)
//	-s string   token store backend (sqlite|memory)
//	-d string   data directory
//	-l string   log level
//	-p string   audio player command
//
// # File schema
//
// Durations may be strings like "3s" or integer nanoseconds:
//
//	server_base_url: https://api.example.org
//	online_check_interval: 15s
//	http_timeout: 1m
//	token_store: sqlite
//	data_dir: ~/.vibejournal
//	player_command: mpv --no-video
//	log_level: info
package config
