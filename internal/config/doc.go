// Package config loads runtime configuration for the CreatorGenius CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-u string   base URL of the backend API
//	-t int      request timeout (seconds)
//	-d string   data directory for local state
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "15s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://api.creatorgenius.app/api",
//	  "request_timeout": "15s",
//	  "data_dir": "/var/lib/creatorgenius"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
